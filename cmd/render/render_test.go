/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/mapio/ir"
	"bennypowers.dev/mapio/parser"
	"bennypowers.dev/mapio/testutil"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Layer 3 Decor", "layer-3-decor"},
		{"layer-3", "layer-3"},
		{"tiles.ground.base", "tiles-ground-base"},
		{"--spawn--point", "spawn-point"},
		{"Big  Room", "big-room"},
		{"UPPERCASE", "uppercase"},
		{"with_underscores", "with-underscores"},
		{"ruins (north)", "ruins-north"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.input))
		})
	}
}

func TestToTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"tile layer", "Tile Layer"},
		{"object layer", "Object Layer"},
		{"group", "Group"},
		{"no-content", "No-Content"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, toTitleCase(tt.input))
		})
	}
}

func TestColorSwatch(t *testing.T) {
	assert.Equal(t, "\x1b[48;2;16;32;48m  \x1b[0m ", ColorSwatch("#102030ff"))
	assert.Empty(t, ColorSwatch("not a color"))
}

func loadBasic(t *testing.T, file string) *ir.Map {
	t.Helper()
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")
	m, err := parser.Parse(mfs, "/maps/"+file)
	require.NoError(t, err)
	return m
}

func TestSummarize(t *testing.T) {
	s := Summarize(loadBasic(t, "map.yaml"))

	assert.Equal(t, "/maps/map.yaml", s.Path)
	assert.Equal(t, 2, s.Columns)
	assert.Equal(t, 2, s.Rows)

	require.Len(t, s.Tilesets, 1)
	assert.Equal(t, TilesetRow{
		Name:      "Terrain",
		FirstGID:  1,
		LastGID:   4,
		TileCount: 4,
		Image:     "terrain.png",
		Animated:  1,
	}, s.Tilesets[0])

	require.Len(t, s.Layers, 3)
	assert.Equal(t, "Tile Layer", s.Layers[0].Kind)
	assert.Equal(t, "2/4 tiles", s.Layers[0].Detail)
	assert.Equal(t, "Object Layer", s.Layers[1].Kind)
	assert.Equal(t, "2 objects", s.Layers[1].Detail)
	assert.Equal(t, 0.5, s.Layers[1].Opacity)
	assert.Equal(t, "Group Layer", s.Layers[2].Kind)
	assert.Equal(t, "0 layers", s.Layers[2].Detail)
	assert.False(t, s.Layers[2].Visible)

	var tint *PropertyRow
	for i := range s.Properties {
		if s.Properties[i].Name == "tint" {
			tint = &s.Properties[i]
		}
	}
	require.NotNil(t, tint)
	assert.Equal(t, "map", tint.Owner)
	assert.Equal(t, "#102030ff", tint.Value)
	assert.True(t, tint.IsColor)

	require.Len(t, s.Definitions, 1)
	assert.Equal(t, "health", s.Definitions[0].Name)
	require.Len(t, s.Components, 1)
	assert.Equal(t, "health", s.Components[0].Type)
	assert.Contains(t, s.Components[0].Values, "hp=25")
}

func TestSummarize_GroupDepth(t *testing.T) {
	m := ir.NewMap()
	outer := ir.NewLayer(1)
	outer.Name = "Outer"
	group := outer.MakeGroupLayer()
	inner := ir.NewLayer(2)
	inner.Name = "Inner"
	inner.MakeTileLayer(1, 1)
	group.Layers = append(group.Layers, inner)
	m.Layers = append(m.Layers, outer)

	s := Summarize(m)
	require.Len(t, s.Layers, 2)
	assert.Equal(t, 0, s.Layers[0].Depth)
	assert.Equal(t, "1 layer", s.Layers[0].Detail)
	assert.Equal(t, 1, s.Layers[1].Depth)
	assert.Equal(t, "0/1 tiles", s.Layers[1].Detail)
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, Summarize(loadBasic(t, "map.tmx"))))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "/maps/map.tmx\n"))
	assert.Contains(t, out, "2x2 tiles of 16x16 px")
	assert.Contains(t, out, "Terrain  1-4  terrain.png")
	assert.Contains(t, out, "#3 Decor [Group Layer] 0 layers (hidden)")
	assert.Contains(t, out, "\x1b[48;2;16;32;48m")
	assert.NotContains(t, out, "Components", "xml maps carry no components")
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, Summarize(loadBasic(t, "map.yaml"))))
	out := buf.String()

	assert.Contains(t, out, "# /maps/map.yaml")
	assert.Contains(t, out, "| Terrain | 1-4 | `terrain.png` |")
	assert.Contains(t, out, `<a id="layer-1-ground"></a>**Ground**`)
	assert.Contains(t, out, "| map | tint | color | `#102030ff` |")
	assert.Contains(t, out, "## Components")
	assert.NotContains(t, out, "\x1b[", "markdown has no ANSI escapes")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, Summarize(loadBasic(t, "map.json"))))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/maps/map.json", decoded["path"])
	assert.Len(t, decoded["layers"], 3)
	assert.NotContains(t, decoded, "components")
}
