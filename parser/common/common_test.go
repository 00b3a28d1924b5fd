/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package common_test

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/mapio/ir"
	"bennypowers.dev/mapio/parser/common"
)

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"single line", "1,2,3", []int{1, 2, 3}, false},
		{"folded", "\n1,0,\n0,2\n", []int{1, 0, 0, 2}, false},
		{"trailing comma", "4,5,", []int{4, 5}, false},
		{"empty", "  ", nil, false},
		{"garbage", "1,x", nil, true},
		{"negative", "1,-2", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := common.SplitCSV(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitFields(t *testing.T) {
	got, err := common.SplitFields("1 0\n0  2")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0, 2}, got)

	_, err = common.SplitFields("1 two")
	require.Error(t, err)
}

func TestParseTiledColor(t *testing.T) {
	tests := []struct {
		input string
		want  ir.Color
	}{
		{"#102030", ir.Color{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{"#80102030", ir.Color{R: 0x10, G: 0x20, B: 0x30, A: 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := common.ParseTiledColor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := common.ParseTiledColor("#1234")
	assert.True(t, errors.Is(err, ir.ErrInvalidColor))
}

func TestNodeLookups(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
name: Terrain
count: 4
ratio: 0.5
solid: true
empty: null
list: [1, 2]
`), &doc))
	root := common.Root(&doc)

	name, ok := common.String(root, "name")
	assert.True(t, ok)
	assert.Equal(t, "Terrain", name)

	count, ok := common.Int(root, "count")
	assert.True(t, ok)
	assert.Equal(t, 4, count)

	_, ok = common.Int(root, "ratio")
	assert.False(t, ok, "floats are not ints")

	ratio, ok := common.Float(root, "ratio")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, ratio, 1e-9)

	solid, ok := common.Bool(root, "solid")
	assert.True(t, ok)
	assert.True(t, solid)

	_, ok = common.String(root, "empty")
	assert.False(t, ok)
	assert.True(t, common.Has(root, "empty"))
	assert.False(t, common.Has(root, "missing"))

	assert.Len(t, common.Seq(root, "list"), 2)
	assert.Nil(t, common.Seq(root, "name"))
}

func TestXMLNode(t *testing.T) {
	root, err := common.DecodeXML([]byte(`<map width="3"><layer id="1"/><group id="2"><layer id="3"/></group><layer id="4"/></map>`))
	require.NoError(t, err)

	assert.Equal(t, "map", root.Name())
	w, ok := root.IntAttr("width")
	assert.True(t, ok)
	assert.Equal(t, 3, w)
	assert.Equal(t, "orthogonal", root.AttrOr("orientation", "orthogonal"))

	var names []string
	for _, n := range root.Nodes {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"layer", "group", "layer"}, names, "document order is kept")
	assert.Len(t, root.Children("layer"), 2)
	assert.NotNil(t, root.Child("group").Child("layer"))
}

func TestXMLNode_MarshalKeepsNewlines(t *testing.T) {
	node := common.NewXMLNode("layer").SetIntAttr("id", 1)
	node.AppendNew("data").SetAttr("encoding", "csv").Text = "\n1,0,\n0,2\n"

	out, err := xml.MarshalIndent(node, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "<layer id=\"1\">\n  <data encoding=\"csv\">\n1,0,\n0,2\n</data>\n</layer>", string(out))
}
