/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/mapio/emitter"
	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/testutil"
)

func TestLoad_YAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/yaml", "/project")

	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, format.JSON, cfg.TargetFormat())
	assert.Equal(t, emitter.Options{EmbedTilesets: true, FoldTileData: true}, cfg.EmitOptions())

	require.Len(t, cfg.Files, 2)
	assert.Equal(t, "maps/**/*.tmx", cfg.Files[0].Path)
	assert.Equal(t, "maps/world.yaml", cfg.Files[1].Path)
	assert.Equal(t, "xml", cfg.Files[1].Format)
}

func TestLoad_JSONWithComments(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/json", "/project")

	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, format.YAML, cfg.TargetFormat())
	assert.True(t, cfg.IndentOutput)
	assert.Equal(t, []string{"./level.json"}, cfg.FilePaths())
}

func TestLoad_NotFound(t *testing.T) {
	mfs := testutil.NewMapFS(nil)

	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	assert.Equal(t, Default(), LoadOrDefault(mfs, "/project"))
}

func TestLoad_Malformed(t *testing.T) {
	mfs := testutil.NewMapFS(map[string]string{
		"/project/.config/mapio.yaml": "files: [unclosed",
	})

	_, err := Load(mfs, "/project")
	require.Error(t, err)
	assert.Equal(t, Default(), LoadOrDefault(mfs, "/project"))
}

func TestLoad_Priority(t *testing.T) {
	mfs := testutil.NewMapFS(map[string]string{
		"/project/.config/mapio.yml":  "format: xml\n",
		"/project/.config/mapio.json": `{"format": "json"}`,
	})

	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)
	assert.Equal(t, format.XML, cfg.TargetFormat())
}

func TestFormatForFile(t *testing.T) {
	cfg := &Config{
		Format: "json",
		Files: []FileSpec{
			{Path: "a.tmx"},
			{Path: "b.tmx", Format: "yaml"},
			{Path: "c.tmx", Format: "bogus"},
		},
	}

	assert.Equal(t, format.JSON, cfg.FormatForFile("a.tmx"))
	assert.Equal(t, format.YAML, cfg.FormatForFile("b.tmx"))
	assert.Equal(t, format.JSON, cfg.FormatForFile("c.tmx"))
	assert.Equal(t, format.JSON, cfg.FormatForFile("other.tmx"))

	assert.Equal(t, format.Unsupported, Default().TargetFormat())
}

func TestExpandFiles(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/yaml", "/project")

	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)

	files, err := cfg.ExpandFiles(mfs, "/project")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/project/maps/overworld.tmx",
		"/project/maps/town/inn.tmx",
		"/project/maps/world.yaml",
	}, files)
}

func TestExpandPaths(t *testing.T) {
	mfs := testutil.NewMapFS(map[string]string{
		"/w/a.tmx":      "",
		"/w/b.json":     "",
		"/w/sub/c.yaml": "",
	})

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{"plain path", []string{"a.tmx"}, []string{"/w/a.tmx"}},
		{"absolute", []string{"/elsewhere/x.tmx"}, []string{"/elsewhere/x.tmx"}},
		{"star", []string{"*.tmx"}, []string{"/w/a.tmx"}},
		{"alternates", []string{"**/*.{json,yaml}"}, []string{"/w/b.json", "/w/sub/c.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPaths(mfs, "/w", tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
