/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/mapio/config"
	"bennypowers.dev/mapio/emitter"
	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/load"
	"bennypowers.dev/mapio/testutil"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{Format: "xml", EmbedTilesets: true, FoldTileData: true}

	t.Run("config values apply without flags", func(t *testing.T) {
		target, emit, err := Options(viper.New(), cfg)
		require.NoError(t, err)
		assert.Equal(t, format.Unsupported, target, "config formats resolve per file")
		assert.Equal(t, emitter.Options{EmbedTilesets: true, FoldTileData: true}, emit)
	})

	t.Run("flags win", func(t *testing.T) {
		v := viper.New()
		v.Set("format", "yaml")
		v.Set("foldTileData", false)
		v.Set("indentOutput", true)
		target, emit, err := Options(v, cfg)
		require.NoError(t, err)
		assert.Equal(t, format.YAML, target)
		assert.Equal(t, emitter.Options{EmbedTilesets: true, IndentOutput: true}, emit)
	})

	t.Run("unknown format", func(t *testing.T) {
		v := viper.New()
		v.Set("format", "csv")
		_, _, err := Options(v, cfg)
		require.Error(t, err)
	})
}

func TestRun_Files(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")

	outputs, err := Run(context.Background(), Request{
		Root:   "/maps",
		FS:     mfs,
		Files:  []string{"*.tmx"},
		Format: format.YAML,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/maps/map.yaml"}, outputs)
	assert.Contains(t, mfs.Writes(), "/maps/map.yaml")
	assert.Contains(t, mfs.Content("/maps/map.yaml"), "name: Ground")
}

func TestRun_Output(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")

	outputs, err := Run(context.Background(), Request{
		Root:   "/maps",
		FS:     mfs,
		Files:  []string{"map.yaml"},
		Output: "/out/level.json",
		Emit:   emitter.Options{EmbedTilesets: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/level.json"}, outputs)
	assert.Equal(t, []string{"/out/level.json"}, mfs.Writes(), "embedded tilesets write one file")
}

func TestRun_OutputNeedsOneFile(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")

	tests := []struct {
		name  string
		files []string
	}{
		{"no files", nil},
		{"glob with many matches", []string{"map.*"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), Request{
				Root:   "/maps",
				FS:     mfs,
				Files:  tt.files,
				Output: "/out/level.json",
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "--output requires exactly one input file")
		})
	}
}

func TestRun_NoTarget(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")

	_, err := Run(context.Background(), Request{Root: "/maps", FS: mfs, Files: []string{"map.tmx"}})
	require.ErrorIs(t, err, load.ErrNoTargetFormat)
	assert.Empty(t, mfs.Writes())
}

func TestRun_ConfigFiles(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/proj/maps")
	mfs.AddFile("/proj/.config/mapio.yaml", "format: json\nfiles:\n  - maps/*.tmx\n", 0644)

	outputs, err := Run(context.Background(), Request{Root: "/proj", FS: mfs})
	require.NoError(t, err)
	assert.Equal(t, []string{"/proj/maps/map.json"}, outputs)
}

func TestPrintOutputs(t *testing.T) {
	var buf bytes.Buffer
	printOutputs(&buf, []string{"/a.json", "/b.yaml"})
	assert.Equal(t, "Wrote /a.json\nWrote /b.yaml\n", buf.String())
}
