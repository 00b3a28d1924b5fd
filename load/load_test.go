/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/mapio/emitter"
	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/ir"
	"bennypowers.dev/mapio/load"
	"bennypowers.dev/mapio/parser"
	"bennypowers.dev/mapio/testutil"
)

// document stands in for a live editor document.
type document struct {
	restored *ir.Map
	err      error
}

func (d *document) Restore(m *ir.Map) error {
	d.restored = m
	return d.err
}

func (d *document) Snapshot() (*ir.Map, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.restored, nil
}

func TestLoad_RelativeToRoot(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")

	m, err := load.Load(t.Context(), "map.tmx", load.Options{FS: mfs, Root: "/maps"})
	require.NoError(t, err)
	assert.Equal(t, "/maps/map.tmx", m.Path)
	assert.Len(t, m.Layers, 3)
}

func TestLoad_Cancelled(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := load.Load(ctx, "/maps/map.tmx", load.Options{FS: mfs})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_ParseError(t *testing.T) {
	mfs := testutil.NewMapFS(nil)

	_, err := load.Load(t.Context(), "/maps/none.tmx", load.Options{FS: mfs, Root: "/maps"})
	require.Error(t, err)
	assert.Equal(t, parser.MapDoesNotExist, parser.CodeOf(err))
}

func TestOpenSave(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")
	doc := &document{}

	require.NoError(t, load.Open(t.Context(), doc, "/maps/map.json", load.Options{FS: mfs, Root: "/maps"}))
	require.NotNil(t, doc.restored)

	require.NoError(t, load.Save(t.Context(), doc, "/out/saved.yaml", load.Options{FS: mfs, Root: "/maps"}))
	assert.Equal(t, []string{"/out/Terrain.yaml", "/out/saved.yaml"}, mfs.Writes())

	saved, err := parser.Parse(mfs, "/out/saved.yaml")
	require.NoError(t, err)
	assert.Equal(t, doc.restored.Layers, saved.Layers)
}

func TestOpen_RestoreFails(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")
	boom := errors.New("boom")

	err := load.Open(t.Context(), &document{err: boom}, "/maps/map.tmx", load.Options{FS: mfs})
	assert.ErrorIs(t, err, boom)
}

func TestSave_SnapshotFails(t *testing.T) {
	mfs := testutil.NewMapFS(nil)
	boom := errors.New("boom")

	err := load.Save(t.Context(), &document{err: boom}, "/out/m.tmx", load.Options{FS: mfs, Root: "/"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, mfs.Writes())
}

func TestConvert(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")
	mfs.AddFile("/maps/.config/mapio.yaml", "format: yaml\nfiles:\n  - path: map.json\n    format: xml\n", 0644)

	tests := []struct {
		name string
		in   string
		opts load.Options
		want string
	}{
		{"config default", "map.tmx", load.Options{}, "/maps/map.yaml"},
		{"per-file override", "map.json", load.Options{}, "/maps/map.tmx"},
		{"explicit format", "map.yaml", load.Options{Format: format.JSON}, "/maps/map.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")
			mfs.AddFile("/maps/.config/mapio.yaml", "format: yaml\nfiles:\n  - path: map.json\n    format: xml\n", 0644)
			tt.opts.FS = mfs
			tt.opts.Root = "/maps"

			out, err := load.Convert(t.Context(), tt.in, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Contains(t, mfs.Writes(), tt.want)
		})
	}

	_, err := load.Convert(t.Context(), "map.tmx", load.Options{FS: mfs, Root: "/maps", Format: format.XML})
	assert.ErrorIs(t, err, load.ErrSameFile)
}

func TestConvert_NoTarget(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")

	_, err := load.Convert(t.Context(), "map.tmx", load.Options{FS: mfs, Root: "/maps"})
	assert.ErrorIs(t, err, load.ErrNoTargetFormat)
}

func TestConvertTo_EmitOverride(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")

	out, err := load.ConvertTo(t.Context(), "map.yaml", "/out/embedded.tmx", load.Options{
		FS:   mfs,
		Root: "/maps",
		Emit: &emitter.Options{EmbedTilesets: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "/out/embedded.tmx", out)
	assert.Equal(t, []string{"/out/embedded.tmx"}, mfs.Writes())
}

func TestConvertAll(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")
	mfs.AddFile("/maps/.config/mapio.json", `{"format": "json", "files": ["*.tmx"]}`, 0644)

	outputs, err := load.ConvertAll(t.Context(), load.Options{FS: mfs, Root: "/maps"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/maps/map.json"}, outputs)
}
