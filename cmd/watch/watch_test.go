/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/load"
	"bennypowers.dev/mapio/testutil"
)

func TestHandler_Accept(t *testing.T) {
	tests := []struct {
		name   string
		target format.Format
		path   string
		want   bool
	}{
		{"validate tmx", format.Unsupported, "/m/a.tmx", true},
		{"validate yaml", format.Unsupported, "/m/a.yaml", true},
		{"tileset sheet", format.Unsupported, "/m/a.tsx", false},
		{"image", format.JSON, "/m/a.png", false},
		{"source for json", format.JSON, "/m/a.tmx", true},
		{"own output", format.JSON, "/m/a.json", false},
		{"yml is yaml", format.YAML, "/m/a.yml", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{Target: tt.target}
			assert.Equal(t, tt.want, h.Accept(tt.path))
		})
	}
}

func TestHandler_Validate(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")
	mfs.AddFile("/maps/bad.yaml", "version: 1\n", 0644)

	var out, errOut bytes.Buffer
	h := &Handler{FS: mfs, Root: "/maps", Out: &out, ErrOut: &errOut}

	h.Handle(context.Background(), "/maps/map.yaml")
	assert.Equal(t, "/maps/map.yaml is valid\n", out.String())

	h.Handle(context.Background(), "/maps/bad.yaml")
	assert.Contains(t, errOut.String(), "/maps/bad.yaml: ")
	assert.Empty(t, mfs.Writes())
}

func TestHandler_Convert(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")

	var out, errOut bytes.Buffer
	h := &Handler{
		FS:     mfs,
		Target: format.YAML,
		Load:   load.Options{Root: "/maps", FS: mfs, Format: format.YAML},
		Out:    &out,
		ErrOut: &errOut,
	}

	h.Handle(context.Background(), "/maps/map.json")
	assert.Equal(t, "Wrote /maps/map.yaml\n", out.String())
	assert.Empty(t, errOut.String())

	h.Handle(context.Background(), "/maps/missing.tmx")
	assert.Contains(t, errOut.String(), "/maps/missing.tmx: ")
}

func copyFixture(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		data := testutil.LoadFixtureFile(t, filepath.Join("maps/basic", name))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
}

func TestWatcher_ReportsChangedMaps(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "terrain.tsx", "terrain.png")

	h := &Handler{Target: format.JSON}
	w, err := NewWatcher(20*time.Millisecond, h.Accept, dir)
	require.NoError(t, err)
	defer w.Close()

	// Ignored: not a map, and a file already in the target format.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.json"), []byte("{}"), 0644))
	copyFixture(t, dir, "map.tmx")

	select {
	case path := <-w.Events:
		assert.Equal(t, filepath.Join(dir, "map.tmx"), path)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change")
	}

	var out, errOut bytes.Buffer
	h.FS = fs.NewOSFileSystem()
	h.Load = load.Options{Root: dir, Format: format.JSON}
	h.Out, h.ErrOut = &out, &errOut
	h.Handle(context.Background(), filepath.Join(dir, "map.tmx"))
	assert.Empty(t, errOut.String())
	assert.FileExists(t, filepath.Join(dir, "map.json"))
}

func TestLoop_StopsOnCancel(t *testing.T) {
	w, err := NewWatcher(DefaultDebounce, func(string) bool { return true }, t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Loop(ctx, w, &Handler{}) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(DefaultDebounce, func(string) bool { return true }, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}
