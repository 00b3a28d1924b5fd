/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapfs

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrites_RecordOrder(t *testing.T) {
	mfs := New()
	require.NoError(t, mfs.WriteFile("/out/Terrain.tsx", []byte("<tileset/>"), 0644))
	require.NoError(t, mfs.WriteFile("out/map.tmx", []byte("<map/>"), 0644))

	assert.Equal(t, []string{"/out/Terrain.tsx", "/out/map.tmx"}, mfs.Writes())
	assert.Equal(t, "<map/>", mfs.Content("/out/map.tmx"))
	assert.Empty(t, mfs.Content("/out/missing.tmx"))
}

func TestFailWrite(t *testing.T) {
	mfs := New()
	boom := errors.New("boom")
	mfs.FailWrite("/out/map.json", boom)

	err := mfs.WriteFile("/out/map.json", []byte("{}"), 0644)
	require.ErrorIs(t, err, boom)
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "/out/map.json", pathErr.Path)
	assert.Empty(t, mfs.Writes())
	assert.False(t, mfs.Exists("/out/map.json"))

	require.NoError(t, mfs.WriteFile("/out/other.json", []byte("{}"), 0644))
}

func TestExists(t *testing.T) {
	mfs := New()
	mfs.AddFile("/maps/town/inn.tmx", "<map/>", 0644)
	require.NoError(t, mfs.MkdirAll("/empty", 0755))

	assert.True(t, mfs.Exists("/maps/town/inn.tmx"))
	assert.True(t, mfs.Exists("/maps/town"), "parents of files exist")
	assert.True(t, mfs.Exists("/empty"))
	assert.False(t, mfs.Exists("/maps/inn.tmx"))
}

func TestWalkDir(t *testing.T) {
	mfs := New()
	mfs.AddFile("/maps/a.tmx", "", 0644)
	mfs.AddFile("/maps/sub/b.json", "", 0644)

	var files []string
	err := fs.WalkDir(mfs, "/maps", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/maps/a.tmx", "/maps/sub/b.json"}, files)
}
