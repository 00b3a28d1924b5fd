/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTilesetFor(t *testing.T) {
	m := NewMap()
	m.Tilesets = []Tileset{
		{Name: "a", FirstTile: 1, TileCount: 4},
		{Name: "b", FirstTile: 5, TileCount: 10},
		{Name: "c", FirstTile: 15, TileCount: 1},
	}

	seen := map[[2]int]bool{}
	for gid := 1; gid < 16; gid++ {
		index, local, ok := m.TilesetFor(gid)
		require.True(t, ok, "gid %d", gid)
		key := [2]int{index, local}
		assert.False(t, seen[key], "gid %d maps to a used pair", gid)
		seen[key] = true

		back, err := m.GlobalID(index, local)
		require.NoError(t, err)
		assert.Equal(t, gid, back)
	}

	_, _, ok := m.TilesetFor(0)
	assert.False(t, ok)
	_, _, ok = m.TilesetFor(16)
	assert.False(t, ok)
	_, _, ok = m.TilesetFor(-1)
	assert.False(t, ok)

	assert.Equal(t, 16, m.NextFirstTile())
}

func TestGlobalID_OutOfRange(t *testing.T) {
	m := NewMap()
	m.Tilesets = []Tileset{{Name: "a", FirstTile: 1, TileCount: 4}}

	_, err := m.GlobalID(0, 4)
	assert.Error(t, err)
	_, err = m.GlobalID(1, 0)
	assert.Error(t, err)
}

func TestLayerVariants(t *testing.T) {
	l := NewLayer(1)
	tl := l.MakeTileLayer(2, 3)
	assert.Equal(t, 2, tl.Tiles.Rows())
	assert.Equal(t, 3, tl.Tiles.Cols())

	_, err := l.AsObjectLayer()
	assert.ErrorIs(t, err, ErrWrongLayerKind)

	l.MakeGroupLayer()
	_, err = l.AsTileLayer()
	assert.ErrorIs(t, err, ErrWrongLayerKind)
	gl, err := l.AsGroupLayer()
	require.NoError(t, err)
	assert.Empty(t, gl.Layers)
	assert.Equal(t, KindGroupLayer, l.Kind())
}

func TestReshapeTiles(t *testing.T) {
	m, err := ReshapeTiles([]int{1, 0, 0, 2, 3, 4}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, TileMatrix{{1, 0, 0}, {2, 3, 4}}, m)
	assert.Equal(t, []int{1, 0, 0, 2, 3, 4}, m.Flatten())

	_, err = ReshapeTiles([]int{1, 2, 3}, 2, 2)
	assert.Error(t, err)
}

func TestReshapeTiles_NegativeSize(t *testing.T) {
	tests := []struct {
		name       string
		ids        []int
		rows, cols int
	}{
		{"both negative", []int{1}, -1, -1},
		{"negative rows", nil, -2, 0},
		{"negative cols", []int{}, 0, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := ReshapeTiles(tt.ids, tt.rows, tt.cols)
				assert.Error(t, err)
			})
		})
	}
}

func TestMakeTileMatrix_ClampsNegative(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Empty(t, MakeTileMatrix(-1, 3))
		assert.Equal(t, TileMatrix{{}, {}}, MakeTileMatrix(2, -4))
	})
}

func newTree() *Map {
	m := NewMap()
	ground := NewLayer(1)
	ground.MakeTileLayer(1, 1)

	group := NewLayer(2)
	gl := group.MakeGroupLayer()
	child := NewLayer(3)
	child.MakeObjectLayer()
	gl.Layers = append(gl.Layers, child)

	m.Layers = []Layer{ground, group}
	return m
}

func TestParentOf(t *testing.T) {
	m := newTree()

	parent, ok := m.ParentOf(3)
	require.True(t, ok)
	require.NotNil(t, parent)
	assert.Equal(t, 2, parent.ID)

	parent, ok = m.ParentOf(1)
	require.True(t, ok)
	assert.Nil(t, parent)

	_, ok = m.ParentOf(99)
	assert.False(t, ok)
}

func TestReindex(t *testing.T) {
	m := newTree()
	m.Layers[0].Index = 7
	Reindex(m.Layers)

	assert.Equal(t, 0, m.Layers[0].Index)
	assert.Equal(t, 1, m.Layers[1].Index)
	child, ok := m.FindLayer(3)
	require.True(t, ok)
	assert.Equal(t, 0, child.Index)
}

func TestHasComponents(t *testing.T) {
	m := newTree()
	assert.False(t, m.HasComponents())

	def := NewComponentDef("Tag")
	gl, err := m.Layers[1].AsGroupLayer()
	require.NoError(t, err)
	ol, err := gl.Layers[0].AsObjectLayer()
	require.NoError(t, err)
	ol.Objects = append(ol.Objects, Object{ID: 1, Components: []*Component{NewComponent(def)}})

	assert.True(t, m.HasComponents())
}
