/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ir is the format-agnostic tile map model shared by every parser
// and emitter.
//
// A Map exclusively owns its tilesets, layers and properties. Layers form a
// tree through GroupLayer payloads; parent lookup is computed by walking the
// tree rather than stored.
package ir

import (
	"fmt"
	"path/filepath"
)

// Map is the root of the IR tree.
type Map struct {
	Path          string
	TileWidth     int
	TileHeight    int
	RowCount      int
	ColumnCount   int
	NextLayerID   int
	NextObjectID  int
	Tilesets      []Tileset
	Layers        []Layer
	Properties    Properties
	ComponentDefs []*ComponentDef
	Components    []*Component
}

// NewMap returns an empty map whose id counters start at 1.
func NewMap() *Map {
	return &Map{NextLayerID: 1, NextObjectID: 1}
}

// Dir returns the directory of the map file.
func (m *Map) Dir() string {
	return filepath.Dir(m.Path)
}

// TilesetFor resolves a global tile id. It scans the tilesets in order and
// returns the index of the first one whose range contains gid, together
// with the local id. Zero, the empty tile, never resolves.
func (m *Map) TilesetFor(gid int) (index, local int, ok bool) {
	if gid == 0 {
		return 0, 0, false
	}
	for i := range m.Tilesets {
		if m.Tilesets[i].Contains(gid) {
			return i, gid - m.Tilesets[i].FirstTile, true
		}
	}
	return 0, 0, false
}

// GlobalID converts a local id of the tileset at index into a global id.
func (m *Map) GlobalID(index, local int) (int, error) {
	if index < 0 || index >= len(m.Tilesets) {
		return 0, fmt.Errorf("no tileset at index %d", index)
	}
	ts := &m.Tilesets[index]
	if local < 0 || local >= ts.TileCount {
		return 0, fmt.Errorf("local id %d out of range for tileset %q", local, ts.Name)
	}
	return ts.FirstTile + local, nil
}

// NextFirstTile returns the first global id free for a new tileset.
func (m *Map) NextFirstTile() int {
	next := 1
	for i := range m.Tilesets {
		if last := m.Tilesets[i].LastTile() + 1; last > next {
			next = last
		}
	}
	return next
}

// ComponentDef returns the definition with the given name.
func (m *Map) ComponentDef(name string) (*ComponentDef, bool) {
	for _, d := range m.ComponentDefs {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// Walk visits every layer depth-first in document order. The parent is nil
// for top-level layers. Returning false from fn stops the walk.
func (m *Map) Walk(fn func(layer *Layer, parent *Layer) bool) {
	walkLayers(m.Layers, nil, fn)
}

func walkLayers(layers []Layer, parent *Layer, fn func(*Layer, *Layer) bool) bool {
	for i := range layers {
		l := &layers[i]
		if !fn(l, parent) {
			return false
		}
		if gl, ok := l.Content.(*GroupLayer); ok {
			if !walkLayers(gl.Layers, l, fn) {
				return false
			}
		}
	}
	return true
}

// FindLayer returns the layer with the given id.
func (m *Map) FindLayer(id int) (*Layer, bool) {
	var found *Layer
	m.Walk(func(l, _ *Layer) bool {
		if l.ID == id {
			found = l
			return false
		}
		return true
	})
	return found, found != nil
}

// ParentOf returns the group layer containing the layer with the given id.
// The second result is false when the layer does not exist; a nil parent
// with true means the layer is top-level.
func (m *Map) ParentOf(id int) (*Layer, bool) {
	var (
		parent *Layer
		found  bool
	)
	m.Walk(func(l, p *Layer) bool {
		if l.ID == id {
			parent, found = p, true
			return false
		}
		return true
	})
	return parent, found
}

// HasComponents reports whether any element of the map carries components
// or component definitions.
func (m *Map) HasComponents() bool {
	if len(m.ComponentDefs) > 0 || len(m.Components) > 0 {
		return true
	}
	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		if len(ts.Components) > 0 {
			return true
		}
		for j := range ts.Tiles {
			if len(ts.Tiles[j].Components) > 0 || objectsHaveComponents(ts.Tiles[j].Objects) {
				return true
			}
		}
	}
	has := false
	m.Walk(func(l, _ *Layer) bool {
		if len(l.Components) > 0 {
			has = true
		} else if ol, ok := l.Content.(*ObjectLayer); ok && objectsHaveComponents(ol.Objects) {
			has = true
		}
		return !has
	})
	return has
}

func objectsHaveComponents(objects []Object) bool {
	for i := range objects {
		if len(objects[i].Components) > 0 {
			return true
		}
	}
	return false
}
