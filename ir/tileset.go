/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

// Frame is one step of a tile animation.
type Frame struct {
	Tile     int // local id
	Duration int // milliseconds
}

// Tile carries the extra data of one tileset tile. Tiles without extra
// data are implicit and never materialized.
type Tile struct {
	ID         int
	Frames     []Frame
	Objects    []Object
	Properties Properties
	Components []*Component
}

// IsWorthSaving reports whether the tile has anything beyond its image.
func (t *Tile) IsWorthSaving() bool {
	return len(t.Frames) > 0 ||
		len(t.Objects) > 0 ||
		len(t.Properties) > 0 ||
		len(t.Components) > 0
}

// Tileset is a sheet of equally sized tiles cut from one image.
type Tileset struct {
	Name        string
	TileWidth   int
	TileHeight  int
	TileCount   int
	ColumnCount int
	ImagePath   string
	ImageWidth  int
	ImageHeight int
	FirstTile   int
	Tiles       []Tile
	Properties  Properties
	Components  []*Component
}

// LastTile returns the last global id covered by the tileset.
func (ts *Tileset) LastTile() int {
	return ts.FirstTile + ts.TileCount - 1
}

// Contains reports whether gid falls in [FirstTile, FirstTile+TileCount).
func (ts *Tileset) Contains(gid int) bool {
	return gid >= ts.FirstTile && gid < ts.FirstTile+ts.TileCount
}

// FancyTiles returns the tiles that carry extra data.
func (ts *Tileset) FancyTiles() []*Tile {
	var out []*Tile
	for i := range ts.Tiles {
		if ts.Tiles[i].IsWorthSaving() {
			out = append(out, &ts.Tiles[i])
		}
	}
	return out
}

// Tile returns the tile with the given local id, if materialized.
func (ts *Tileset) Tile(local int) (*Tile, bool) {
	for i := range ts.Tiles {
		if ts.Tiles[i].ID == local {
			return &ts.Tiles[i], true
		}
	}
	return nil, false
}
