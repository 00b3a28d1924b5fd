/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator checks invariants of a parsed map that the parsers do
// not enforce: id uniqueness, tile id resolution, tileset ranges and
// component references.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/mapio/ir"
)

// ValidationError represents a broken map invariant.
type ValidationError struct {
	// FilePath is the path of the map.
	FilePath string
	// Path locates the problematic element, e.g. "layers[1].objects[0]".
	Path string
	// Message describes what's wrong.
	Message string
	// Suggestion provides an actionable fix.
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.FilePath != "" {
		sb.WriteString(e.FilePath)
		sb.WriteString(": ")
	}
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

type checker struct {
	m         *ir.Map
	errors    []ValidationError
	layerIDs  map[int]string
	objectIDs map[int]string
}

func (c *checker) report(path, suggestion, format string, args ...any) {
	c.errors = append(c.errors, ValidationError{
		FilePath:   c.m.Path,
		Path:       path,
		Message:    fmt.Sprintf(format, args...),
		Suggestion: suggestion,
	})
}

// Validate checks m and returns every violation found, in document order.
func Validate(m *ir.Map) []ValidationError {
	c := &checker{
		m:         m,
		layerIDs:  make(map[int]string),
		objectIDs: make(map[int]string),
	}

	if m.RowCount <= 0 || m.ColumnCount <= 0 {
		c.report("", "", "map size %dx%d is empty", m.ColumnCount, m.RowCount)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		c.report("", "", "tile size %dx%d is not positive", m.TileWidth, m.TileHeight)
	}

	c.checkTilesets()
	c.checkComponentDefs()
	c.checkComponents("components", m.Components)
	c.checkLayers("layers", m.Layers)

	return c.errors
}

func (c *checker) checkTilesets() {
	type span struct {
		first, last int
		path        string
	}
	var spans []span

	for i := range c.m.Tilesets {
		ts := &c.m.Tilesets[i]
		path := fmt.Sprintf("tilesets[%d]", i)

		if ts.FirstTile < 1 {
			c.report(path, "global ids start at 1", "first global id %d is not positive", ts.FirstTile)
		}
		if ts.TileCount <= 0 {
			c.report(path, "", "tileset %q has no tiles", ts.Name)
			continue
		}
		if ts.ColumnCount <= 0 {
			c.report(path, "", "tileset %q has %d columns", ts.Name, ts.ColumnCount)
		}
		spans = append(spans, span{ts.FirstTile, ts.LastTile(), path})

		for j := range ts.Tiles {
			tile := &ts.Tiles[j]
			tilePath := fmt.Sprintf("%s.tiles[%d]", path, j)
			if tile.ID < 0 || tile.ID >= ts.TileCount {
				c.report(tilePath, "", "tile id %d is outside [0, %d)", tile.ID, ts.TileCount)
			}
			for k, f := range tile.Frames {
				framePath := fmt.Sprintf("%s.animation[%d]", tilePath, k)
				if f.Tile < 0 || f.Tile >= ts.TileCount {
					c.report(framePath, "", "frame tile %d is outside [0, %d)", f.Tile, ts.TileCount)
				}
				if f.Duration <= 0 {
					c.report(framePath, "", "frame duration %d is not positive", f.Duration)
				}
			}
			c.checkObjects(tilePath+".objects", tile.Objects, false)
			c.checkComponents(tilePath+".components", tile.Components)
		}
		c.checkComponents(path+".components", ts.Components)
	}

	sort.Slice(spans, func(a, b int) bool { return spans[a].first < spans[b].first })
	for i := 1; i < len(spans); i++ {
		if spans[i].first <= spans[i-1].last {
			c.report(spans[i].path, "move the tileset past the previous range",
				"global ids %d-%d overlap %s (%d-%d)",
				spans[i].first, spans[i].last, spans[i-1].path, spans[i-1].first, spans[i-1].last)
		}
	}
}

func (c *checker) checkComponentDefs() {
	seen := make(map[string]bool)
	for i, def := range c.m.ComponentDefs {
		path := fmt.Sprintf("component-definitions[%d]", i)
		if seen[def.Name] {
			c.report(path, "", "component %q is defined twice", def.Name)
		}
		seen[def.Name] = true
	}
}

func (c *checker) checkComponents(path string, components []*ir.Component) {
	for i, comp := range components {
		compPath := fmt.Sprintf("%s[%d]", path, i)
		def, ok := c.m.ComponentDef(comp.Type)
		if !ok {
			c.report(compPath, "add a component definition", "component type %q is not defined", comp.Type)
			continue
		}
		for _, v := range comp.Values {
			attr, ok := def.Attribute(v.Name)
			if !ok {
				c.report(compPath, "", "attribute %q is not part of %q", v.Name, comp.Type)
				continue
			}
			if attr.Value.Type() != v.Value.Type() {
				c.report(compPath, "", "attribute %q is %s, definition says %s", v.Name, v.Value.Type(), attr.Value.Type())
			}
		}
	}
}

func (c *checker) checkLayers(path string, layers []ir.Layer) {
	for i := range layers {
		layer := &layers[i]
		layerPath := fmt.Sprintf("%s[%d]", path, i)

		if prev, dup := c.layerIDs[layer.ID]; dup {
			c.report(layerPath, "", "layer id %d is also used by %s", layer.ID, prev)
		} else {
			c.layerIDs[layer.ID] = layerPath
		}
		if layer.ID >= c.m.NextLayerID {
			c.report(layerPath, "raise the next layer id", "layer id %d is not below the next layer id %d", layer.ID, c.m.NextLayerID)
		}
		if layer.Opacity < 0 || layer.Opacity > 1 {
			c.report(layerPath, "", "opacity %g is outside [0, 1]", layer.Opacity)
		}
		c.checkComponents(layerPath+".components", layer.Components)

		switch content := layer.Content.(type) {
		case *ir.TileLayer:
			c.checkTiles(layerPath, content.Tiles)
		case *ir.ObjectLayer:
			c.checkObjects(layerPath+".objects", content.Objects, true)
		case *ir.GroupLayer:
			c.checkLayers(layerPath+".layers", content.Layers)
		default:
			c.report(layerPath, "", "layer %d has no content", layer.ID)
		}
	}
}

func (c *checker) checkTiles(path string, tiles ir.TileMatrix) {
	if tiles.Rows() != c.m.RowCount || (tiles.Rows() > 0 && tiles.Cols() != c.m.ColumnCount) {
		c.report(path, "", "tile data is %dx%d, map is %dx%d", tiles.Cols(), tiles.Rows(), c.m.ColumnCount, c.m.RowCount)
	}
	for r, row := range tiles {
		if len(row) != tiles.Cols() {
			c.report(fmt.Sprintf("%s.data[%d]", path, r), "", "row has %d tiles, expected %d", len(row), tiles.Cols())
		}
		for col, gid := range row {
			if gid == 0 {
				continue
			}
			if _, _, ok := c.m.TilesetFor(gid); !ok {
				c.report(fmt.Sprintf("%s.data[%d][%d]", path, r, col), "", "tile id %d belongs to no tileset", gid)
			}
		}
	}
}

// checkObjects validates objects. Tile collision objects live in their own
// id space, so only layer objects are checked against the map counter.
func (c *checker) checkObjects(path string, objects []ir.Object, mapIDs bool) {
	for i := range objects {
		obj := &objects[i]
		objPath := fmt.Sprintf("%s[%d]", path, i)
		if mapIDs {
			if prev, dup := c.objectIDs[obj.ID]; dup {
				c.report(objPath, "", "object id %d is also used by %s", obj.ID, prev)
			} else {
				c.objectIDs[obj.ID] = objPath
			}
			if obj.ID >= c.m.NextObjectID {
				c.report(objPath, "raise the next object id", "object id %d is not below the next object id %d", obj.ID, c.m.NextObjectID)
			}
		}
		if obj.Width < 0 || obj.Height < 0 {
			c.report(objPath, "", "object size %gx%g is negative", obj.Width, obj.Height)
		}
		for _, p := range obj.Properties {
			ref, ok := p.Value.(ir.ObjectRef)
			if ok && ref != 0 && !c.objectExists(int(ref)) {
				c.report(objPath, "", "property %q references missing object %d", p.Name, int(ref))
			}
		}
		c.checkComponents(objPath+".components", obj.Components)
	}
}

func (c *checker) objectExists(id int) bool {
	found := false
	c.m.Walk(func(l, _ *ir.Layer) bool {
		if ol, ok := l.Content.(*ir.ObjectLayer); ok {
			for i := range ol.Objects {
				if ol.Objects[i].ID == id {
					found = true
				}
			}
		}
		return !found
	})
	return found
}
