/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/internal/logger"
	"bennypowers.dev/mapio/ir"
	"bennypowers.dev/mapio/parser/common"
)

// XMLParser reads Tiled TMX maps and TSX tilesets.
type XMLParser struct{}

// NewXMLParser creates a parser for the XML dialect.
func NewXMLParser() *XMLParser {
	return &XMLParser{}
}

// xmlContext carries the state of one ParseFile call.
type xmlContext struct {
	fs   fs.FileSystem
	path string // file being read
	dir  string // directory relative paths resolve against
	m    *ir.Map
}

// ParseFile implements Parser.
func (p *XMLParser) ParseFile(filesystem fs.FileSystem, path string) (*ir.Map, error) {
	data, err := readFile(filesystem, path)
	if err != nil {
		return nil, err
	}
	root, err := common.DecodeXML(data)
	if err != nil {
		return nil, failWith(Unknown, path, fmt.Errorf("failed to decode %s: %w", path, err))
	}
	if root.Name() != "map" {
		return nil, failWith(Unknown, path, fmt.Errorf("root element is <%s>, not <map>", root.Name()))
	}

	m := newMap(path)
	ctx := &xmlContext{fs: filesystem, path: path, dir: m.Dir(), m: m}
	if err := ctx.parseMap(root); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *xmlContext) fail(code ParseError) error {
	return fail(code, c.path)
}

func (c *xmlContext) parseMap(root *common.XMLNode) error {
	if o := root.AttrOr("orientation", "orthogonal"); o != "orthogonal" {
		return failWith(UnsupportedMapOrientation, c.path, fmt.Errorf("orientation %q", o))
	}
	if root.AttrOr("infinite", "0") == "1" {
		return c.fail(UnsupportedInfiniteMap)
	}

	m := c.m
	var ok bool
	if m.TileWidth, ok = root.IntAttr("tilewidth"); !ok {
		return c.fail(MapMissingTileWidth)
	}
	if m.TileHeight, ok = root.IntAttr("tileheight"); !ok {
		return c.fail(MapMissingTileHeight)
	}
	if m.ColumnCount, ok = root.IntAttr("width"); !ok {
		return c.fail(MapMissingWidth)
	}
	if m.ColumnCount < 0 {
		return failWith(MapMissingWidth, c.path, fmt.Errorf("negative width %d", m.ColumnCount))
	}
	if m.RowCount, ok = root.IntAttr("height"); !ok {
		return c.fail(MapMissingHeight)
	}
	if m.RowCount < 0 {
		return failWith(MapMissingHeight, c.path, fmt.Errorf("negative height %d", m.RowCount))
	}
	if m.NextLayerID, ok = root.IntAttr("nextlayerid"); !ok {
		return c.fail(MapMissingNextLayerID)
	}
	if m.NextObjectID, ok = root.IntAttr("nextobjectid"); !ok {
		return c.fail(MapMissingNextObjectID)
	}

	for _, node := range root.Children("tileset") {
		ts, err := c.parseTileset(node)
		if err != nil {
			return err
		}
		m.Tilesets = append(m.Tilesets, ts)
	}

	layers, err := c.parseLayers(root)
	if err != nil {
		return err
	}
	m.Layers = layers

	m.Properties, err = c.parseProperties(root)
	return err
}

func (c *xmlContext) parseTileset(node *common.XMLNode) (ir.Tileset, error) {
	var ts ir.Tileset
	var ok bool
	if ts.FirstTile, ok = node.IntAttr("firstgid"); !ok {
		return ts, c.fail(TilesetMissingFirstGID)
	}

	source, external := node.Attr("source")
	if !external {
		return ts, c.parseTilesetCommon(node, &ts)
	}

	path := ir.ResolvePath(source, c.dir)
	if !c.fs.Exists(path) {
		return ts, failWith(ExternalTilesetDoesNotExist, c.path, fmt.Errorf("tileset %s", path))
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return ts, failWith(UnknownExternalTilesetError, path, err)
	}
	root, err := common.DecodeXML(data)
	if err != nil {
		return ts, failWith(UnknownExternalTilesetError, path, err)
	}

	sub := &xmlContext{fs: c.fs, path: path, dir: filepath.Dir(path), m: c.m}
	return ts, sub.parseTilesetCommon(root, &ts)
}

// parseTilesetCommon reads the fields shared by embedded <tileset> elements
// and the root of external TSX files.
func (c *xmlContext) parseTilesetCommon(node *common.XMLNode, ts *ir.Tileset) error {
	var ok bool
	if ts.Name, ok = node.Attr("name"); !ok {
		return c.fail(TilesetMissingName)
	}
	if ts.TileWidth, ok = node.IntAttr("tilewidth"); !ok {
		return c.fail(TilesetMissingTileWidth)
	}
	if ts.TileHeight, ok = node.IntAttr("tileheight"); !ok {
		return c.fail(TilesetMissingTileHeight)
	}
	if ts.TileCount, ok = node.IntAttr("tilecount"); !ok {
		return c.fail(TilesetMissingTileCount)
	}
	if ts.ColumnCount, ok = node.IntAttr("columns"); !ok {
		return c.fail(TilesetMissingColumnCount)
	}

	image := node.Child("image")
	if image == nil {
		return c.fail(TilesetMissingImagePath)
	}
	source, ok := image.Attr("source")
	if !ok {
		return c.fail(TilesetMissingImagePath)
	}
	ts.ImagePath = ir.ResolvePath(source, c.dir)
	if !c.fs.Exists(ts.ImagePath) {
		return failWith(TilesetImageDoesNotExist, c.path, fmt.Errorf("image %s", ts.ImagePath))
	}
	if ts.ImageWidth, ok = image.IntAttr("width"); !ok {
		return c.fail(TilesetMissingImageWidth)
	}
	if ts.ImageHeight, ok = image.IntAttr("height"); !ok {
		return c.fail(TilesetMissingImageHeight)
	}

	for _, tileNode := range node.Children("tile") {
		tile, err := c.parseTile(tileNode)
		if err != nil {
			return err
		}
		if tile.IsWorthSaving() {
			ts.Tiles = append(ts.Tiles, tile)
		}
	}

	var err error
	ts.Properties, err = c.parseProperties(node)
	return err
}

func (c *xmlContext) parseTile(node *common.XMLNode) (ir.Tile, error) {
	var tile ir.Tile
	var ok bool
	if tile.ID, ok = node.IntAttr("id"); !ok {
		return tile, c.fail(TileMissingID)
	}

	if anim := node.Child("animation"); anim != nil {
		for _, f := range anim.Children("frame") {
			var frame ir.Frame
			if frame.Tile, ok = f.IntAttr("tileid"); !ok {
				return tile, c.fail(FrameMissingTile)
			}
			if frame.Duration, ok = f.IntAttr("duration"); !ok {
				return tile, c.fail(FrameMissingDuration)
			}
			tile.Frames = append(tile.Frames, frame)
		}
	}

	if group := node.Child("objectgroup"); group != nil {
		for _, o := range group.Children("object") {
			obj, err := c.parseObject(o)
			if err != nil {
				return tile, err
			}
			tile.Objects = append(tile.Objects, obj)
		}
	}

	var err error
	tile.Properties, err = c.parseProperties(node)
	return tile, err
}

func (c *xmlContext) parseLayers(parent *common.XMLNode) ([]ir.Layer, error) {
	var layers []ir.Layer
	for _, node := range parent.Nodes {
		switch node.Name() {
		case "layer", "objectgroup", "group":
		default:
			continue
		}
		layer, err := c.parseLayer(node)
		if err != nil {
			return nil, err
		}
		layer.Index = len(layers)
		layers = append(layers, layer)
	}
	return layers, nil
}

func (c *xmlContext) parseLayer(node *common.XMLNode) (ir.Layer, error) {
	id, ok := node.IntAttr("id")
	if !ok {
		return ir.Layer{}, c.fail(LayerMissingID)
	}
	layer := ir.NewLayer(id)
	layer.Name = node.AttrOr("name", "Layer")
	if opacity, ok := node.FloatAttr("opacity"); ok {
		layer.Opacity = opacity
	}
	layer.Visible = node.AttrOr("visible", "1") != "0"

	switch node.Name() {
	case "layer":
		if err := c.parseTileLayer(node, &layer); err != nil {
			return layer, err
		}
	case "objectgroup":
		ol := layer.MakeObjectLayer()
		for _, o := range node.Children("object") {
			obj, err := c.parseObject(o)
			if err != nil {
				return layer, err
			}
			ol.Objects = append(ol.Objects, obj)
		}
	case "group":
		gl := layer.MakeGroupLayer()
		children, err := c.parseLayers(node)
		if err != nil {
			return layer, err
		}
		gl.Layers = children
	default:
		return layer, c.fail(UnsupportedLayerType)
	}

	var err error
	layer.Properties, err = c.parseProperties(node)
	return layer, err
}

func (c *xmlContext) parseTileLayer(node *common.XMLNode, layer *ir.Layer) error {
	rows, cols := c.m.RowCount, c.m.ColumnCount
	if w, ok := node.IntAttr("width"); ok && w != cols {
		logger.Warn("tile layer %d width %d differs from map width %d", layer.ID, w, cols)
	}
	if h, ok := node.IntAttr("height"); ok && h != rows {
		logger.Warn("tile layer %d height %d differs from map height %d", layer.ID, h, rows)
	}

	data := node.Child("data")
	if data == nil {
		return c.fail(LayerMissingTileData)
	}
	if _, compressed := data.Attr("compression"); compressed {
		return c.fail(UnsupportedTileLayerEncoding)
	}

	var ids []int
	encoding, encoded := data.Attr("encoding")
	switch {
	case encoded && encoding == "csv":
		var err error
		if ids, err = common.SplitCSV(data.Text); err != nil {
			return failWith(CorruptTileLayerData, c.path, err)
		}
	case encoded:
		return failWith(UnsupportedTileLayerEncoding, c.path, fmt.Errorf("encoding %q", encoding))
	default:
		for _, t := range data.Children("tile") {
			// Tiled omits gid for empty tiles.
			gid := 0
			if v, ok := t.Attr("gid"); ok {
				var err error
				if gid, err = atoi(v); err != nil {
					return failWith(CorruptTileLayerData, c.path, err)
				}
			}
			ids = append(ids, gid)
		}
	}

	if len(ids) == 0 && rows*cols > 0 {
		return c.fail(LayerMissingTileData)
	}
	matrix, err := ir.ReshapeTiles(ids, rows, cols)
	if err != nil {
		return failWith(CorruptTileLayerData, c.path, err)
	}
	tl := layer.MakeTileLayer(0, 0)
	tl.Tiles = matrix
	return nil
}

func (c *xmlContext) parseObject(node *common.XMLNode) (ir.Object, error) {
	var obj ir.Object
	var ok bool
	if obj.ID, ok = node.IntAttr("id"); !ok {
		return obj, c.fail(ObjectMissingID)
	}
	obj.X, _ = node.FloatAttr("x")
	obj.Y, _ = node.FloatAttr("y")
	obj.Width, _ = node.FloatAttr("width")
	obj.Height, _ = node.FloatAttr("height")
	obj.Name = node.AttrOr("name", "")
	// Tiled 1.9 renamed the object "type" attribute to "class".
	obj.Tag = node.AttrOr("type", node.AttrOr("class", ""))
	obj.Visible = node.AttrOr("visible", "1") != "0"

	switch {
	case node.Child("point") != nil:
		obj.Kind = ir.ObjectPoint
	case node.Child("ellipse") != nil:
		obj.Kind = ir.ObjectEllipse
	default:
		obj.Kind = ir.ObjectRect
	}

	var err error
	obj.Properties, err = c.parseProperties(node)
	return obj, err
}

func (c *xmlContext) parseProperties(owner *common.XMLNode) (ir.Properties, error) {
	group := owner.Child("properties")
	if group == nil {
		return nil, nil
	}
	var props ir.Properties
	for _, node := range group.Children("property") {
		name, ok := node.Attr("name")
		if !ok {
			return nil, c.fail(PropertyMissingName)
		}

		// String properties carry no type attribute.
		typ := ir.TypeString
		if typeName, ok := node.Attr("type"); ok {
			var err error
			if typ, err = ir.ParsePropertyType(typeName); err != nil {
				return nil, failWith(UnsupportedPropertyType, c.path, err)
			}
		}

		// Multi-line strings are stored as element text.
		text, ok := node.Attr("value")
		if !ok {
			text = node.Text
		}
		if typ != ir.TypeString {
			text = strings.TrimSpace(text)
		}

		value, err := convertValue(typ, text, c.dir, common.ParseTiledColor)
		if err != nil {
			return nil, failWith(CorruptPropertyValue, c.path, fmt.Errorf("property %q: %w", name, err))
		}
		props = append(props, ir.Property{Name: name, Value: value})
	}
	return props, nil
}
