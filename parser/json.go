/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/internal/logger"
	"bennypowers.dev/mapio/ir"
	"bennypowers.dev/mapio/parser/common"
)

// JSONParser reads Tiled JSON maps and tilesets. Comments and trailing
// commas are tolerated.
type JSONParser struct{}

// NewJSONParser creates a parser for the JSON dialect.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

type jsonContext struct {
	fs   fs.FileSystem
	path string
	dir  string
	m    *ir.Map
}

// decodeJSON parses JSON into a YAML node tree, which JSON is a subset of.
func decodeJSON(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, err
	}
	root := common.Root(&doc)
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level value is not an object")
	}
	return root, nil
}

// ParseFile implements Parser.
func (p *JSONParser) ParseFile(filesystem fs.FileSystem, path string) (*ir.Map, error) {
	data, err := readFile(filesystem, path)
	if err != nil {
		return nil, err
	}
	root, err := decodeJSON(data)
	if err != nil {
		return nil, failWith(Unknown, path, fmt.Errorf("failed to decode %s: %w", path, err))
	}

	m := newMap(path)
	ctx := &jsonContext{fs: filesystem, path: path, dir: m.Dir(), m: m}
	if err := ctx.parseMap(root); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *jsonContext) fail(code ParseError) error {
	return fail(code, c.path)
}

func (c *jsonContext) parseMap(root *yaml.Node) error {
	if o, ok := common.String(root, "orientation"); ok && o != "orthogonal" {
		return failWith(UnsupportedMapOrientation, c.path, fmt.Errorf("orientation %q", o))
	}
	if infinite, _ := common.Bool(root, "infinite"); infinite {
		return c.fail(UnsupportedInfiniteMap)
	}

	m := c.m
	var ok bool
	if m.TileWidth, ok = common.Int(root, "tilewidth"); !ok {
		return c.fail(MapMissingTileWidth)
	}
	if m.TileHeight, ok = common.Int(root, "tileheight"); !ok {
		return c.fail(MapMissingTileHeight)
	}
	if m.ColumnCount, ok = common.Int(root, "width"); !ok {
		return c.fail(MapMissingWidth)
	}
	if m.ColumnCount < 0 {
		return failWith(MapMissingWidth, c.path, fmt.Errorf("negative width %d", m.ColumnCount))
	}
	if m.RowCount, ok = common.Int(root, "height"); !ok {
		return c.fail(MapMissingHeight)
	}
	if m.RowCount < 0 {
		return failWith(MapMissingHeight, c.path, fmt.Errorf("negative height %d", m.RowCount))
	}
	if m.NextLayerID, ok = common.Int(root, "nextlayerid"); !ok {
		return c.fail(MapMissingNextLayerID)
	}
	if m.NextObjectID, ok = common.Int(root, "nextobjectid"); !ok {
		return c.fail(MapMissingNextObjectID)
	}

	if !common.Has(root, "tilesets") {
		logger.Warn("%s has no tilesets", c.path)
	}
	for _, node := range common.Seq(root, "tilesets") {
		ts, err := c.parseTileset(node)
		if err != nil {
			return err
		}
		m.Tilesets = append(m.Tilesets, ts)
	}

	layers, err := c.parseLayers(common.Seq(root, "layers"))
	if err != nil {
		return err
	}
	m.Layers = layers

	m.Properties, err = c.parseProperties(root)
	return err
}

func (c *jsonContext) parseTileset(node *yaml.Node) (ir.Tileset, error) {
	var ts ir.Tileset
	var ok bool
	if ts.FirstTile, ok = common.Int(node, "firstgid"); !ok {
		return ts, c.fail(TilesetMissingFirstGID)
	}

	source, external := common.String(node, "source")
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
	root, err := decodeJSON(data)
	if err != nil {
		return ts, failWith(UnknownExternalTilesetError, path, err)
	}

	sub := &jsonContext{fs: c.fs, path: path, dir: filepath.Dir(path), m: c.m}
	return ts, sub.parseTilesetCommon(root, &ts)
}

func (c *jsonContext) parseTilesetCommon(node *yaml.Node, ts *ir.Tileset) error {
	var ok bool
	if ts.Name, ok = common.String(node, "name"); !ok {
		return c.fail(TilesetMissingName)
	}
	if ts.TileWidth, ok = common.Int(node, "tilewidth"); !ok {
		return c.fail(TilesetMissingTileWidth)
	}
	if ts.TileHeight, ok = common.Int(node, "tileheight"); !ok {
		return c.fail(TilesetMissingTileHeight)
	}
	if ts.TileCount, ok = common.Int(node, "tilecount"); !ok {
		return c.fail(TilesetMissingTileCount)
	}
	if ts.ColumnCount, ok = common.Int(node, "columns"); !ok {
		return c.fail(TilesetMissingColumnCount)
	}

	image, ok := common.String(node, "image")
	if !ok {
		return c.fail(TilesetMissingImagePath)
	}
	ts.ImagePath = ir.ResolvePath(image, c.dir)
	if !c.fs.Exists(ts.ImagePath) {
		return failWith(TilesetImageDoesNotExist, c.path, fmt.Errorf("image %s", ts.ImagePath))
	}
	if ts.ImageWidth, ok = common.Int(node, "imagewidth"); !ok {
		return c.fail(TilesetMissingImageWidth)
	}
	if ts.ImageHeight, ok = common.Int(node, "imageheight"); !ok {
		return c.fail(TilesetMissingImageHeight)
	}

	for _, tileNode := range common.Seq(node, "tiles") {
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

func (c *jsonContext) parseTile(node *yaml.Node) (ir.Tile, error) {
	var tile ir.Tile
	var ok bool
	if tile.ID, ok = common.Int(node, "id"); !ok {
		return tile, c.fail(TileMissingID)
	}

	for _, f := range common.Seq(node, "animation") {
		var frame ir.Frame
		if frame.Tile, ok = common.Int(f, "tileid"); !ok {
			return tile, c.fail(FrameMissingTile)
		}
		if frame.Duration, ok = common.Int(f, "duration"); !ok {
			return tile, c.fail(FrameMissingDuration)
		}
		tile.Frames = append(tile.Frames, frame)
	}

	if group := common.Lookup(node, "objectgroup"); group != nil {
		objects, err := c.parseObjects(common.Seq(group, "objects"))
		if err != nil {
			return tile, err
		}
		tile.Objects = objects
	}

	var err error
	tile.Properties, err = c.parseProperties(node)
	return tile, err
}

func (c *jsonContext) parseLayers(nodes []*yaml.Node) ([]ir.Layer, error) {
	var layers []ir.Layer
	for _, node := range nodes {
		layer, err := c.parseLayer(node)
		if err != nil {
			return nil, err
		}
		layer.Index = len(layers)
		layers = append(layers, layer)
	}
	return layers, nil
}

func (c *jsonContext) parseLayer(node *yaml.Node) (ir.Layer, error) {
	id, ok := common.Int(node, "id")
	if !ok {
		return ir.Layer{}, c.fail(LayerMissingID)
	}
	layer := ir.NewLayer(id)
	if name, ok := common.String(node, "name"); ok {
		layer.Name = name
	}
	if opacity, ok := common.Float(node, "opacity"); ok {
		layer.Opacity = opacity
	}
	if visible, ok := common.Bool(node, "visible"); ok {
		layer.Visible = visible
	}

	typ, ok := common.String(node, "type")
	if !ok {
		return layer, c.fail(LayerMissingType)
	}
	switch typ {
	case "tilelayer":
		if err := c.parseTileLayer(node, &layer); err != nil {
			return layer, err
		}
	case "objectgroup":
		objects, err := c.parseObjects(common.Seq(node, "objects"))
		if err != nil {
			return layer, err
		}
		layer.MakeObjectLayer().Objects = objects
	case "group":
		children, err := c.parseLayers(common.Seq(node, "layers"))
		if err != nil {
			return layer, err
		}
		layer.MakeGroupLayer().Layers = children
	default:
		return layer, failWith(UnsupportedLayerType, c.path, fmt.Errorf("layer type %q", typ))
	}

	var err error
	layer.Properties, err = c.parseProperties(node)
	return layer, err
}

func (c *jsonContext) parseTileLayer(node *yaml.Node, layer *ir.Layer) error {
	rows, cols := c.m.RowCount, c.m.ColumnCount
	if w, ok := common.Int(node, "width"); ok && w != cols {
		logger.Warn("tile layer %d width %d differs from map width %d", layer.ID, w, cols)
	}
	if h, ok := common.Int(node, "height"); ok && h != rows {
		logger.Warn("tile layer %d height %d differs from map height %d", layer.ID, h, rows)
	}

	if encoding, ok := common.String(node, "encoding"); ok && encoding != "csv" {
		return failWith(UnsupportedTileLayerEncoding, c.path, fmt.Errorf("encoding %q", encoding))
	}
	if compression, _ := common.String(node, "compression"); compression != "" {
		return failWith(UnsupportedTileLayerEncoding, c.path, fmt.Errorf("compression %q", compression))
	}

	data := common.Lookup(node, "data")
	if data == nil {
		return c.fail(LayerMissingTileData)
	}
	if data.Kind != yaml.SequenceNode {
		return failWith(CorruptTileLayerData, c.path, fmt.Errorf("layer %d data is not an array", layer.ID))
	}

	ids := make([]int, 0, len(data.Content))
	for _, item := range data.Content {
		id, ok := common.ScalarInt(item)
		if !ok || id < 0 {
			return failWith(CorruptTileLayerData, c.path, fmt.Errorf("bad tile id %q", item.Value))
		}
		ids = append(ids, id)
	}

	matrix, err := ir.ReshapeTiles(ids, rows, cols)
	if err != nil {
		return failWith(CorruptTileLayerData, c.path, err)
	}
	layer.MakeTileLayer(0, 0).Tiles = matrix
	return nil
}

func (c *jsonContext) parseObjects(nodes []*yaml.Node) ([]ir.Object, error) {
	var objects []ir.Object
	for _, node := range nodes {
		obj, err := c.parseObject(node)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func (c *jsonContext) parseObject(node *yaml.Node) (ir.Object, error) {
	obj := ir.Object{Visible: true}
	var ok bool
	if obj.ID, ok = common.Int(node, "id"); !ok {
		return obj, c.fail(ObjectMissingID)
	}
	obj.X, _ = common.Float(node, "x")
	obj.Y, _ = common.Float(node, "y")
	obj.Width, _ = common.Float(node, "width")
	obj.Height, _ = common.Float(node, "height")
	obj.Name, _ = common.String(node, "name")
	if obj.Tag, ok = common.String(node, "type"); !ok {
		obj.Tag, _ = common.String(node, "class")
	}
	if visible, ok := common.Bool(node, "visible"); ok {
		obj.Visible = visible
	}

	obj.Kind = ir.ObjectRect
	if point, _ := common.Bool(node, "point"); point {
		obj.Kind = ir.ObjectPoint
	} else if ellipse, _ := common.Bool(node, "ellipse"); ellipse {
		obj.Kind = ir.ObjectEllipse
	}

	var err error
	obj.Properties, err = c.parseProperties(node)
	return obj, err
}

func (c *jsonContext) parseProperties(owner *yaml.Node) (ir.Properties, error) {
	var props ir.Properties
	for _, node := range common.Seq(owner, "properties") {
		name, ok := common.String(node, "name")
		if !ok {
			return nil, c.fail(PropertyMissingName)
		}
		typeName, ok := common.String(node, "type")
		if !ok {
			return nil, c.fail(PropertyMissingType)
		}
		typ, err := ir.ParsePropertyType(typeName)
		if err != nil {
			return nil, failWith(UnsupportedPropertyType, c.path, err)
		}

		text, ok := common.String(node, "value")
		if !ok {
			return nil, failWith(CorruptPropertyValue, c.path, fmt.Errorf("property %q has no value", name))
		}
		value, err := convertValue(typ, text, c.dir, common.ParseTiledColor)
		if err != nil {
			return nil, failWith(CorruptPropertyValue, c.path, fmt.Errorf("property %q: %w", name, err))
		}
		props = append(props, ir.Property{Name: name, Value: value})
	}
	return props, nil
}
