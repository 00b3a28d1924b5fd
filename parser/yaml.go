/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/ir"
	"bennypowers.dev/mapio/parser/common"
)

// TilesetVersion is the only supported version of YAML tileset files.
const TilesetVersion = 1

// YAMLParser reads the native YAML dialect. It is the only grammar with
// component definitions and components.
type YAMLParser struct{}

// NewYAMLParser creates a parser for the YAML dialect.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

type yamlContext struct {
	fs   fs.FileSystem
	path string
	dir  string
	m    *ir.Map
}

func decodeYAML(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	root := common.Root(&doc)
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level value is not a mapping")
	}
	return root, nil
}

// ParseFile implements Parser.
func (p *YAMLParser) ParseFile(filesystem fs.FileSystem, path string) (*ir.Map, error) {
	data, err := readFile(filesystem, path)
	if err != nil {
		return nil, err
	}
	root, err := decodeYAML(data)
	if err != nil {
		return nil, failWith(Unknown, path, fmt.Errorf("failed to decode %s: %w", path, err))
	}

	m := newMap(path)
	ctx := &yamlContext{fs: filesystem, path: path, dir: m.Dir(), m: m}
	if err := ctx.parseMap(root); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *yamlContext) fail(code ParseError) error {
	return fail(code, c.path)
}

func parseColorRGBA(text string) (ir.Color, error) {
	return ir.ParseColorRGBA(text)
}

func (c *yamlContext) parseMap(root *yaml.Node) error {
	m := c.m
	var ok bool
	if m.RowCount, ok = common.Int(root, "row-count"); !ok {
		return c.fail(MapMissingHeight)
	}
	if m.RowCount < 0 {
		return failWith(MapMissingHeight, c.path, fmt.Errorf("negative row-count %d", m.RowCount))
	}
	if m.ColumnCount, ok = common.Int(root, "column-count"); !ok {
		return c.fail(MapMissingWidth)
	}
	if m.ColumnCount < 0 {
		return failWith(MapMissingWidth, c.path, fmt.Errorf("negative column-count %d", m.ColumnCount))
	}
	if m.TileWidth, ok = common.Int(root, "tile-width"); !ok {
		return c.fail(MapMissingTileWidth)
	}
	if m.TileHeight, ok = common.Int(root, "tile-height"); !ok {
		return c.fail(MapMissingTileHeight)
	}
	if m.NextLayerID, ok = common.Int(root, "next-layer-id"); !ok {
		return c.fail(MapMissingNextLayerID)
	}
	if m.NextObjectID, ok = common.Int(root, "next-object-id"); !ok {
		return c.fail(MapMissingNextObjectID)
	}

	// Definitions come first so every component below can resolve them.
	for _, node := range common.Seq(root, "component-definitions") {
		def, err := c.parseComponentDef(node)
		if err != nil {
			return err
		}
		m.ComponentDefs = append(m.ComponentDefs, def)
	}

	for _, node := range common.Seq(root, "tilesets") {
		ts, err := c.parseTilesetRef(node)
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

	if m.Properties, err = c.parseProperties(root); err != nil {
		return err
	}
	m.Components, err = c.parseComponents(root)
	return err
}

func (c *yamlContext) parseComponentDef(node *yaml.Node) (*ir.ComponentDef, error) {
	name, ok := common.String(node, "name")
	if !ok {
		return nil, c.fail(ComponentDefMissingName)
	}
	def := ir.NewComponentDef(name)

	for _, attr := range common.Seq(node, "attributes") {
		attrName, ok := common.String(attr, "name")
		if !ok {
			return nil, c.fail(ComponentDefMissingAttributeName)
		}
		typeName, ok := common.String(attr, "type")
		if !ok {
			return nil, c.fail(ComponentDefMissingAttributeType)
		}
		typ, err := ir.ParsePropertyType(typeName)
		if err != nil {
			return nil, failWith(UnsupportedComponentDefAttributeType, c.path, err)
		}
		def.DefineAttribute(attrName, typ)

		text, ok := common.String(attr, "default")
		if !ok {
			continue
		}
		value, err := convertValue(typ, text, c.dir, parseColorRGBA)
		if err != nil {
			return nil, failWith(CorruptComponentDefAttributeValue, c.path, fmt.Errorf("%s.%s: %w", name, attrName, err))
		}
		if err := def.SetDefault(attrName, value); err != nil {
			return nil, failWith(CorruptComponentDefAttributeValue, c.path, err)
		}
	}
	return def, nil
}

func (c *yamlContext) parseComponents(owner *yaml.Node) ([]*ir.Component, error) {
	var components []*ir.Component
	for _, node := range common.Seq(owner, "components") {
		typ, ok := common.String(node, "type")
		if !ok {
			return nil, c.fail(ComponentMissingType)
		}
		def, ok := c.m.ComponentDef(typ)
		if !ok {
			return nil, failWith(UnknownComponentType, c.path, fmt.Errorf("component %q", typ))
		}
		component := ir.NewComponent(def)

		for _, v := range common.Seq(node, "values") {
			attrName, ok := common.String(v, "name")
			if !ok {
				return nil, c.fail(ComponentMissingAttributeName)
			}
			text, ok := common.String(v, "value")
			if !ok {
				return nil, c.fail(ComponentMissingAttributeValue)
			}
			attr, ok := def.Attribute(attrName)
			if !ok {
				return nil, failWith(CorruptComponentAttributeValue, c.path, fmt.Errorf("%w: %s.%s", ir.ErrUnknownAttribute, typ, attrName))
			}
			value, err := convertValue(attr.Value.Type(), text, c.dir, parseColorRGBA)
			if err != nil {
				return nil, failWith(CorruptComponentAttributeValue, c.path, fmt.Errorf("%s.%s: %w", typ, attrName, err))
			}
			if err := component.Set(attrName, value); err != nil {
				return nil, failWith(CorruptComponentAttributeValue, c.path, err)
			}
		}
		components = append(components, component)
	}
	return components, nil
}

func (c *yamlContext) parseTilesetRef(node *yaml.Node) (ir.Tileset, error) {
	var ts ir.Tileset
	var ok bool
	if ts.FirstTile, ok = common.Int(node, "first-global-id"); !ok {
		return ts, c.fail(TilesetMissingFirstGID)
	}
	source, ok := common.String(node, "path")
	if !ok {
		return ts, c.fail(TilesetMissingExternalPath)
	}

	path := ir.ResolvePath(source, c.dir)
	if !c.fs.Exists(path) {
		return ts, failWith(ExternalTilesetDoesNotExist, c.path, fmt.Errorf("tileset %s", path))
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return ts, failWith(UnknownExternalTilesetError, path, err)
	}
	root, err := decodeYAML(data)
	if err != nil {
		return ts, failWith(UnknownExternalTilesetError, path, err)
	}

	sub := &yamlContext{fs: c.fs, path: path, dir: filepath.Dir(path), m: c.m}
	return ts, sub.parseTileset(root, &ts)
}

func (c *yamlContext) parseTileset(node *yaml.Node, ts *ir.Tileset) error {
	if !common.Has(node, "version") {
		return c.fail(TilesetMissingVersion)
	}
	if version, ok := common.Int(node, "version"); !ok || version != TilesetVersion {
		return failWith(UnsupportedTilesetVersion, c.path, fmt.Errorf("version %q", common.Lookup(node, "version").Value))
	}

	var ok bool
	if ts.Name, ok = common.String(node, "name"); !ok {
		return c.fail(TilesetMissingName)
	}
	if ts.TileCount, ok = common.Int(node, "tile-count"); !ok {
		return c.fail(TilesetMissingTileCount)
	}
	if ts.TileWidth, ok = common.Int(node, "tile-width"); !ok {
		return c.fail(TilesetMissingTileWidth)
	}
	if ts.TileHeight, ok = common.Int(node, "tile-height"); !ok {
		return c.fail(TilesetMissingTileHeight)
	}
	if ts.ColumnCount, ok = common.Int(node, "column-count"); !ok {
		return c.fail(TilesetMissingColumnCount)
	}

	image, ok := common.String(node, "image-path")
	if !ok {
		return c.fail(TilesetMissingImagePath)
	}
	ts.ImagePath = ir.ResolvePath(image, c.dir)
	if !c.fs.Exists(ts.ImagePath) {
		return failWith(TilesetImageDoesNotExist, c.path, fmt.Errorf("image %s", ts.ImagePath))
	}
	if ts.ImageWidth, ok = common.Int(node, "image-width"); !ok {
		return c.fail(TilesetMissingImageWidth)
	}
	if ts.ImageHeight, ok = common.Int(node, "image-height"); !ok {
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
	if ts.Properties, err = c.parseProperties(node); err != nil {
		return err
	}
	ts.Components, err = c.parseComponents(node)
	return err
}

func (c *yamlContext) parseTile(node *yaml.Node) (ir.Tile, error) {
	var tile ir.Tile
	var ok bool
	if tile.ID, ok = common.Int(node, "id"); !ok {
		return tile, c.fail(TileMissingID)
	}

	for _, f := range common.Seq(node, "animation") {
		var frame ir.Frame
		if frame.Tile, ok = common.Int(f, "tile"); !ok {
			return tile, c.fail(FrameMissingTile)
		}
		if frame.Duration, ok = common.Int(f, "duration"); !ok {
			return tile, c.fail(FrameMissingDuration)
		}
		tile.Frames = append(tile.Frames, frame)
	}

	objects, err := c.parseObjects(common.Seq(node, "objects"))
	if err != nil {
		return tile, err
	}
	tile.Objects = objects

	if tile.Properties, err = c.parseProperties(node); err != nil {
		return tile, err
	}
	tile.Components, err = c.parseComponents(node)
	return tile, err
}

func (c *yamlContext) parseLayers(nodes []*yaml.Node) ([]ir.Layer, error) {
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

func (c *yamlContext) parseLayer(node *yaml.Node) (ir.Layer, error) {
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
	case "tile-layer":
		text, ok := common.String(node, "data")
		if !ok {
			return layer, c.fail(LayerMissingTileData)
		}
		ids, err := common.SplitFields(text)
		if err != nil {
			return layer, failWith(CorruptTileLayerData, c.path, err)
		}
		matrix, err := ir.ReshapeTiles(ids, c.m.RowCount, c.m.ColumnCount)
		if err != nil {
			return layer, failWith(CorruptTileLayerData, c.path, err)
		}
		layer.MakeTileLayer(0, 0).Tiles = matrix
	case "object-layer":
		objects, err := c.parseObjects(common.Seq(node, "objects"))
		if err != nil {
			return layer, err
		}
		layer.MakeObjectLayer().Objects = objects
	case "group-layer":
		children, err := c.parseLayers(common.Seq(node, "layers"))
		if err != nil {
			return layer, err
		}
		layer.MakeGroupLayer().Layers = children
	default:
		return layer, failWith(UnsupportedLayerType, c.path, fmt.Errorf("layer type %q", typ))
	}

	var err error
	if layer.Properties, err = c.parseProperties(node); err != nil {
		return layer, err
	}
	layer.Components, err = c.parseComponents(node)
	return layer, err
}

func (c *yamlContext) parseObjects(nodes []*yaml.Node) ([]ir.Object, error) {
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

func (c *yamlContext) parseObject(node *yaml.Node) (ir.Object, error) {
	obj := ir.Object{Visible: true}
	var ok bool
	if obj.ID, ok = common.Int(node, "id"); !ok {
		return obj, c.fail(ObjectMissingID)
	}
	typ, ok := common.String(node, "type")
	if !ok {
		return obj, c.fail(ObjectMissingType)
	}
	if obj.Kind, ok = ir.ParseObjectKind(typ); !ok {
		return obj, failWith(UnsupportedObjectType, c.path, fmt.Errorf("object type %q", typ))
	}

	obj.Name, _ = common.String(node, "name")
	obj.Tag, _ = common.String(node, "tag")
	if visible, ok := common.Bool(node, "visible"); ok {
		obj.Visible = visible
	}
	obj.X, _ = common.Float(node, "x")
	obj.Y, _ = common.Float(node, "y")
	obj.Width, _ = common.Float(node, "width")
	obj.Height, _ = common.Float(node, "height")

	var err error
	if obj.Properties, err = c.parseProperties(node); err != nil {
		return obj, err
	}
	obj.Components, err = c.parseComponents(node)
	return obj, err
}

func (c *yamlContext) parseProperties(owner *yaml.Node) (ir.Properties, error) {
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
		value, err := convertValue(typ, text, c.dir, parseColorRGBA)
		if err != nil {
			return nil, failWith(CorruptPropertyValue, c.path, fmt.Errorf("property %q: %w", name, err))
		}
		props = append(props, ir.Property{Name: name, Value: value})
	}
	return props, nil
}
