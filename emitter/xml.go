/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package emitter

import (
	"encoding/xml"
	"path/filepath"
	"strconv"
	"strings"

	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/internal/logger"
	"bennypowers.dev/mapio/ir"
	"bennypowers.dev/mapio/parser/common"
)

// XMLRenderer writes Tiled TMX maps and TSX tilesets.
type XMLRenderer struct{}

// Render implements Renderer.
func (r *XMLRenderer) Render(m *ir.Map, opts Options) ([]File, error) {
	if m.HasComponents() {
		logger.Warn("component data is not saved in XML maps: %s", m.Path)
	}

	dir := m.Dir()
	var files []File

	root := common.NewXMLNode("map").
		SetAttr("version", FormatVersion).
		SetAttr("tiledversion", TiledVersion).
		SetAttr("orientation", "orthogonal").
		SetAttr("renderorder", "right-down").
		SetIntAttr("width", m.ColumnCount).
		SetIntAttr("height", m.RowCount).
		SetIntAttr("tilewidth", m.TileWidth).
		SetIntAttr("tileheight", m.TileHeight).
		SetAttr("infinite", "0").
		SetIntAttr("nextlayerid", m.NextLayerID).
		SetIntAttr("nextobjectid", m.NextObjectID)

	appendXMLProperties(root, m.Properties, dir)

	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		node := root.AppendNew("tileset").SetIntAttr("firstgid", ts.FirstTile)
		if opts.EmbedTilesets {
			appendXMLTilesetCommon(node, ts, dir)
			continue
		}

		name := tilesetFileName(ts, format.XML)
		node.SetAttr("source", name)

		ext := common.NewXMLNode("tileset").
			SetAttr("version", FormatVersion).
			SetAttr("tiledversion", TiledVersion)
		appendXMLTilesetCommon(ext, ts, dir)
		data, err := encodeXML(ext, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: filepath.Join(dir, name), Data: data})
	}

	for i := range m.Layers {
		appendXMLLayer(root, &m.Layers[i], m, dir, opts)
	}

	data, err := encodeXML(root, opts)
	if err != nil {
		return nil, err
	}
	return append(files, File{Path: m.Path, Data: data}), nil
}

func encodeXML(root *common.XMLNode, opts Options) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if opts.IndentOutput {
		out, err = xml.MarshalIndent(root, "", "  ")
	} else {
		out, err = xml.Marshal(root)
	}
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func appendXMLTilesetCommon(node *common.XMLNode, ts *ir.Tileset, dir string) {
	node.SetAttr("name", ts.Name).
		SetIntAttr("tilewidth", ts.TileWidth).
		SetIntAttr("tileheight", ts.TileHeight).
		SetIntAttr("tilecount", ts.TileCount).
		SetIntAttr("columns", ts.ColumnCount)

	appendXMLProperties(node, ts.Properties, dir)

	node.AppendNew("image").
		SetAttr("source", ir.RelativizePath(ts.ImagePath, dir)).
		SetIntAttr("width", ts.ImageWidth).
		SetIntAttr("height", ts.ImageHeight)

	for _, tile := range ts.FancyTiles() {
		tn := node.AppendNew("tile").SetIntAttr("id", tile.ID)
		appendXMLProperties(tn, tile.Properties, dir)

		if len(tile.Objects) > 0 {
			group := tn.AppendNew("objectgroup").SetAttr("draworder", "index")
			for i := range tile.Objects {
				appendXMLObject(group, &tile.Objects[i], dir)
			}
		}

		if len(tile.Frames) > 0 {
			anim := tn.AppendNew("animation")
			for _, f := range tile.Frames {
				anim.AppendNew("frame").
					SetIntAttr("tileid", f.Tile).
					SetIntAttr("duration", f.Duration)
			}
		}
	}
}

func appendXMLLayer(parent *common.XMLNode, layer *ir.Layer, m *ir.Map, dir string, opts Options) {
	var node *common.XMLNode
	switch content := layer.Content.(type) {
	case *ir.TileLayer:
		node = common.NewXMLNode("layer")
		setXMLLayerAttrs(node, layer)
		node.SetIntAttr("width", m.ColumnCount).SetIntAttr("height", m.RowCount)
		appendXMLProperties(node, layer.Properties, dir)
		node.AppendNew("data").SetAttr("encoding", "csv").Text = csvTileData(content.Tiles, opts.FoldTileData)
	case *ir.ObjectLayer:
		node = common.NewXMLNode("objectgroup")
		setXMLLayerAttrs(node, layer)
		appendXMLProperties(node, layer.Properties, dir)
		for i := range content.Objects {
			appendXMLObject(node, &content.Objects[i], dir)
		}
	case *ir.GroupLayer:
		node = common.NewXMLNode("group")
		setXMLLayerAttrs(node, layer)
		appendXMLProperties(node, layer.Properties, dir)
		for i := range content.Layers {
			appendXMLLayer(node, &content.Layers[i], m, dir, opts)
		}
	default:
		logger.Warn("layer %d has no content and is not saved", layer.ID)
		return
	}
	parent.Append(node)
}

func setXMLLayerAttrs(node *common.XMLNode, layer *ir.Layer) {
	node.SetIntAttr("id", layer.ID).SetAttr("name", layer.Name)
	if layer.Opacity != 1 {
		node.SetFloatAttr("opacity", layer.Opacity)
	}
	if !layer.Visible {
		node.SetAttr("visible", "0")
	}
}

// csvTileData renders ids separated by commas. Folded output starts with a
// newline and ends every row with one.
func csvTileData(tiles ir.TileMatrix, fold bool) string {
	var b strings.Builder
	if fold {
		b.WriteByte('\n')
	}
	for r, row := range tiles {
		for c, id := range row {
			b.WriteString(strconv.Itoa(id))
			last := r == len(tiles)-1 && c == len(row)-1
			if !last {
				b.WriteByte(',')
			}
		}
		if fold {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendXMLObject(parent *common.XMLNode, obj *ir.Object, dir string) {
	node := parent.AppendNew("object").SetIntAttr("id", obj.ID)
	if obj.Name != "" {
		node.SetAttr("name", obj.Name)
	}
	if obj.Tag != "" {
		node.SetAttr("type", obj.Tag)
	}
	if obj.X != 0 {
		node.SetFloatAttr("x", obj.X)
	}
	if obj.Y != 0 {
		node.SetFloatAttr("y", obj.Y)
	}
	if obj.Width != 0 {
		node.SetFloatAttr("width", obj.Width)
	}
	if obj.Height != 0 {
		node.SetFloatAttr("height", obj.Height)
	}
	if !obj.Visible {
		node.SetAttr("visible", "0")
	}

	appendXMLProperties(node, obj.Properties, dir)

	switch obj.Kind {
	case ir.ObjectPoint:
		node.AppendNew("point")
	case ir.ObjectEllipse:
		node.AppendNew("ellipse")
	}
}

func appendXMLProperties(owner *common.XMLNode, props ir.Properties, dir string) {
	if len(props) == 0 {
		return
	}
	group := owner.AppendNew("properties")
	for _, p := range props {
		node := group.AppendNew("property").SetAttr("name", p.Name)
		if p.Value.Type() != ir.TypeString {
			node.SetAttr("type", p.Value.Type().String())
		}
		node.SetAttr("value", xmlValue(p.Value, dir))
	}
}

func xmlValue(v ir.Value, dir string) string {
	switch val := v.(type) {
	case ir.Color:
		return val.ARGB()
	case ir.File:
		return fileValue(string(val), dir)
	default:
		return ir.FormatValue(v)
	}
}
