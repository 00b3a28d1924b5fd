/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package emitter

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/internal/logger"
	"bennypowers.dev/mapio/ir"
)

// YAMLRenderer writes the native YAML dialect. Tilesets are always written
// as sibling files.
type YAMLRenderer struct{}

// YAMLVersion is written to map and tileset files.
const YAMLVersion = 1

type yamlMap struct {
	Version       int                `yaml:"version"`
	RowCount      int                `yaml:"row-count"`
	ColumnCount   int                `yaml:"column-count"`
	TileWidth     int                `yaml:"tile-width"`
	TileHeight    int                `yaml:"tile-height"`
	NextLayerID   int                `yaml:"next-layer-id"`
	NextObjectID  int                `yaml:"next-object-id"`
	ComponentDefs []yamlComponentDef `yaml:"component-definitions,omitempty"`
	Tilesets      []yamlTilesetRef   `yaml:"tilesets,omitempty"`
	Layers        []yamlLayer        `yaml:"layers,omitempty"`
	Properties    []yamlProperty     `yaml:"properties,omitempty"`
	Components    []yamlComponent    `yaml:"components,omitempty"`
}

type yamlComponentDef struct {
	Name       string          `yaml:"name"`
	Attributes []yamlAttribute `yaml:"attributes,omitempty"`
}

type yamlAttribute struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default any    `yaml:"default,omitempty"`
}

type yamlComponent struct {
	Type   string           `yaml:"type"`
	Values []yamlValueEntry `yaml:"values,omitempty"`
}

type yamlValueEntry struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

type yamlTilesetRef struct {
	FirstGlobalID int    `yaml:"first-global-id"`
	Path          string `yaml:"path"`
}

type yamlTileset struct {
	Version     int             `yaml:"version"`
	Name        string          `yaml:"name"`
	TileWidth   int             `yaml:"tile-width"`
	TileHeight  int             `yaml:"tile-height"`
	TileCount   int             `yaml:"tile-count"`
	ColumnCount int             `yaml:"column-count"`
	ImagePath   string          `yaml:"image-path"`
	ImageWidth  int             `yaml:"image-width"`
	ImageHeight int             `yaml:"image-height"`
	Tiles       []yamlTile      `yaml:"tiles,omitempty"`
	Properties  []yamlProperty  `yaml:"properties,omitempty"`
	Components  []yamlComponent `yaml:"components,omitempty"`
}

type yamlTile struct {
	ID         int             `yaml:"id"`
	Animation  []yamlFrame     `yaml:"animation,omitempty"`
	Objects    []yamlObject    `yaml:"objects,omitempty"`
	Properties []yamlProperty  `yaml:"properties,omitempty"`
	Components []yamlComponent `yaml:"components,omitempty"`
}

type yamlFrame struct {
	Tile     int `yaml:"tile"`
	Duration int `yaml:"duration"`
}

type yamlLayer struct {
	Name       string          `yaml:"name"`
	ID         int             `yaml:"id"`
	Opacity    *float64        `yaml:"opacity,omitempty"`
	Visible    *bool           `yaml:"visible,omitempty"`
	Type       string          `yaml:"type"`
	Data       *string         `yaml:"data,omitempty"`
	Objects    []yamlObject    `yaml:"objects,omitempty"`
	Layers     []yamlLayer     `yaml:"layers,omitempty"`
	Properties []yamlProperty  `yaml:"properties,omitempty"`
	Components []yamlComponent `yaml:"components,omitempty"`
}

type yamlObject struct {
	ID         int             `yaml:"id"`
	Type       string          `yaml:"type"`
	Name       string          `yaml:"name,omitempty"`
	Tag        string          `yaml:"tag,omitempty"`
	Visible    *bool           `yaml:"visible,omitempty"`
	X          float64         `yaml:"x,omitempty"`
	Y          float64         `yaml:"y,omitempty"`
	Width      float64         `yaml:"width,omitempty"`
	Height     float64         `yaml:"height,omitempty"`
	Properties []yamlProperty  `yaml:"properties,omitempty"`
	Components []yamlComponent `yaml:"components,omitempty"`
}

type yamlProperty struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

// Render implements Renderer.
func (r *YAMLRenderer) Render(m *ir.Map, opts Options) ([]File, error) {
	if opts.EmbedTilesets {
		logger.Debug("YAML maps always use external tilesets: %s", m.Path)
	}

	dir := m.Dir()
	var files []File

	doc := yamlMap{
		Version:      YAMLVersion,
		RowCount:     m.RowCount,
		ColumnCount:  m.ColumnCount,
		TileWidth:    m.TileWidth,
		TileHeight:   m.TileHeight,
		NextLayerID:  m.NextLayerID,
		NextObjectID: m.NextObjectID,
		Layers:       yamlLayers(m.Layers, opts, dir),
		Properties:   yamlProperties(m.Properties, dir),
		Components:   yamlComponents(m.Components, dir),
	}

	for _, def := range m.ComponentDefs {
		yd := yamlComponentDef{Name: def.Name}
		for _, a := range def.Attributes {
			attr := yamlAttribute{Name: a.Name, Type: a.Value.Type().String()}
			if pristine, _ := def.HasDefaultValue(a.Name); !pristine {
				attr.Default = yamlValue(a.Value, dir)
			}
			yd.Attributes = append(yd.Attributes, attr)
		}
		doc.ComponentDefs = append(doc.ComponentDefs, yd)
	}

	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		name := tilesetFileName(ts, format.YAML)
		data, err := encodeYAML(yamlTilesetFile(ts, dir))
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: filepath.Join(dir, name), Data: data})
		doc.Tilesets = append(doc.Tilesets, yamlTilesetRef{FirstGlobalID: ts.FirstTile, Path: name})
	}

	data, err := encodeYAML(doc)
	if err != nil {
		return nil, err
	}
	return append(files, File{Path: m.Path, Data: data}), nil
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlTilesetFile(ts *ir.Tileset, dir string) yamlTileset {
	doc := yamlTileset{
		Version:     YAMLVersion,
		Name:        ts.Name,
		TileWidth:   ts.TileWidth,
		TileHeight:  ts.TileHeight,
		TileCount:   ts.TileCount,
		ColumnCount: ts.ColumnCount,
		ImagePath:   ir.RelativizePath(ts.ImagePath, dir),
		ImageWidth:  ts.ImageWidth,
		ImageHeight: ts.ImageHeight,
		Properties:  yamlProperties(ts.Properties, dir),
		Components:  yamlComponents(ts.Components, dir),
	}
	for _, tile := range ts.FancyTiles() {
		yt := yamlTile{
			ID:         tile.ID,
			Objects:    yamlObjects(tile.Objects, dir),
			Properties: yamlProperties(tile.Properties, dir),
			Components: yamlComponents(tile.Components, dir),
		}
		for _, f := range tile.Frames {
			yt.Animation = append(yt.Animation, yamlFrame{Tile: f.Tile, Duration: f.Duration})
		}
		doc.Tiles = append(doc.Tiles, yt)
	}
	return doc
}

func yamlLayers(layers []ir.Layer, opts Options, dir string) []yamlLayer {
	var out []yamlLayer
	for i := range layers {
		layer := &layers[i]
		yl := yamlLayer{
			Name:       layer.Name,
			ID:         layer.ID,
			Properties: yamlProperties(layer.Properties, dir),
			Components: yamlComponents(layer.Components, dir),
		}
		if layer.Opacity != 1 {
			opacity := layer.Opacity
			yl.Opacity = &opacity
		}
		if !layer.Visible {
			visible := false
			yl.Visible = &visible
		}

		switch content := layer.Content.(type) {
		case *ir.TileLayer:
			data := spaceTileData(content.Tiles, opts.FoldTileData)
			yl.Type = "tile-layer"
			yl.Data = &data
		case *ir.ObjectLayer:
			yl.Type = "object-layer"
			yl.Objects = yamlObjects(content.Objects, dir)
		case *ir.GroupLayer:
			yl.Type = "group-layer"
			yl.Layers = yamlLayers(content.Layers, opts, dir)
		default:
			logger.Warn("layer %d has no content and is not saved", layer.ID)
			continue
		}
		out = append(out, yl)
	}
	return out
}

// spaceTileData joins ids with spaces; folded output puts each row on its
// own line.
func spaceTileData(tiles ir.TileMatrix, fold bool) string {
	rows := make([]string, 0, len(tiles))
	for _, row := range tiles {
		ids := make([]string, len(row))
		for i, id := range row {
			ids[i] = strconv.Itoa(id)
		}
		rows = append(rows, strings.Join(ids, " "))
	}
	if fold {
		return strings.Join(rows, "\n")
	}
	return strings.Join(rows, " ")
}

func yamlObjects(objects []ir.Object, dir string) []yamlObject {
	var out []yamlObject
	for i := range objects {
		obj := &objects[i]
		yo := yamlObject{
			ID:         obj.ID,
			Type:       obj.Kind.String(),
			Name:       obj.Name,
			Tag:        obj.Tag,
			X:          obj.X,
			Y:          obj.Y,
			Width:      obj.Width,
			Height:     obj.Height,
			Properties: yamlProperties(obj.Properties, dir),
			Components: yamlComponents(obj.Components, dir),
		}
		if !obj.Visible {
			visible := false
			yo.Visible = &visible
		}
		out = append(out, yo)
	}
	return out
}

func yamlProperties(props ir.Properties, dir string) []yamlProperty {
	var out []yamlProperty
	for _, p := range props {
		out = append(out, yamlProperty{
			Name:  p.Name,
			Type:  p.Value.Type().String(),
			Value: yamlValue(p.Value, dir),
		})
	}
	return out
}

func yamlComponents(components []*ir.Component, dir string) []yamlComponent {
	var out []yamlComponent
	for _, c := range components {
		yc := yamlComponent{Type: c.Type}
		for _, a := range c.Values {
			yc.Values = append(yc.Values, yamlValueEntry{Name: a.Name, Value: yamlValue(a.Value, dir)})
		}
		out = append(out, yc)
	}
	return out
}

func yamlValue(v ir.Value, dir string) any {
	switch val := v.(type) {
	case ir.String:
		return string(val)
	case ir.Int:
		return int(val)
	case ir.Float:
		return float64(val)
	case ir.Bool:
		return bool(val)
	case ir.Color:
		return val.RGBA()
	case ir.File:
		return fileValue(string(val), dir)
	case ir.ObjectRef:
		return int(val)
	default:
		return nil
	}
}
