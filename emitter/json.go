/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package emitter

import (
	"encoding/json"
	"path/filepath"

	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/internal/logger"
	"bennypowers.dev/mapio/ir"
)

// JSONRenderer writes Tiled JSON maps and tilesets.
type JSONRenderer struct{}

type jsonMap struct {
	Type             string         `json:"type"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	TileWidth        int            `json:"tilewidth"`
	TileHeight       int            `json:"tileheight"`
	NextLayerID      int            `json:"nextlayerid"`
	NextObjectID     int            `json:"nextobjectid"`
	Infinite         bool           `json:"infinite"`
	Orientation      string         `json:"orientation"`
	RenderOrder      string         `json:"renderorder"`
	CompressionLevel int            `json:"compressionlevel"`
	TiledVersion     string         `json:"tiledversion"`
	Version          string         `json:"version"`
	Tilesets         []any          `json:"tilesets"`
	Layers           []jsonLayer    `json:"layers"`
	Properties       []jsonProperty `json:"properties,omitempty"`
}

type jsonTilesetRef struct {
	FirstGID int    `json:"firstgid"`
	Source   string `json:"source"`
}

type jsonTileset struct {
	Type         string         `json:"type,omitempty"`
	TiledVersion string         `json:"tiledversion,omitempty"`
	Version      string         `json:"version,omitempty"`
	FirstGID     int            `json:"firstgid,omitempty"`
	Name         string         `json:"name"`
	Columns      int            `json:"columns"`
	TileWidth    int            `json:"tilewidth"`
	TileHeight   int            `json:"tileheight"`
	TileCount    int            `json:"tilecount"`
	Image        string         `json:"image"`
	ImageWidth   int            `json:"imagewidth"`
	ImageHeight  int            `json:"imageheight"`
	Margin       int            `json:"margin"`
	Spacing      int            `json:"spacing"`
	Tiles        []jsonTile     `json:"tiles,omitempty"`
	Properties   []jsonProperty `json:"properties,omitempty"`
}

type jsonTile struct {
	ID          int              `json:"id"`
	Animation   []jsonFrame      `json:"animation,omitempty"`
	ObjectGroup *jsonObjectGroup `json:"objectgroup,omitempty"`
	Properties  []jsonProperty   `json:"properties,omitempty"`
}

type jsonFrame struct {
	TileID   int `json:"tileid"`
	Duration int `json:"duration"`
}

type jsonObjectGroup struct {
	DrawOrder string       `json:"draworder"`
	Name      string       `json:"name"`
	Opacity   float64      `json:"opacity"`
	Type      string       `json:"type"`
	Visible   bool         `json:"visible"`
	X         int          `json:"x"`
	Y         int          `json:"y"`
	Objects   []jsonObject `json:"objects"`
}

// Payload slices are pointers so an empty payload is still written as [].
type jsonLayer struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Opacity    float64         `json:"opacity"`
	Visible    bool            `json:"visible"`
	X          int             `json:"x"`
	Y          int             `json:"y"`
	Type       string          `json:"type"`
	Width      int             `json:"width,omitempty"`
	Height     int             `json:"height,omitempty"`
	Data       *[]int          `json:"data,omitempty"`
	DrawOrder  string          `json:"draworder,omitempty"`
	Objects    *[]jsonObject   `json:"objects,omitempty"`
	Layers     *[]jsonLayer    `json:"layers,omitempty"`
	Properties []jsonProperty  `json:"properties,omitempty"`
}

type jsonObject struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Rotation   float64        `json:"rotation"`
	Visible    bool           `json:"visible"`
	Point      bool           `json:"point,omitempty"`
	Ellipse    bool           `json:"ellipse,omitempty"`
	Properties []jsonProperty `json:"properties,omitempty"`
}

type jsonProperty struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Render implements Renderer.
func (r *JSONRenderer) Render(m *ir.Map, opts Options) ([]File, error) {
	if m.HasComponents() {
		logger.Warn("component data is not saved in JSON maps: %s", m.Path)
	}

	dir := m.Dir()
	var files []File

	doc := jsonMap{
		Type:             "map",
		Width:            m.ColumnCount,
		Height:           m.RowCount,
		TileWidth:        m.TileWidth,
		TileHeight:       m.TileHeight,
		NextLayerID:      m.NextLayerID,
		NextObjectID:     m.NextObjectID,
		Orientation:      "orthogonal",
		RenderOrder:      "right-down",
		CompressionLevel: -1,
		TiledVersion:     TiledVersion,
		Version:          FormatVersion,
		Tilesets:         make([]any, 0, len(m.Tilesets)),
		Layers:           jsonLayers(m.Layers, m, dir),
		Properties:       jsonProperties(m.Properties, dir),
	}

	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		body := jsonTilesetCommon(ts, dir)
		if opts.EmbedTilesets {
			body.FirstGID = ts.FirstTile
			doc.Tilesets = append(doc.Tilesets, body)
			continue
		}

		name := tilesetFileName(ts, format.JSON)
		body.Type = "tileset"
		body.TiledVersion = TiledVersion
		body.Version = FormatVersion
		data, err := encodeJSON(body, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: filepath.Join(dir, name), Data: data})
		doc.Tilesets = append(doc.Tilesets, jsonTilesetRef{FirstGID: ts.FirstTile, Source: name})
	}

	data, err := encodeJSON(doc, opts)
	if err != nil {
		return nil, err
	}
	return append(files, File{Path: m.Path, Data: data}), nil
}

func encodeJSON(v any, opts Options) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if opts.IndentOutput {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func jsonTilesetCommon(ts *ir.Tileset, dir string) jsonTileset {
	body := jsonTileset{
		Name:        ts.Name,
		Columns:     ts.ColumnCount,
		TileWidth:   ts.TileWidth,
		TileHeight:  ts.TileHeight,
		TileCount:   ts.TileCount,
		Image:       ir.RelativizePath(ts.ImagePath, dir),
		ImageWidth:  ts.ImageWidth,
		ImageHeight: ts.ImageHeight,
		Properties:  jsonProperties(ts.Properties, dir),
	}
	for _, tile := range ts.FancyTiles() {
		jt := jsonTile{ID: tile.ID, Properties: jsonProperties(tile.Properties, dir)}
		for _, f := range tile.Frames {
			jt.Animation = append(jt.Animation, jsonFrame{TileID: f.Tile, Duration: f.Duration})
		}
		if len(tile.Objects) > 0 {
			jt.ObjectGroup = &jsonObjectGroup{
				DrawOrder: "index",
				Opacity:   1,
				Type:      "objectgroup",
				Visible:   true,
				Objects:   jsonObjects(tile.Objects, dir),
			}
		}
		body.Tiles = append(body.Tiles, jt)
	}
	return body
}

func jsonLayers(layers []ir.Layer, m *ir.Map, dir string) []jsonLayer {
	out := make([]jsonLayer, 0, len(layers))
	for i := range layers {
		layer := &layers[i]
		jl := jsonLayer{
			ID:         layer.ID,
			Name:       layer.Name,
			Opacity:    layer.Opacity,
			Visible:    layer.Visible,
			Properties: jsonProperties(layer.Properties, dir),
		}
		switch content := layer.Content.(type) {
		case *ir.TileLayer:
			data := content.Tiles.Flatten()
			if data == nil {
				data = []int{}
			}
			jl.Type = "tilelayer"
			jl.Width = m.ColumnCount
			jl.Height = m.RowCount
			jl.Data = &data
		case *ir.ObjectLayer:
			objects := jsonObjects(content.Objects, dir)
			jl.Type = "objectgroup"
			jl.DrawOrder = "topdown"
			jl.Objects = &objects
		case *ir.GroupLayer:
			children := jsonLayers(content.Layers, m, dir)
			jl.Type = "group"
			jl.Layers = &children
		default:
			logger.Warn("layer %d has no content and is not saved", layer.ID)
			continue
		}
		out = append(out, jl)
	}
	return out
}

func jsonObjects(objects []ir.Object, dir string) []jsonObject {
	out := make([]jsonObject, 0, len(objects))
	for i := range objects {
		obj := &objects[i]
		out = append(out, jsonObject{
			ID:         obj.ID,
			Name:       obj.Name,
			Type:       obj.Tag,
			X:          obj.X,
			Y:          obj.Y,
			Width:      obj.Width,
			Height:     obj.Height,
			Visible:    obj.Visible,
			Point:      obj.Kind == ir.ObjectPoint,
			Ellipse:    obj.Kind == ir.ObjectEllipse,
			Properties: jsonProperties(obj.Properties, dir),
		})
	}
	return out
}

func jsonProperties(props ir.Properties, dir string) []jsonProperty {
	if len(props) == 0 {
		return nil
	}
	out := make([]jsonProperty, 0, len(props))
	for _, p := range props {
		out = append(out, jsonProperty{
			Name:  p.Name,
			Type:  p.Value.Type().String(),
			Value: jsonValue(p.Value, dir),
		})
	}
	return out
}

func jsonValue(v ir.Value, dir string) any {
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
		return val.ARGB()
	case ir.File:
		return fileValue(string(val), dir)
	case ir.ObjectRef:
		return int(val)
	default:
		return nil
	}
}
