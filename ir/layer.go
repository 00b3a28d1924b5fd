/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import "fmt"

// LayerKind discriminates the layer payload variants.
type LayerKind int

const (
	KindTileLayer LayerKind = iota
	KindObjectLayer
	KindGroupLayer
)

func (k LayerKind) String() string {
	switch k {
	case KindTileLayer:
		return "tile layer"
	case KindObjectLayer:
		return "object layer"
	case KindGroupLayer:
		return "group layer"
	default:
		return fmt.Sprintf("LayerKind(%d)", int(k))
	}
}

// LayerContent is the variant payload of a layer: *TileLayer, *ObjectLayer
// or *GroupLayer.
type LayerContent interface {
	Kind() LayerKind
	isLayerContent()
}

// TileMatrix is a row-major grid of global tile ids. Zero is the empty tile.
type TileMatrix [][]int

// TileLayer holds a tile matrix.
type TileLayer struct {
	Tiles TileMatrix
}

// ObjectLayer holds free-floating objects.
type ObjectLayer struct {
	Objects []Object
}

// GroupLayer holds child layers.
type GroupLayer struct {
	Layers []Layer
}

func (*TileLayer) Kind() LayerKind   { return KindTileLayer }
func (*ObjectLayer) Kind() LayerKind { return KindObjectLayer }
func (*GroupLayer) Kind() LayerKind  { return KindGroupLayer }

func (*TileLayer) isLayerContent()   {}
func (*ObjectLayer) isLayerContent() {}
func (*GroupLayer) isLayerContent()  {}

// Layer is a node of the layer tree.
type Layer struct {
	ID         int
	Index      int
	Name       string
	Opacity    float64
	Visible    bool
	Properties Properties
	Components []*Component
	Content    LayerContent
}

// NewLayer returns a visible, opaque layer with the given id and no payload.
func NewLayer(id int) Layer {
	return Layer{ID: id, Name: "Layer", Opacity: 1, Visible: true}
}

// Kind returns the payload kind. A layer without payload reports KindTileLayer
// with an empty matrix, matching MakeTileLayer(0, 0).
func (l *Layer) Kind() LayerKind {
	if l.Content == nil {
		return KindTileLayer
	}
	return l.Content.Kind()
}

// MakeTileLayer turns l into a tile layer with an empty rows×cols matrix,
// discarding any previous payload.
func (l *Layer) MakeTileLayer(rows, cols int) *TileLayer {
	tl := &TileLayer{Tiles: MakeTileMatrix(rows, cols)}
	l.Content = tl
	return tl
}

// MakeObjectLayer turns l into an empty object layer.
func (l *Layer) MakeObjectLayer() *ObjectLayer {
	ol := &ObjectLayer{}
	l.Content = ol
	return ol
}

// MakeGroupLayer turns l into an empty group layer.
func (l *Layer) MakeGroupLayer() *GroupLayer {
	gl := &GroupLayer{}
	l.Content = gl
	return gl
}

// AsTileLayer returns the tile payload or ErrWrongLayerKind.
func (l *Layer) AsTileLayer() (*TileLayer, error) {
	if tl, ok := l.Content.(*TileLayer); ok {
		return tl, nil
	}
	return nil, l.wrongKind(KindTileLayer)
}

// AsObjectLayer returns the object payload or ErrWrongLayerKind.
func (l *Layer) AsObjectLayer() (*ObjectLayer, error) {
	if ol, ok := l.Content.(*ObjectLayer); ok {
		return ol, nil
	}
	return nil, l.wrongKind(KindObjectLayer)
}

// AsGroupLayer returns the group payload or ErrWrongLayerKind.
func (l *Layer) AsGroupLayer() (*GroupLayer, error) {
	if gl, ok := l.Content.(*GroupLayer); ok {
		return gl, nil
	}
	return nil, l.wrongKind(KindGroupLayer)
}

func (l *Layer) wrongKind(want LayerKind) error {
	got := "no payload"
	if l.Content != nil {
		got = l.Content.Kind().String()
	}
	return fmt.Errorf("%w: layer %d is a %s, not a %s", ErrWrongLayerKind, l.ID, got, want)
}

// Reindex sets each layer's sibling index to its position, recursively.
func Reindex(layers []Layer) {
	for i := range layers {
		layers[i].Index = i
		if gl, ok := layers[i].Content.(*GroupLayer); ok {
			Reindex(gl.Layers)
		}
	}
}

// MakeTileMatrix returns a zeroed rows×cols matrix. Negative sizes count
// as zero.
func MakeTileMatrix(rows, cols int) TileMatrix {
	rows, cols = max(rows, 0), max(cols, 0)
	m := make(TileMatrix, rows)
	for r := range m {
		m[r] = make([]int, cols)
	}
	return m
}

// ReshapeTiles lays a flat id sequence out row-major into a rows×cols matrix.
func ReshapeTiles(flat []int, rows, cols int) (TileMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid tile layer size %dx%d", rows, cols)
	}
	if len(flat) != rows*cols {
		return nil, fmt.Errorf("expected %d tiles for %dx%d, got %d", rows*cols, rows, cols, len(flat))
	}
	m := MakeTileMatrix(rows, cols)
	for i, id := range flat {
		m[i/cols][i%cols] = id
	}
	return m, nil
}

// Flatten returns the matrix in row-major order.
func (m TileMatrix) Flatten() []int {
	var out []int
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

// Rows returns the row count.
func (m TileMatrix) Rows() int {
	return len(m)
}

// Cols returns the column count, taken from the first row.
func (m TileMatrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}
