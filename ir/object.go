/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import "fmt"

// ObjectKind is the shape of an object.
type ObjectKind int

const (
	ObjectRect ObjectKind = iota
	ObjectPoint
	ObjectEllipse
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectRect:
		return "rect"
	case ObjectPoint:
		return "point"
	case ObjectEllipse:
		return "ellipse"
	default:
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
}

// ParseObjectKind maps "rect", "point" or "ellipse" to an ObjectKind.
func ParseObjectKind(text string) (ObjectKind, bool) {
	switch text {
	case "rect":
		return ObjectRect, true
	case "point":
		return ObjectPoint, true
	case "ellipse":
		return ObjectEllipse, true
	}
	return 0, false
}

// Object is a shape placed on an object layer or inside a tile.
type Object struct {
	ID         int
	X, Y       float64
	Width      float64
	Height     float64
	Kind       ObjectKind
	Name       string
	Tag        string
	Visible    bool
	Properties Properties
	Components []*Component
}
