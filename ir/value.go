/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import (
	"fmt"
	"strconv"
)

// PropertyType identifies the kind of value a property or attribute holds.
type PropertyType int

const (
	TypeString PropertyType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeColor
	TypeFile
	TypeObject
)

// String returns the type name used by all three file formats.
func (t PropertyType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeColor:
		return "color"
	case TypeFile:
		return "file"
	case TypeObject:
		return "object"
	default:
		return fmt.Sprintf("PropertyType(%d)", int(t))
	}
}

// ParsePropertyType maps a type name to its PropertyType.
func ParsePropertyType(text string) (PropertyType, error) {
	switch text {
	case "string":
		return TypeString, nil
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "bool":
		return TypeBool, nil
	case "color":
		return TypeColor, nil
	case "file":
		return TypeFile, nil
	case "object":
		return TypeObject, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPropertyType, text)
	}
}

// Value is one of String, Int, Float, Bool, Color, File or ObjectRef.
type Value interface {
	Type() PropertyType
	isValue()
}

type (
	// String is a plain text value.
	String string
	// Int is an integer value.
	Int int
	// Float is a floating point value.
	Float float64
	// Bool is a boolean value.
	Bool bool
	// File is a file path. Paths in the IR are absolute; emitters relativize them.
	File string
	// ObjectRef refers to a map object by id. Zero means no object.
	ObjectRef int
)

func (String) Type() PropertyType    { return TypeString }
func (Int) Type() PropertyType       { return TypeInt }
func (Float) Type() PropertyType     { return TypeFloat }
func (Bool) Type() PropertyType      { return TypeBool }
func (Color) Type() PropertyType     { return TypeColor }
func (File) Type() PropertyType      { return TypeFile }
func (ObjectRef) Type() PropertyType { return TypeObject }

func (String) isValue()    {}
func (Int) isValue()       {}
func (Float) isValue()     {}
func (Bool) isValue()      {}
func (Color) isValue()     {}
func (File) isValue()      {}
func (ObjectRef) isValue() {}

// ZeroValue returns the pristine value of a type.
func ZeroValue(t PropertyType) Value {
	switch t {
	case TypeInt:
		return Int(0)
	case TypeFloat:
		return Float(0)
	case TypeBool:
		return Bool(false)
	case TypeColor:
		return Black
	case TypeFile:
		return File("")
	case TypeObject:
		return ObjectRef(0)
	default:
		return String("")
	}
}

// IsZero reports whether v equals the zero value of its type.
func IsZero(v Value) bool {
	return v == nil || v == ZeroValue(v.Type())
}

func mismatch(v Value, want PropertyType) error {
	got := "nil"
	if v != nil {
		got = v.Type().String()
	}
	return fmt.Errorf("%w: want %s, have %s", ErrWrongPropertyType, want, got)
}

// AsString returns the text of a string value.
func AsString(v Value) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", mismatch(v, TypeString)
}

// AsInt returns the integer of an int value.
func AsInt(v Value) (int, error) {
	if i, ok := v.(Int); ok {
		return int(i), nil
	}
	return 0, mismatch(v, TypeInt)
}

// AsFloat returns the number of a float value.
func AsFloat(v Value) (float64, error) {
	if f, ok := v.(Float); ok {
		return float64(f), nil
	}
	return 0, mismatch(v, TypeFloat)
}

// AsBool returns the flag of a bool value.
func AsBool(v Value) (bool, error) {
	if b, ok := v.(Bool); ok {
		return bool(b), nil
	}
	return false, mismatch(v, TypeBool)
}

// AsColor returns the color of a color value.
func AsColor(v Value) (Color, error) {
	if c, ok := v.(Color); ok {
		return c, nil
	}
	return Color{}, mismatch(v, TypeColor)
}

// AsFile returns the path of a file value.
func AsFile(v Value) (string, error) {
	if f, ok := v.(File); ok {
		return string(f), nil
	}
	return "", mismatch(v, TypeFile)
}

// AsObjectRef returns the object id of an object reference.
func AsObjectRef(v Value) (int, error) {
	if o, ok := v.(ObjectRef); ok {
		return int(o), nil
	}
	return 0, mismatch(v, TypeObject)
}

// FormatValue renders a value for display. Colors use RGBA order.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case String:
		return string(val)
	case Int:
		return strconv.Itoa(int(val))
	case Float:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case Bool:
		if val {
			return "true"
		}
		return "false"
	case Color:
		return val.RGBA()
	case File:
		return string(val)
	case ObjectRef:
		return strconv.Itoa(int(val))
	default:
		return fmt.Sprintf("%v", v)
	}
}
