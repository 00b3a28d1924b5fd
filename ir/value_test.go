/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAccessors(t *testing.T) {
	var ps Properties
	ps.Set("s", String("hello"))
	ps.Set("i", Int(42))
	ps.Set("f", Float(1.5))
	ps.Set("b", Bool(true))
	ps.Set("c", Color{R: 1, G: 2, B: 3, A: 4})
	ps.Set("p", File("/maps/a.png"))
	ps.Set("o", ObjectRef(7))

	get := func(name string) Value {
		v, ok := ps.Get(name)
		require.True(t, ok, name)
		return v
	}

	s, err := AsString(get("s"))
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	i, err := AsInt(get("i"))
	require.NoError(t, err)
	assert.Equal(t, 42, i)

	f, err := AsFloat(get("f"))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 0)

	b, err := AsBool(get("b"))
	require.NoError(t, err)
	assert.True(t, b)

	c, err := AsColor(get("c"))
	require.NoError(t, err)
	assert.Equal(t, Color{R: 1, G: 2, B: 3, A: 4}, c)

	p, err := AsFile(get("p"))
	require.NoError(t, err)
	assert.Equal(t, "/maps/a.png", p)

	o, err := AsObjectRef(get("o"))
	require.NoError(t, err)
	assert.Equal(t, 7, o)
}

func TestValueAccessors_Mismatch(t *testing.T) {
	_, err := AsInt(String("42"))
	assert.ErrorIs(t, err, ErrWrongPropertyType)

	_, err = AsString(Int(42))
	assert.ErrorIs(t, err, ErrWrongPropertyType)

	_, err = AsColor(nil)
	assert.ErrorIs(t, err, ErrWrongPropertyType)

	_, err = AsObjectRef(Int(3))
	assert.ErrorIs(t, err, ErrWrongPropertyType)
}

func TestProperties_SetKeepsNamesUnique(t *testing.T) {
	var ps Properties
	ps.Set("a", Int(1))
	ps.Set("b", Int(2))
	ps.Set("a", String("x"))

	require.Len(t, ps, 2)
	assert.Equal(t, "a", ps[0].Name)
	assert.Equal(t, String("x"), ps[0].Value)

	ps.Remove("a")
	assert.False(t, ps.Has("a"))
	assert.True(t, ps.Has("b"))
}

func TestProperties_Assign(t *testing.T) {
	ps := Properties{{Name: "hp", Value: Int(10)}}

	require.NoError(t, ps.Assign("hp", Int(20)))
	assert.Equal(t, Int(20), ps[0].Value)

	assert.ErrorIs(t, ps.Assign("hp", Float(1)), ErrWrongPropertyType)
	assert.ErrorIs(t, ps.Assign("mp", Int(1)), ErrUnknownProperty)
}

func TestParsePropertyType(t *testing.T) {
	for _, name := range []string{"string", "int", "float", "bool", "color", "object", "file"} {
		typ, err := ParsePropertyType(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, typ.String())
	}

	_, err := ParsePropertyType("vector")
	assert.ErrorIs(t, err, ErrInvalidPropertyType)
}

func TestZeroValue(t *testing.T) {
	assert.Equal(t, String(""), ZeroValue(TypeString))
	assert.Equal(t, Int(0), ZeroValue(TypeInt))
	assert.Equal(t, Float(0), ZeroValue(TypeFloat))
	assert.Equal(t, Bool(false), ZeroValue(TypeBool))
	assert.Equal(t, Color{A: 255}, ZeroValue(TypeColor))
	assert.Equal(t, File(""), ZeroValue(TypeFile))
	assert.Equal(t, ObjectRef(0), ZeroValue(TypeObject))
}

func TestRelativizePath(t *testing.T) {
	base := filepath.FromSlash("/maps/world")
	target := filepath.FromSlash("/maps/images/terrain.png")
	assert.Equal(t, "../images/terrain.png", RelativizePath(target, base))
}

func TestResolvePath(t *testing.T) {
	base := filepath.FromSlash("/maps/world")
	assert.Equal(t, filepath.FromSlash("/maps/images/a.png"), ResolvePath("../images/a.png", base))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1.5", FormatValue(Float(1.5)))
	assert.Equal(t, "3", FormatValue(Float(3)))
	assert.Equal(t, "#010203ff", FormatValue(Color{R: 1, G: 2, B: 3, A: 255}))
	assert.Equal(t, "false", FormatValue(Bool(false)))
}
