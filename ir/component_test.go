/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_DefaultDetection(t *testing.T) {
	def := NewComponentDef("Health")
	def.DefineAttribute("hp", TypeInt)

	c := NewComponent(def)
	isDefault, err := c.HasDefaultValue("hp")
	require.NoError(t, err)
	assert.True(t, isDefault)

	require.NoError(t, c.Set("hp", Int(10)))
	isDefault, err = c.HasDefaultValue("hp")
	require.NoError(t, err)
	assert.False(t, isDefault)

	// Setting the original literal back does not restore default status.
	require.NoError(t, c.Set("hp", Int(0)))
	isDefault, err = c.HasDefaultValue("hp")
	require.NoError(t, err)
	assert.False(t, isDefault)
}

func TestComponent_CustomDefaultIsNotZero(t *testing.T) {
	def := NewComponentDef("Health")
	def.DefineAttribute("hp", TypeInt)
	require.NoError(t, def.SetDefault("hp", Int(100)))

	c := NewComponent(def)
	v, err := c.Get("hp")
	require.NoError(t, err)
	assert.Equal(t, Int(100), v)

	isDefault, err := c.HasDefaultValue("hp")
	require.NoError(t, err)
	assert.False(t, isDefault)

	defDefault, err := def.HasDefaultValue("hp")
	require.NoError(t, err)
	assert.False(t, defDefault)
}

func TestComponent_SetTypeMismatch(t *testing.T) {
	def := NewComponentDef("Tint")
	def.DefineAttribute("color", TypeColor)
	c := NewComponent(def)

	assert.ErrorIs(t, c.Set("color", String("#fff")), ErrWrongPropertyType)
	assert.ErrorIs(t, c.Set("missing", Int(1)), ErrUnknownAttribute)
	assert.ErrorIs(t, c.Set("color", nil), ErrWrongPropertyType)
	assert.ErrorIs(t, def.SetDefault("color", nil), ErrWrongPropertyType)

	_, err := c.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownAttribute)
}

func TestComponentDef_DefineResets(t *testing.T) {
	def := NewComponentDef("Tint")
	def.DefineAttribute("color", TypeColor)
	require.NoError(t, def.SetDefault("color", Color{R: 255, A: 255}))

	def.DefineAttribute("color", TypeColor)
	a, ok := def.Attribute("color")
	require.True(t, ok)
	assert.Equal(t, Black, a.Value)

	def.RemoveAttribute("color")
	_, ok = def.Attribute("color")
	assert.False(t, ok)
}

func TestNewComponent_CopiesAttributes(t *testing.T) {
	def := NewComponentDef("Label")
	def.DefineAttribute("text", TypeString)
	c := NewComponent(def)

	require.NoError(t, def.SetDefault("text", String("changed")))
	v, err := c.Get("text")
	require.NoError(t, err)
	assert.Equal(t, String(""), v)
}
