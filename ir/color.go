/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Black is the zero value of color-typed properties and attributes.
var Black = Color{A: 0xFF}

// ParseColorRGB parses a "#RRGGBB" literal. Alpha is set to 255.
func ParseColorRGB(text string) (Color, error) {
	if err := checkHexShape(text, 7); err != nil {
		return Color{}, err
	}
	return decodeHex(text)
}

// ParseColorRGBA parses a "#RRGGBBAA" literal.
func ParseColorRGBA(text string) (Color, error) {
	if err := checkHexShape(text, 9); err != nil {
		return Color{}, err
	}
	return decodeHex(text)
}

// ParseColorARGB parses a "#AARRGGBB" literal.
func ParseColorARGB(text string) (Color, error) {
	if err := checkHexShape(text, 9); err != nil {
		return Color{}, err
	}
	// Move the alpha pair to the end so the decoder sees #RRGGBBAA.
	return decodeHex("#" + text[3:] + text[1:3])
}

func checkHexShape(text string, length int) error {
	if len(text) != length || !strings.HasPrefix(text, "#") {
		return fmt.Errorf("%w: %q is not a %d character hex literal", ErrInvalidColor, text, length)
	}
	for _, r := range text[1:] {
		if !isHexDigit(r) {
			return fmt.Errorf("%w: %q has non-hex digit %q", ErrInvalidColor, text, r)
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func decodeHex(text string) (Color, error) {
	c, err := csscolorparser.Parse(text)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, text, err)
	}
	r, g, b, a := c.RGBA255()
	return Color{R: r, G: g, B: b, A: a}, nil
}

// RGB formats the color as "#rrggbb", dropping alpha.
func (c Color) RGB() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// RGBA formats the color as "#rrggbbaa".
func (c Color) RGBA() string {
	return fmt.Sprintf("%s%02x", c.RGB(), c.A)
}

// ARGB formats the color as "#aarrggbb".
func (c Color) ARGB() string {
	return fmt.Sprintf("#%02x%s", c.A, c.RGB()[1:])
}

func (c Color) String() string {
	return c.RGBA()
}
