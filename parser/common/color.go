/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package common

import (
	"fmt"

	"bennypowers.dev/mapio/ir"
)

// ParseTiledColor reads a color as written by Tiled: "#RRGGBB" or
// "#AARRGGBB".
func ParseTiledColor(text string) (ir.Color, error) {
	switch len(text) {
	case 7:
		return ir.ParseColorRGB(text)
	case 9:
		return ir.ParseColorARGB(text)
	default:
		return ir.Color{}, fmt.Errorf("%w: %q", ir.ErrInvalidColor, text)
	}
}
