/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/mapio/ir"
)

// colorParser decodes a color literal in a grammar's byte order.
type colorParser func(string) (ir.Color, error)

// convertValue turns the textual form of a value into a typed IR value.
// File values are resolved against dir so the IR holds absolute paths.
func convertValue(t ir.PropertyType, text, dir string, parseColor colorParser) (ir.Value, error) {
	switch t {
	case ir.TypeString:
		return ir.String(text), nil
	case ir.TypeInt:
		i, err := strconv.Atoi(text)
		if err != nil {
			return nil, err
		}
		return ir.Int(i), nil
	case ir.TypeFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return ir.Float(f), nil
	case ir.TypeBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, err
		}
		return ir.Bool(b), nil
	case ir.TypeColor:
		if text == "" {
			// Tiled writes unset colors as an empty string.
			return ir.Color{}, nil
		}
		return parseColor(text)
	case ir.TypeFile:
		if text == "" {
			return ir.File(""), nil
		}
		return ir.File(ir.ResolvePath(text, dir)), nil
	case ir.TypeObject:
		i, err := strconv.Atoi(text)
		if err != nil {
			return nil, err
		}
		return ir.ObjectRef(i), nil
	default:
		return nil, fmt.Errorf("unhandled property type %v", t)
	}
}

func atoi(text string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(text))
}
