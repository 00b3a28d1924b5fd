/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import "errors"

// Misuse errors. These signal programmer errors against the IR API and are
// kept apart from parse errors, which describe malformed input.
var (
	// ErrWrongPropertyType is returned when a value is read or assigned as a kind it does not hold.
	ErrWrongPropertyType = errors.New("wrong property type")

	// ErrWrongLayerKind is returned when a layer payload is queried as the wrong variant.
	ErrWrongLayerKind = errors.New("wrong layer kind")

	// ErrUnknownAttribute is returned when a component attribute does not exist.
	ErrUnknownAttribute = errors.New("unknown component attribute")

	// ErrUnknownProperty is returned when assigning to a property that does not exist.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrInvalidColor is returned for malformed color literals.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidPropertyType is returned for unknown property type names.
	ErrInvalidPropertyType = errors.New("invalid property type")
)
