/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"errors"
	"fmt"
)

// ParseError classifies why a map could not be loaded. None means success.
type ParseError int

const (
	None ParseError = iota
	Unknown
	CouldNotReadFile

	MapDoesNotExist
	UnsupportedMapExtension
	UnsupportedMapOrientation
	UnsupportedInfiniteMap
	MapMissingTileWidth
	MapMissingTileHeight
	MapMissingWidth
	MapMissingHeight
	MapMissingNextLayerID
	MapMissingNextObjectID

	LayerMissingID
	LayerMissingType
	UnsupportedLayerType
	LayerMissingTileData
	CorruptTileLayerData
	UnsupportedTileLayerEncoding

	ExternalTilesetDoesNotExist
	UnknownExternalTilesetError
	TilesetMissingFirstGID
	TilesetMissingTileWidth
	TilesetMissingTileHeight
	TilesetMissingName
	TilesetMissingImagePath
	TilesetMissingImageWidth
	TilesetMissingImageHeight
	TilesetMissingTileCount
	TilesetMissingColumnCount
	TilesetMissingVersion
	TilesetMissingExternalPath
	TilesetImageDoesNotExist
	UnsupportedTilesetVersion

	CorruptPropertyValue
	PropertyMissingName
	PropertyMissingType
	UnsupportedPropertyType

	ComponentDefMissingName
	ComponentDefMissingAttributeName
	ComponentDefMissingAttributeType
	UnsupportedComponentDefAttributeType
	CorruptComponentDefAttributeValue

	ComponentMissingType
	UnknownComponentType
	ComponentMissingAttributeName
	ComponentMissingAttributeValue
	CorruptComponentAttributeValue

	ObjectMissingID
	ObjectMissingType
	UnsupportedObjectType

	TileMissingID
	FrameMissingTile
	FrameMissingDuration

	parseErrorCount
)

var parseErrorText = [parseErrorCount]struct{ name, cause string }{
	None:             {"None", "No error occurred."},
	Unknown:          {"Unknown", "An unknown error occurred."},
	CouldNotReadFile: {"CouldNotReadFile", "Could not read the file."},

	MapDoesNotExist:           {"MapDoesNotExist", "The map file does not exist."},
	UnsupportedMapExtension:   {"UnsupportedMapExtension", "The map file has an unsupported extension."},
	UnsupportedMapOrientation: {"UnsupportedMapOrientation", "The map uses an unsupported orientation; only orthogonal maps are supported."},
	UnsupportedInfiniteMap:    {"UnsupportedInfiniteMap", "Infinite maps are not supported."},
	MapMissingTileWidth:       {"MapMissingTileWidth", "The map has no tile width attribute."},
	MapMissingTileHeight:      {"MapMissingTileHeight", "The map has no tile height attribute."},
	MapMissingWidth:           {"MapMissingWidth", "The map has no width (column count) attribute."},
	MapMissingHeight:          {"MapMissingHeight", "The map has no height (row count) attribute."},
	MapMissingNextLayerID:     {"MapMissingNextLayerID", "The map has no next layer identifier attribute."},
	MapMissingNextObjectID:    {"MapMissingNextObjectID", "The map has no next object identifier attribute."},

	LayerMissingID:               {"LayerMissingID", "A layer has no identifier."},
	LayerMissingType:             {"LayerMissingType", "A layer has no type."},
	UnsupportedLayerType:         {"UnsupportedLayerType", "A layer has an unsupported type."},
	LayerMissingTileData:         {"LayerMissingTileData", "A tile layer has no tile data."},
	CorruptTileLayerData:         {"CorruptTileLayerData", "A tile layer has corrupt tile data."},
	UnsupportedTileLayerEncoding: {"UnsupportedTileLayerEncoding", "A tile layer uses an unsupported data encoding; only CSV is supported."},

	ExternalTilesetDoesNotExist: {"ExternalTilesetDoesNotExist", "An external tileset file does not exist."},
	UnknownExternalTilesetError: {"UnknownExternalTilesetError", "An external tileset could not be loaded."},
	TilesetMissingFirstGID:      {"TilesetMissingFirstGID", "A tileset has no first tile identifier."},
	TilesetMissingTileWidth:     {"TilesetMissingTileWidth", "A tileset has no tile width."},
	TilesetMissingTileHeight:    {"TilesetMissingTileHeight", "A tileset has no tile height."},
	TilesetMissingName:          {"TilesetMissingName", "A tileset has no name."},
	TilesetMissingImagePath:     {"TilesetMissingImagePath", "A tileset has no image path."},
	TilesetMissingImageWidth:    {"TilesetMissingImageWidth", "A tileset has no image width."},
	TilesetMissingImageHeight:   {"TilesetMissingImageHeight", "A tileset has no image height."},
	TilesetMissingTileCount:     {"TilesetMissingTileCount", "A tileset has no tile count."},
	TilesetMissingColumnCount:   {"TilesetMissingColumnCount", "A tileset has no column count."},
	TilesetMissingVersion:       {"TilesetMissingVersion", "A tileset file has no version."},
	TilesetMissingExternalPath:  {"TilesetMissingExternalPath", "A tileset reference has no path to its external file."},
	TilesetImageDoesNotExist:    {"TilesetImageDoesNotExist", "A tileset image file does not exist."},
	UnsupportedTilesetVersion:   {"UnsupportedTilesetVersion", "A tileset file has an unsupported version."},

	CorruptPropertyValue:    {"CorruptPropertyValue", "A property has a value that does not match its type."},
	PropertyMissingName:     {"PropertyMissingName", "A property has no name."},
	PropertyMissingType:     {"PropertyMissingType", "A property has no type."},
	UnsupportedPropertyType: {"UnsupportedPropertyType", "A property has an unsupported type."},

	ComponentDefMissingName:              {"ComponentDefMissingName", "A component definition has no name."},
	ComponentDefMissingAttributeName:     {"ComponentDefMissingAttributeName", "A component definition attribute has no name."},
	ComponentDefMissingAttributeType:     {"ComponentDefMissingAttributeType", "A component definition attribute has no type."},
	UnsupportedComponentDefAttributeType: {"UnsupportedComponentDefAttributeType", "A component definition attribute has an unsupported type."},
	CorruptComponentDefAttributeValue:    {"CorruptComponentDefAttributeValue", "A component definition attribute has a default that does not match its type."},

	ComponentMissingType:           {"ComponentMissingType", "A component has no type."},
	UnknownComponentType:           {"UnknownComponentType", "A component refers to an undefined component type."},
	ComponentMissingAttributeName:  {"ComponentMissingAttributeName", "A component attribute has no name."},
	ComponentMissingAttributeValue: {"ComponentMissingAttributeValue", "A component attribute has no value."},
	CorruptComponentAttributeValue: {"CorruptComponentAttributeValue", "A component attribute has a value that does not match its type."},

	ObjectMissingID:       {"ObjectMissingID", "An object has no identifier."},
	ObjectMissingType:     {"ObjectMissingType", "An object has no type."},
	UnsupportedObjectType: {"UnsupportedObjectType", "An object has an unsupported type."},

	TileMissingID:        {"TileMissingID", "A tile definition has no identifier."},
	FrameMissingTile:     {"FrameMissingTile", "An animation frame has no tile identifier."},
	FrameMissingDuration: {"FrameMissingDuration", "An animation frame has no duration."},
}

// String returns the enumerator name.
func (e ParseError) String() string {
	if e < 0 || e >= parseErrorCount {
		return fmt.Sprintf("ParseError(%d)", int(e))
	}
	return parseErrorText[e].name
}

// Cause returns a short human readable explanation.
func (e ParseError) Cause() string {
	if e < 0 || e >= parseErrorCount {
		return parseErrorText[Unknown].cause
	}
	return parseErrorText[e].cause
}

// Error reports a failed parse. Path is the file being read when the
// failure was detected, which may be an external tileset.
type Error struct {
	Code ParseError
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Code.String() + ": " + e.Code.Cause()
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code, so callers can write
// errors.Is(err, &parser.Error{Code: parser.LayerMissingID}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf extracts the ParseError of err. A nil error is None; errors that
// did not come from a parser are Unknown.
func CodeOf(err error) ParseError {
	if err == nil {
		return None
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return Unknown
}

func fail(code ParseError, path string) error {
	return &Error{Code: code, Path: path}
}

func failWith(code ParseError, path string, err error) error {
	return &Error{Code: code, Path: path, Err: err}
}
