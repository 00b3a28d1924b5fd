/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser reads map files of every supported grammar into the IR.
//
// Parsing is sequential and fail-fast: the first missing or malformed
// required field aborts the call with an *Error carrying a ParseError code,
// and no partial map is returned.
package parser

import (
	"path/filepath"

	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/ir"
)

// Parser reads one map grammar.
type Parser interface {
	// ParseFile parses the map at path along with any external tilesets.
	ParseFile(filesystem fs.FileSystem, path string) (*ir.Map, error)
}

// ForFormat returns the parser of a grammar, or nil for Unsupported.
func ForFormat(f format.Format) Parser {
	switch f {
	case format.XML:
		return NewXMLParser()
	case format.JSON:
		return NewJSONParser()
	case format.YAML:
		return NewYAMLParser()
	default:
		return nil
	}
}

// Parse selects a grammar from the extension of path and parses the map.
func Parse(filesystem fs.FileSystem, path string) (*ir.Map, error) {
	if !filesystem.Exists(path) {
		return nil, fail(MapDoesNotExist, path)
	}
	p := ForFormat(format.Detect(filesystem, path))
	if p == nil {
		return nil, fail(UnsupportedMapExtension, path)
	}
	return p.ParseFile(filesystem, path)
}

// readFile loads a map or tileset file, classifying read failures.
func readFile(filesystem fs.FileSystem, path string) ([]byte, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, failWith(CouldNotReadFile, path, err)
	}
	return data, nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// newMap builds the map shell every grammar starts from.
func newMap(path string) *ir.Map {
	m := ir.NewMap()
	m.Path = absPath(path)
	return m
}
