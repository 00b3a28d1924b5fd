/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package format maps file paths to one of the supported map grammars.
package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/mapio/fs"
)

// Format identifies a map file grammar.
type Format int

const (
	// Unsupported is returned for unknown extensions and missing paths.
	Unsupported Format = iota

	// XML is the Tiled XML dialect (.tmx, .xml).
	XML

	// JSON is the Tiled JSON dialect (.json).
	JSON

	// YAML is the native YAML dialect (.yaml, .yml).
	YAML
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "unsupported"
	}
}

// Extension returns the preferred map file extension.
func (f Format) Extension() string {
	switch f {
	case XML:
		return ".tmx"
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	default:
		return ""
	}
}

// TilesetExtension returns the extension of external tileset files.
func (f Format) TilesetExtension() string {
	switch f {
	case XML:
		return ".tsx"
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	default:
		return ""
	}
}

// FromPath selects a format from the extension of path, ignoring case.
func FromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return YAML
	case ".xml", ".tmx":
		return XML
	case ".json":
		return JSON
	default:
		return Unsupported
	}
}

// Detect is FromPath for paths that must exist. Missing or inaccessible
// paths are Unsupported.
func Detect(filesystem fs.FileSystem, path string) Format {
	if _, err := filesystem.Stat(path); err != nil {
		return Unsupported
	}
	return FromPath(path)
}

// ValidFormats returns the format names accepted by FromString.
func ValidFormats() []string {
	return []string{"xml", "tmx", "json", "yaml", "yml"}
}

// FromString parses a format name.
func FromString(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "xml", "tmx":
		return XML, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return Unsupported, fmt.Errorf("unknown format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// ReplaceExtension swaps the extension of path for the format's own.
func (f Format) ReplaceExtension(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + f.Extension()
}
