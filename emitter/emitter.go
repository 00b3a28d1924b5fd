/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package emitter writes the IR to map files of every supported grammar.
package emitter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/ir"
)

// ErrUnsupportedFormat is returned when the destination path has no known
// grammar. Nothing is written in that case.
var ErrUnsupportedFormat = errors.New("unsupported map format")

// Tiled versions written to XML and JSON output.
const (
	TiledVersion  = "1.9.2"
	FormatVersion = "1.9"
)

// Options control the shape of emitted files.
type Options struct {
	// EmbedTilesets stores tilesets inline instead of as sibling files.
	// The YAML grammar always uses sibling files.
	EmbedTilesets bool

	// FoldTileData writes one row of tile ids per line (XML, YAML).
	FoldTileData bool

	// IndentOutput pretty-prints the output (XML, JSON).
	IndentOutput bool
}

// File is one rendered output file.
type File struct {
	Path string
	Data []byte
}

// Renderer turns a map into the files of one grammar. External tileset
// files precede the map file.
type Renderer interface {
	Render(m *ir.Map, opts Options) ([]File, error)
}

// ForFormat returns the renderer of a grammar, or nil for Unsupported.
func ForFormat(f format.Format) Renderer {
	switch f {
	case format.XML:
		return &XMLRenderer{}
	case format.JSON:
		return &JSONRenderer{}
	case format.YAML:
		return &YAMLRenderer{}
	default:
		return nil
	}
}

// Emit writes m to m.Path in the grammar selected by its extension. Every
// file is rendered before the first write, so a rendering failure leaves
// the file system untouched. External tilesets are written before the map.
func Emit(filesystem fs.FileSystem, m *ir.Map, opts Options) error {
	r := ForFormat(format.FromPath(m.Path))
	if r == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, m.Path)
	}

	ir.Reindex(m.Layers)
	files, err := r.Render(m, opts)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", m.Path, err)
	}

	for _, f := range files {
		if err := filesystem.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", f.Path, err)
		}
		if err := filesystem.WriteFile(f.Path, f.Data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}
	return nil
}

// EmitTo writes m to path, leaving m.Path unchanged.
func EmitTo(filesystem fs.FileSystem, m *ir.Map, path string, opts Options) error {
	saved := m.Path
	m.Path = path
	defer func() { m.Path = saved }()
	return Emit(filesystem, m, opts)
}

var tilesetNameReplacer = strings.NewReplacer("/", "_", `\`, "_")

// tilesetFileName returns the sibling file name of an external tileset.
// Path separators in the tileset name are flattened so the file always
// lands next to the map.
func tilesetFileName(ts *ir.Tileset, f format.Format) string {
	name := tilesetNameReplacer.Replace(ts.Name)
	if name == "" || name == "." || name == ".." {
		name = "tileset"
	}
	return name + f.TilesetExtension()
}

// fileValue relativizes an absolute file property against dir.
func fileValue(path, dir string) string {
	if path == "" {
		return ""
	}
	return ir.ResolveFileProperty(path, dir)
}
