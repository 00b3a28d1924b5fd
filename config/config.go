/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides project configuration for mapio.
package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/mapio/emitter"
	"bennypowers.dev/mapio/format"
)

// Config represents the project configuration.
type Config struct {
	// Files specifies the maps the CLI works on when given no arguments.
	Files []FileSpec `yaml:"files" json:"files"`

	// Format is the default conversion target: "xml", "json" or "yaml".
	Format string `yaml:"format" json:"format"`

	// EmbedTilesets stores tilesets inline in XML and JSON output.
	EmbedTilesets bool `yaml:"embedTilesets" json:"embedTilesets"`

	// FoldTileData writes one row of tile ids per line.
	FoldTileData bool `yaml:"foldTileData" json:"foldTileData"`

	// IndentOutput pretty-prints XML and JSON output.
	IndentOutput bool `yaml:"indentOutput" json:"indentOutput"`
}

// FileSpec represents a map file specification.
// It can be specified as a simple string path or as an object with overrides.
type FileSpec struct {
	// Path is the file path (supports globs).
	Path string `yaml:"path" json:"path"`

	// Format overrides the global conversion target for this file.
	Format string `yaml:"format" json:"format"`
}

// UnmarshalYAML handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}

	type rawFileSpec FileSpec
	return node.Decode((*rawFileSpec)(f))
}

// UnmarshalJSON handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	type rawFileSpec FileSpec
	return json.Unmarshal(data, (*rawFileSpec)(f))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{}
}

// TargetFormat returns the parsed Format field.
// Returns format.Unsupported if the field is empty or invalid.
func (c *Config) TargetFormat() format.Format {
	if c.Format == "" {
		return format.Unsupported
	}
	f, err := format.FromString(c.Format)
	if err != nil {
		return format.Unsupported
	}
	return f
}

// FormatForFile returns the conversion target for path. A matching file
// spec with a format takes precedence over the global one.
func (c *Config) FormatForFile(path string) format.Format {
	for _, spec := range c.Files {
		if spec.Path != path || spec.Format == "" {
			continue
		}
		if f, err := format.FromString(spec.Format); err == nil {
			return f
		}
		break
	}
	return c.TargetFormat()
}

// EmitOptions returns the emitter options the config selects.
func (c *Config) EmitOptions() emitter.Options {
	return emitter.Options{
		EmbedTilesets: c.EmbedTilesets,
		FoldTileData:  c.FoldTileData,
		IndentOutput:  c.IndentOutput,
	}
}

// FilePaths returns the list of file paths from all FileSpecs.
func (c *Config) FilePaths() []string {
	paths := make([]string, 0, len(c.Files))
	for _, spec := range c.Files {
		paths = append(paths, spec.Path)
	}
	return paths
}
