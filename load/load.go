/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load provides a high-level API for reading, writing and
// converting maps.
package load

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"bennypowers.dev/mapio/config"
	"bennypowers.dev/mapio/emitter"
	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/internal/logger"
	"bennypowers.dev/mapio/ir"
	"bennypowers.dev/mapio/parser"
)

var (
	// ErrNoTargetFormat indicates that neither options nor config name a
	// conversion target.
	ErrNoTargetFormat = errors.New("no target format")

	// ErrSameFile indicates a conversion whose output would overwrite its input.
	ErrSameFile = errors.New("output path equals input path")
)

// Options configures how maps are loaded and saved.
type Options struct {
	// Root is the directory searched for .config/mapio.*. Defaults to the
	// working directory.
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Format overrides the conversion target from the config file.
	Format format.Format

	// Emit overrides the emit options from the config file when set.
	Emit *emitter.Options
}

// session is the effective configuration of one call.
type session struct {
	fs   fs.FileSystem
	root string
	cfg  *config.Config
	opts Options
}

func newSession(opts Options) (*session, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path: %w", err)
		}
		root = absRoot
	}

	// Load config file (optional - not an error if missing)
	cfg := config.LoadOrDefault(filesystem, root)

	return &session{fs: filesystem, root: root, cfg: cfg, opts: opts}, nil
}

func (s *session) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.root, p)
}

func (s *session) emitOptions() emitter.Options {
	if s.opts.Emit != nil {
		return *s.opts.Emit
	}
	return s.cfg.EmitOptions()
}

// targetFormat resolves the conversion target of path: options first,
// then a per-file config override, then the config default.
func (s *session) targetFormat(rel string) format.Format {
	if s.opts.Format != format.Unsupported {
		return s.opts.Format
	}
	return s.cfg.FormatForFile(rel)
}

// Load parses the map at path. Relative paths resolve against Options.Root.
func Load(ctx context.Context, path string, opts Options) (*ir.Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := newSession(opts)
	if err != nil {
		return nil, err
	}
	return parser.Parse(s.fs, s.path(path))
}

// Open parses the map at path and hands it to r.
func Open(ctx context.Context, r ir.Restorer, path string, opts Options) error {
	m, err := Load(ctx, path, opts)
	if err != nil {
		return err
	}
	if err := r.Restore(m); err != nil {
		return fmt.Errorf("failed to restore %s: %w", m.Path, err)
	}
	return nil
}

// Save snapshots src and writes it to path in the grammar selected by its
// extension.
func Save(ctx context.Context, src ir.Snapshotter, path string, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	m, err := src.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot document: %w", err)
	}
	return emitter.EmitTo(s.fs, m, s.path(path), s.emitOptions())
}

// Convert parses the map at path and writes it next to the input with the
// extension of the target format. It returns the output path.
func Convert(ctx context.Context, path string, opts Options) (string, error) {
	s, err := newSession(opts)
	if err != nil {
		return "", err
	}
	target := s.targetFormat(path)
	if target == format.Unsupported {
		return "", fmt.Errorf("%w for %s", ErrNoTargetFormat, path)
	}
	return ConvertTo(ctx, path, target.ReplaceExtension(s.path(path)), opts)
}

// ConvertTo parses the map at path and writes it to out.
func ConvertTo(ctx context.Context, path, out string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := newSession(opts)
	if err != nil {
		return "", err
	}

	in := s.path(path)
	out = s.path(out)
	if filepath.Clean(in) == filepath.Clean(out) {
		return "", fmt.Errorf("%w: %s", ErrSameFile, in)
	}

	m, err := parser.Parse(s.fs, in)
	if err != nil {
		return "", err
	}
	if err := emitter.EmitTo(s.fs, m, out, s.emitOptions()); err != nil {
		return "", err
	}
	logger.Debug("converted %s to %s", in, out)
	return out, nil
}

// ConvertAll converts every file the config lists, stopping at the first
// failure or when ctx is cancelled.
func ConvertAll(ctx context.Context, opts Options) ([]string, error) {
	s, err := newSession(opts)
	if err != nil {
		return nil, err
	}
	files, err := s.cfg.ExpandFiles(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config files: %w", err)
	}

	var outputs []string
	for _, file := range files {
		rel, err := filepath.Rel(s.root, file)
		if err != nil {
			rel = file
		}
		target := s.targetFormat(rel)
		if target == format.Unsupported {
			return outputs, fmt.Errorf("%w for %s", ErrNoTargetFormat, file)
		}
		out, err := ConvertTo(ctx, file, target.ReplaceExtension(file), opts)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}
