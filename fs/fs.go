/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package fs is the file system seam used by parsers and emitters. Map
// files, external tilesets and tileset images are all reached through it,
// so tests can run against an in-memory tree.
package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem provides the operations needed to load and save maps.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	// WriteFile replaces name in one step: readers see the old content or
	// the new content, never a prefix.
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error

	Stat(name string) (fs.FileInfo, error)
	Exists(path string) bool

	// Open makes a FileSystem usable with fs.WalkDir for glob expansion.
	Open(name string) (fs.File, error)
}

// OSFileSystem implements FileSystem on the host file system.
type OSFileSystem struct{}

// NewOSFileSystem creates a FileSystem backed by package os.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (f *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes data to a temporary sibling of name and renames it into
// place.
func (f *OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, name); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (f *OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Exists reports whether path can be stat'ed.
func (f *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}
