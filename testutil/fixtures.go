/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides testing utilities for mapio.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/mapio/internal/mapfs"
)

// fixturePath finds a path under testdata. Go runs tests in the package
// directory, so the shared testdata tree may be one or two levels up.
func fixturePath(t *testing.T, rel string) string {
	t.Helper()

	possiblePaths := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Fatalf("Could not find fixture %s (tried all paths)", rel)
	return ""
}

// NewFixtureFS loads fixture files from testdata and returns a MapFileSystem
// with files mapped to the specified root path.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	mfs := mapfs.New()
	base := fixturePath(t, fixtureDir)

	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		mfs.AddFile(filepath.Join(rootPath, relPath), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}

	return mfs
}

// LoadFixtureFile reads a single fixture file and returns its content.
func LoadFixtureFile(t *testing.T, rel string) []byte {
	t.Helper()

	content, err := os.ReadFile(fixturePath(t, rel))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", rel, err)
	}
	return content
}

// NewMapFS builds an in-memory file system from path/content pairs.
func NewMapFS(files map[string]string) *mapfs.MapFileSystem {
	mfs := mapfs.New()
	for path, content := range files {
		mfs.AddFile(path, content, 0644)
	}
	return mfs
}
