/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import "path/filepath"

// RelativizePath returns target relative to baseDir using forward slashes,
// so saved files are portable between hosts. If no relative path exists
// the slashed target is returned.
func RelativizePath(target, baseDir string) string {
	rel, err := filepath.Rel(baseDir, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

// ResolveFileProperty makes a file-valued property absolute, then
// relativizes it against baseDir.
func ResolveFileProperty(value, baseDir string) string {
	abs, err := filepath.Abs(value)
	if err != nil {
		abs = value
	}
	return RelativizePath(abs, baseDir)
}

// ResolvePath joins a path read from a file onto the directory of that
// file. Forward slashes in the stored path are accepted on every host.
func ResolvePath(stored, baseDir string) string {
	p := filepath.FromSlash(stored)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
