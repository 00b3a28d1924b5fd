/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

// Snapshotter builds an IR snapshot of a live editor document.
type Snapshotter interface {
	Snapshot() (*Map, error)
}

// Restorer populates a live editor document from a parsed map.
type Restorer interface {
	Restore(m *Map) error
}
