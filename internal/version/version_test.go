/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuild(t *testing.T, v, commit, tag, dirty string) {
	t.Helper()
	oldV, oldC, oldT, oldD := Version, GitCommit, GitTag, GitDirty
	t.Cleanup(func() {
		Version, GitCommit, GitTag, GitDirty = oldV, oldC, oldT, oldD
	})
	Version, GitCommit, GitTag, GitDirty = v, commit, tag, dirty
}

func TestGet(t *testing.T) {
	tests := []struct {
		name                     string
		version, commit, tag, dd string
		want                     string
	}{
		{"ldflags version", "v1.2.3", "unknown", "unknown", "", "v1.2.3"},
		{"tag and commit", "dev", "abcdef0123", "v0.4.0", "", "v0.4.0-abcdef0"},
		{"tag already has commit", "dev", "abcdef0", "v0.4.0-abcdef0", "", "v0.4.0-abcdef0"},
		{"dirty tree", "dev", "abcdef0", "v0.4.0", "dirty", "v0.4.0-abcdef0-dirty"},
		{"nothing known", "dev", "unknown", "unknown", "", "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.version, tt.commit, tt.tag, tt.dd)
			assert.Equal(t, tt.want, Get())
		})
	}
}

func TestInfo(t *testing.T) {
	setBuild(t, "v1.0.0", "abc", "v1.0.0", "")
	info := Info()
	assert.Equal(t, "mapio", info["name"])
	assert.Equal(t, "v1.0.0", info["version"])
	assert.Equal(t, runtime.Version(), info["go"])
	assert.Equal(t, "mapio v1.0.0", String())
}
