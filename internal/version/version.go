/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides build information for the mapio CLI and its
// MCP server.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Name is the program name reported by the CLI and the MCP server.
const Name = "mapio"

var (
	// Version information, set at build time via ldflags
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

// Get returns the version string for the application. An ldflags version
// wins, then the module version from `go install`, then tag plus commit.
func Get() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}

	v := GitTag
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" && !strings.HasSuffix(GitTag, commit) {
		v = GitTag + "-" + commit
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

// String returns "mapio <version>".
func String() string {
	return fmt.Sprintf("%s %s", Name, Get())
}

// Info returns detailed build information.
func Info() map[string]string {
	return map[string]string{
		"name":      Name,
		"version":   Get(),
		"gitCommit": GitCommit,
		"gitTag":    GitTag,
		"buildTime": BuildTime,
		"gitDirty":  GitDirty,
		"go":        runtime.Version(),
	}
}
