// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// stamp is the commit, dirty flag and build time of this binary.
type stamp struct {
	commit string
	dirty  bool
	time   string
}

// readStamp prefers the -ldflags values and falls back to the toolchain's
// vcs.* build settings.
func readStamp() stamp {
	current := stamp{commit: GitCommit, dirty: GitDirty == "true", time: BuildTime}
	if current.commit != "unknown" {
		return current
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return current
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			current.commit = setting.Value
			if len(current.commit) > 12 {
				current.commit = current.commit[:12]
			}
		case "vcs.modified":
			current.dirty = setting.Value == "true"
		case "vcs.time":
			if current.time == "unknown" {
				current.time = setting.Value
			}
		}
	}
	return current
}

// Info returns a formatted version string suitable for --version output,
// for example "0.1.0-dev (3f2a9c1, 2026-10-01T12:00:00Z)".
func Info() string {
	current := readStamp()
	dirty := ""
	if current.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, current.commit, dirty, current.time)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}
