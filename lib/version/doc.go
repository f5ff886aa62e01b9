// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of layerargs binaries.
//
// Values are injected at build time via -ldflags:
//
//	go build -ldflags "-X github.com/bureau-foundation/layerargs/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When no commit was injected, the VCS stamp recorded by the Go
// toolchain is used instead.
package version
