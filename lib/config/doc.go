// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the configuration of layerargs binaries.
//
// Configuration is loaded from a single file specified by:
//   - LAYERARGS_CONFIG environment variable, or
//   - an explicit path passed to [LoadFile]
//
// There is no automatic discovery. The file declares which argument
// sources are registered (their option keys and document formats), the
// age identity used for encrypted documents, the log level, and help
// styling. ${VAR} and ${VAR:-default} are expanded in path fields, and
// ${LAYERARGS_CONFIG_DIR} names the directory holding the file.
package config
