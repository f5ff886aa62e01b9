// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Pkgtool is a small project tool that demonstrates layered argument
// resolution. Its commands add packages and project references:
//
//	pkgtool add [PROJECT] package <PACKAGE_NAME> [-v VERSION]... [--flag] [--number N]
//	pkgtool add [PROJECT] reference <PROJECT_REFERENCE>
//
// Any option naming a configured argument source loads a document whose
// contents are layered under the command line. With the default
// configuration, --yaml reads YAML and --config detects the format from
// the file extension:
//
//	pkgtool add package lib --config defaults.toml
//
// Configuration is read from the file named by LAYERARGS_CONFIG; without
// it the defaults of lib/config apply.
package main
