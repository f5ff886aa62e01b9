// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package argsource turns external documents into command-line tokens.
//
// An [ArgumentSource] has a stable key and converts a locator (usually a
// file path) into an ordered token sequence. The key names the flag that
// selects the source: with a source keyed "yaml" registered, the command
// line "--yaml deploy.yaml" loads deploy.yaml and feeds its tokens to the
// same parser that handled the process arguments. Keys compare
// case-insensitively.
//
// Every supported format is decoded into the same document model ([Node])
// and flattened by [FlattenDocuments]:
//
//   - a mapping value emits the bare key (a subcommand selector) followed by
//     the flattened mapping
//   - a scalar value emits --key, then the scalar text when it is non-empty
//     (an empty scalar is a boolean-style flag)
//   - a sequence of scalars emits --key text once per non-empty element
//   - a sequence containing mappings or sequences emits the bare key first
//
// So the YAML document
//
//	add:
//	  package:
//	    number: 5
//	    version: [1.0, 2.0]
//
// flattens to "add package --number 5 --version 1.0 --version 2.0".
//
// [Source] is the concrete ArgumentSource. Its [Format] selects the decoder
// (YAML, JSON with comments, CBOR, TOML, or inferred from the file
// extension) and its [Loader] reads the locator, peeling .age, .zst and .lz4
// suffixes before decoding. Malformed documents fail with a [*FormatError];
// nothing is partially recovered.
//
// [Registry] keeps registered sources in registration order with an index
// on the lower-cased key. The dispatcher in lib/cli consults it when the
// primary parse leaves unknown flags behind.
package argsource
