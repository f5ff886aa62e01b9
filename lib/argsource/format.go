// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the decoder a [Source] applies to loaded bytes.
type Format uint8

const (
	// FormatAuto infers the format from the locator's extension after
	// transport suffixes (.age, .zst, .lz4) have been removed.
	FormatAuto Format = iota

	// FormatYAML decodes YAML. Entry order is preserved.
	FormatYAML

	// FormatJSON decodes JSON, accepting // and /* */ comments and
	// trailing commas. Entry order is preserved.
	FormatJSON

	// FormatCBOR decodes a CBOR item. Map order is not significant in
	// CBOR, so entries are ordered as described on fromValue.
	FormatCBOR

	// FormatTOML decodes a TOML document. Table order is not preserved
	// by the decoder, so entries are ordered as for CBOR.
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("format(%d)", f)
	}
}

// ParseFormat parses a format name as written in configuration files.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return FormatAuto, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

var extensionFormats = map[string]Format{
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
	".json":  FormatJSON,
	".jsonc": FormatJSON,
	".cbor":  FormatCBOR,
	".toml":  FormatTOML,
}

// FormatForName infers a format from a file name's extension. The name
// should already have transport suffixes removed (see [Document.Name]).
func FormatForName(name string) (Format, bool) {
	format, ok := extensionFormats[strings.ToLower(filepath.Ext(name))]
	return format, ok
}

// Decode decodes data into its documents. Most formats hold exactly one
// document; YAML streams and CBOR sequences may hold several, which
// [FlattenDocuments] rejects.
func Decode(format Format, data []byte) ([]*Node, error) {
	var (
		documents []*Node
		err       error
	)
	switch format {
	case FormatYAML:
		documents, err = decodeYAML(data)
	case FormatJSON:
		documents, err = decodeJSON(data)
	case FormatCBOR:
		documents, err = decodeCBOR(data)
	case FormatTOML:
		documents, err = decodeTOML(data)
	default:
		return nil, &FormatError{Format: format, Err: fmt.Errorf("%w: no decoder for %s", ErrUnknownFormat, format)}
	}
	if err != nil {
		return nil, annotate(err, "", format)
	}
	return documents, nil
}
