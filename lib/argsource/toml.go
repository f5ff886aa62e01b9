// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOML decodes a TOML document. TOML has no multi-document form and
// its root is always a table, so the only failures are syntax errors and
// values without a token form.
func decodeTOML(data []byte) ([]*Node, error) {
	var table map[string]any
	if err := toml.Unmarshal(data, &table); err != nil {
		formatError := &FormatError{Format: FormatTOML, Err: fmt.Errorf("decoding: %w", err)}
		var decodeError *toml.DecodeError
		if errors.As(err, &decodeError) {
			formatError.Line, _ = decodeError.Position()
		}
		return nil, formatError
	}

	if table == nil {
		table = map[string]any{}
	}
	node, err := fromValue(table, 0)
	if err != nil {
		return nil, &FormatError{Format: FormatTOML, Err: err}
	}
	return []*Node{node}, nil
}
