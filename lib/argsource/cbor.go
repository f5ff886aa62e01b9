// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/layerargs/lib/codec"
)

// decodeCBOR decodes a CBOR sequence. A well-formed argument document is a
// sequence of exactly one map.
func decodeCBOR(data []byte) ([]*Node, error) {
	decoder := codec.NewDecoder(bytes.NewReader(data))

	var documents []*Node
	for {
		var item any
		err := decoder.Decode(&item)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Format: FormatCBOR, Err: fmt.Errorf("decoding: %w", err)}
		}

		node, err := fromValue(item, 0)
		if err != nil {
			return nil, &FormatError{Format: FormatCBOR, Err: err}
		}
		documents = append(documents, node)
	}
	return documents, nil
}
