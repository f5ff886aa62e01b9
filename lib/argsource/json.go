// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/tidwall/jsonc"
)

// decodeJSON strips comments and trailing commas, then walks the token
// stream so that object members keep their written order. A second
// top-level value yields a second document.
func decodeJSON(data []byte) ([]*Node, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var documents []*Node
	for {
		node, err := readJSONValue(decoder, 0)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Format: FormatJSON, Err: fmt.Errorf("decoding: %w", err)}
		}
		documents = append(documents, node)
	}
	return documents, nil
}

// readJSONValue reads one complete value. io.EOF is only returned at the
// top level before any token of the value has been read.
func readJSONValue(decoder *json.Decoder, depth int) (*Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrUnsupportedValue, maxDepth)
	}

	token, err := decoder.Token()
	if err != nil {
		if depth > 0 && errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch typed := token.(type) {
	case json.Delim:
		switch typed {
		case '{':
			node := &Node{Kind: KindMapping}
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				key, ok := keyToken.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T", keyToken)
				}
				value, err := readJSONValue(decoder, depth+1)
				if err != nil {
					return nil, err
				}
				node.Pairs = append(node.Pairs, Entry(key, value))
			}
			if _, err := decoder.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return node, nil

		case '[':
			node := &Node{Kind: KindSequence}
			for decoder.More() {
				item, err := readJSONValue(decoder, depth+1)
				if err != nil {
					return nil, err
				}
				node.Items = append(node.Items, item)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return node, nil

		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(typed))
		}

	case string:
		return Scalar(typed), nil
	case json.Number:
		return Scalar(typed.String()), nil
	case bool:
		return Scalar(strconv.FormatBool(typed)), nil
	case nil:
		return Scalar(""), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, token)
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
