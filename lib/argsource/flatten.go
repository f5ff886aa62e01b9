// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"fmt"
)

// FlattenDocuments converts a decoded source into tokens. The source must
// hold exactly one document and that document's root must be a mapping.
func FlattenDocuments(documents []*Node) ([]string, error) {
	if len(documents) != 1 {
		return nil, &FormatError{Err: fmt.Errorf("%w, found %d", ErrDocumentCount, len(documents))}
	}

	root := documents[0]
	if root == nil || root.Kind != KindMapping {
		line := 0
		if root != nil {
			line = root.Line
		}
		return nil, &FormatError{Line: line, Err: ErrRootNotMapping}
	}

	return FlattenMapping(root)
}

// FlattenMapping converts one mapping into tokens, in document order.
func FlattenMapping(mapping *Node) ([]string, error) {
	var tokens []string
	if err := appendMapping(&tokens, mapping, ""); err != nil {
		return nil, err
	}
	return tokens, nil
}

func appendMapping(tokens *[]string, mapping *Node, path string) error {
	for _, pair := range mapping.Pairs {
		key := pair.Key
		if key == nil || key.Kind != KindScalar {
			return &FormatError{Path: path, Line: lineOf(key), Err: ErrNonScalarKey}
		}
		if key.Value == "" {
			return &FormatError{Path: path, Line: key.Line, Err: ErrEmptyKey}
		}

		childPath := joinPath(path, key.Value)
		value := pair.Value

		switch {
		case value == nil || value.Kind == KindScalar:
			*tokens = append(*tokens, "--"+key.Value)
			if value != nil && value.Value != "" {
				*tokens = append(*tokens, value.Value)
			}

		case value.Kind == KindMapping:
			*tokens = append(*tokens, key.Value)
			if err := appendMapping(tokens, value, childPath); err != nil {
				return err
			}

		case value.Kind == KindSequence:
			// A sequence of scalars repeats the flag. Anything structured
			// inside makes the key a subcommand selector as well.
			if hasStructuredItem(value) {
				*tokens = append(*tokens, key.Value)
			}
			if err := appendSequence(tokens, value, key.Value, childPath); err != nil {
				return err
			}

		default:
			return &FormatError{Path: childPath, Line: value.Line, Err: fmt.Errorf("%w: %s", ErrUnsupportedValue, value.Kind)}
		}
	}
	return nil
}

func appendSequence(tokens *[]string, sequence *Node, flag, path string) error {
	for index, item := range sequence.Items {
		itemPath := fmt.Sprintf("%s[%d]", path, index)
		switch {
		case item == nil:
			continue

		case item.Kind == KindMapping:
			if err := appendMapping(tokens, item, itemPath); err != nil {
				return err
			}

		case item.Kind == KindScalar:
			if item.Value == "" {
				continue
			}
			*tokens = append(*tokens, "--"+flag, item.Value)

		case item.Kind == KindSequence:
			if err := appendSequence(tokens, item, flag, itemPath); err != nil {
				return err
			}

		default:
			return &FormatError{Path: itemPath, Line: item.Line, Err: fmt.Errorf("%w: %s", ErrUnsupportedValue, item.Kind)}
		}
	}
	return nil
}

// hasStructuredItem reports whether any element of sequence is a mapping
// or a sequence.
func hasStructuredItem(sequence *Node) bool {
	for _, item := range sequence.Items {
		if item != nil && item.Kind != KindScalar {
			return true
		}
	}
	return false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func lineOf(node *Node) int {
	if node == nil {
		return 0
	}
	return node.Line
}
