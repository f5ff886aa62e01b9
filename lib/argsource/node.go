// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Kind classifies a document node.
type Kind uint8

const (
	KindScalar Kind = iota + 1
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Node is one value of a decoded document. Every decoder produces this
// model so that flattening is format-independent.
type Node struct {
	Kind Kind

	// Value is the text of a scalar. Null decodes as "".
	Value string

	// Pairs holds mapping entries in document order.
	Pairs []Pair

	// Items holds sequence elements in document order.
	Items []*Node

	// Line is the 1-based source line, or 0 when the decoder has no
	// position information.
	Line int
}

// Pair is one mapping entry. Key is a node rather than a string because
// some formats allow mappings and sequences as keys, which flattening
// rejects.
type Pair struct {
	Key   *Node
	Value *Node
}

// Scalar returns a scalar node.
func Scalar(value string) *Node {
	return &Node{Kind: KindScalar, Value: value}
}

// Mapping returns a mapping node with the given entries.
func Mapping(pairs ...Pair) *Node {
	return &Node{Kind: KindMapping, Pairs: pairs}
}

// Sequence returns a sequence node with the given elements.
func Sequence(items ...*Node) *Node {
	return &Node{Kind: KindSequence, Items: items}
}

// Entry returns a mapping entry with a scalar key.
func Entry(key string, value *Node) Pair {
	return Pair{Key: Scalar(key), Value: value}
}

// maxDepth bounds recursion through decoded documents.
const maxDepth = 512

// fromValue converts a generic decoded value (as produced by the CBOR and
// TOML decoders) into a Node. Those formats carry no entry order, so
// mapping entries are ordered deterministically: entries that flatten to
// flags (scalars and all-scalar sequences) first, then entries that
// select subcommands, each group sorted by key. This keeps a command's own
// options ahead of its nested subcommand.
func fromValue(value any, depth int) (*Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrUnsupportedValue, maxDepth)
	}

	switch typed := value.(type) {
	case []any:
		node := &Node{Kind: KindSequence, Items: make([]*Node, 0, len(typed))}
		for _, item := range typed {
			child, err := fromValue(item, depth+1)
			if err != nil {
				return nil, err
			}
			node.Items = append(node.Items, child)
		}
		return node, nil

	case map[string]any:
		pairs := make([]Pair, 0, len(typed))
		for key, item := range typed {
			child, err := fromValue(item, depth+1)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, Entry(key, child))
		}
		return &Node{Kind: KindMapping, Pairs: sortPairs(pairs)}, nil

	case map[any]any:
		pairs := make([]Pair, 0, len(typed))
		for key, item := range typed {
			keyNode, err := fromValue(key, depth+1)
			if err != nil {
				return nil, err
			}
			child, err := fromValue(item, depth+1)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, Pair{Key: keyNode, Value: child})
		}
		return &Node{Kind: KindMapping, Pairs: sortPairs(pairs)}, nil
	}

	text, err := scalarText(value)
	if err != nil {
		return nil, err
	}
	return Scalar(text), nil
}

// scalarText renders a decoded scalar the way it would be typed on a
// command line.
func scalarText(value any) (string, error) {
	switch typed := value.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case bool:
		return strconv.FormatBool(typed), nil
	case int:
		return strconv.Itoa(typed), nil
	case int8:
		return strconv.FormatInt(int64(typed), 10), nil
	case int16:
		return strconv.FormatInt(int64(typed), 10), nil
	case int32:
		return strconv.FormatInt(int64(typed), 10), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case uint:
		return strconv.FormatUint(uint64(typed), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(typed), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(typed), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(typed), 10), nil
	case uint64:
		return strconv.FormatUint(typed, 10), nil
	case float32:
		return strconv.FormatFloat(float64(typed), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(typed, 'g', -1, 64), nil
	case time.Time:
		return typed.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return typed.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

func sortPairs(pairs []Pair) []Pair {
	slices.SortStableFunc(pairs, func(a, b Pair) int {
		if rank := cmp.Compare(pairRank(a), pairRank(b)); rank != 0 {
			return rank
		}
		return cmp.Compare(a.Key.Value, b.Key.Value)
	})
	return pairs
}

// pairRank is 0 for entries that flatten to flags only and 1 for entries
// that emit a bare subcommand token.
func pairRank(pair Pair) int {
	if pair.Value == nil {
		return 0
	}
	switch pair.Value.Kind {
	case KindMapping:
		return 1
	case KindSequence:
		if hasStructuredItem(pair.Value) {
			return 1
		}
	}
	return 0
}
