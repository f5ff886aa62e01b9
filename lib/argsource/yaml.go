// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) ([]*Node, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var documents []*Node
	for {
		var document yaml.Node
		err := decoder.Decode(&document)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Format: FormatYAML, Err: fmt.Errorf("decoding: %w", err)}
		}

		converter := &yamlConverter{}
		node, err := converter.convert(&document, 0)
		if err != nil {
			return nil, err
		}
		documents = append(documents, node)
	}
	return documents, nil
}

// maxYAMLNodes bounds the nodes built from one YAML document. Every
// alias reference is expanded in place, so chained aliases multiply the
// count far beyond the size of the text.
const maxYAMLNodes = 100_000

// yamlConverter turns a yaml.v3 node tree into Nodes, counting each
// node it builds against maxYAMLNodes.
type yamlConverter struct {
	nodes int
}

func (c *yamlConverter) convert(node *yaml.Node, depth int) (*Node, error) {
	if depth > maxDepth {
		return nil, &FormatError{Line: node.Line, Err: fmt.Errorf("%w: nesting deeper than %d", ErrUnsupportedValue, maxDepth)}
	}
	c.nodes++
	if c.nodes > maxYAMLNodes {
		return nil, &FormatError{Line: node.Line, Err: fmt.Errorf("%w: document expands to more than %d nodes", ErrUnsupportedValue, maxYAMLNodes)}
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return &Node{Kind: KindScalar, Line: node.Line}, nil
		}
		return c.convert(node.Content[0], depth+1)

	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, &FormatError{Line: node.Line, Err: fmt.Errorf("%w: unresolved alias %q", ErrUnsupportedValue, node.Value)}
		}
		return c.convert(node.Alias, depth+1)

	case yaml.ScalarNode:
		return &Node{Kind: KindScalar, Value: node.Value, Line: node.Line}, nil

	case yaml.MappingNode:
		result := &Node{Kind: KindMapping, Line: node.Line, Pairs: make([]Pair, 0, len(node.Content)/2)}
		for index := 0; index+1 < len(node.Content); index += 2 {
			key, err := c.convert(node.Content[index], depth+1)
			if err != nil {
				return nil, err
			}
			value, err := c.convert(node.Content[index+1], depth+1)
			if err != nil {
				return nil, err
			}
			result.Pairs = append(result.Pairs, Pair{Key: key, Value: value})
		}
		return result, nil

	case yaml.SequenceNode:
		result := &Node{Kind: KindSequence, Line: node.Line, Items: make([]*Node, 0, len(node.Content))}
		for _, child := range node.Content {
			item, err := c.convert(child, depth+1)
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, item)
		}
		return result, nil

	default:
		return nil, &FormatError{Line: node.Line, Err: fmt.Errorf("%w: yaml node kind %d", ErrUnsupportedValue, node.Kind)}
	}
}
