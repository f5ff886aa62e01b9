// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"strings"
)

// MappedParameter is a parameter together with the values the user
// supplied for it. Non-repeatable parameters hold exactly one value.
type MappedParameter struct {
	Parameter *Parameter
	Values    []string
}

// Value returns the last supplied value.
func (m MappedParameter) Value() string {
	if len(m.Values) == 0 {
		return ""
	}
	return m.Values[len(m.Values)-1]
}

func (m MappedParameter) clone() MappedParameter {
	return MappedParameter{Parameter: m.Parameter, Values: slices.Clone(m.Values)}
}

// CommandTree is one parsed command path as a singly linked chain from
// the top-level command to the leaf.
type CommandTree struct {
	Command *Command

	// Mapped holds parameters with supplied values, in the order they
	// were first supplied. Each parameter appears at most once.
	Mapped []MappedParameter

	// Unmapped holds the command's own parameters that received no
	// value. They bind to their defaults.
	Unmapped []*Parameter

	// ShowHelp is set when -h, --help or -? appeared at this node.
	ShowHelp bool

	Parent *CommandTree
	Next   *CommandTree
}

func newTree(parent *CommandTree, command *Command) *CommandTree {
	return &CommandTree{
		Command:  command,
		Unmapped: slices.Clone(command.parameters),
		Parent:   parent,
	}
}

// Leaf returns the last node of the chain.
func (t *CommandTree) Leaf() *CommandTree {
	node := t
	for node != nil && node.Next != nil {
		node = node.Next
	}
	return node
}

// Lookup returns the mapped entry for id at this node.
func (t *CommandTree) Lookup(id ParameterID) (MappedParameter, bool) {
	for _, mapped := range t.Mapped {
		if mapped.Parameter.ID == id {
			return mapped, true
		}
	}
	return MappedParameter{}, false
}

// Find returns the node for the named command along the chain.
func (t *CommandTree) Find(name string) *CommandTree {
	for node := t; node != nil; node = node.Next {
		if node.Command.Name == name {
			return node
		}
	}
	return nil
}

// mapValue records value for parameter. Repeatable parameters
// accumulate; others keep only the latest value.
func (t *CommandTree) mapValue(parameter *Parameter, value string) {
	for i := range t.Mapped {
		if t.Mapped[i].Parameter != parameter {
			continue
		}
		if parameter.Repeatable {
			t.Mapped[i].Values = append(t.Mapped[i].Values, value)
		} else {
			t.Mapped[i].Values = []string{value}
		}
		return
	}
	t.Mapped = append(t.Mapped, MappedParameter{Parameter: parameter, Values: []string{value}})
	t.Unmapped = slices.DeleteFunc(t.Unmapped, func(unmapped *Parameter) bool {
		return unmapped == parameter
	})
}

func (t *CommandTree) isMapped(parameter *Parameter) bool {
	for _, mapped := range t.Mapped {
		if mapped.Parameter == parameter {
			return true
		}
	}
	return false
}

// String renders the chain for logs and test failures, for example
// `add [PROJECT]=core > package <PACKAGE_NAME>=lib --number=5`.
func (t *CommandTree) String() string {
	if t == nil {
		return "<nil>"
	}
	var builder strings.Builder
	for node := t; node != nil; node = node.Next {
		if node != t {
			builder.WriteString(" > ")
		}
		builder.WriteString(node.Command.Name)
		for _, mapped := range node.Mapped {
			builder.WriteByte(' ')
			builder.WriteString(mapped.Parameter.Display())
			builder.WriteByte('=')
			builder.WriteString(strings.Join(mapped.Values, ","))
		}
		if node.ShowHelp {
			builder.WriteString(" (help)")
		}
	}
	return builder.String()
}
