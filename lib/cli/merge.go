// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "slices"

// MergeTrees combines two parsed command paths with right taking
// precedence. Neither operand is modified.
//
//   - left nil: the result is right.
//   - right nil: the result is nil. The right-hand path decides which
//     command runs, so an empty right-hand side selects nothing.
//   - different commands: the result is right.
//   - same command: a new node carrying left's parameters, where every
//     parameter right mapped replaces left's entry (mapped or unmapped)
//     and moves to the end. The chain continues with the merge of both
//     successors while right has one, and ends otherwise. Only right's
//     help request survives.
func MergeTrees(left, right *CommandTree) *CommandTree {
	if left == nil {
		return right
	}
	return mergeTrees(left, right, nil)
}

func mergeTrees(left, right, parent *CommandTree) *CommandTree {
	if right == nil {
		return nil
	}
	if left == nil || left.Command.Name != right.Command.Name {
		return cloneTree(right, parent)
	}

	result := &CommandTree{
		Command:  left.Command,
		Mapped:   cloneMapped(left.Mapped),
		Unmapped: slices.Clone(left.Unmapped),
		ShowHelp: right.ShowHelp,
		Parent:   parent,
	}
	for _, mapped := range right.Mapped {
		id := mapped.Parameter.ID
		result.Mapped = slices.DeleteFunc(result.Mapped, func(existing MappedParameter) bool {
			return existing.Parameter.ID == id
		})
		result.Unmapped = slices.DeleteFunc(result.Unmapped, func(existing *Parameter) bool {
			return existing.ID == id
		})
		result.Mapped = append(result.Mapped, mapped.clone())
	}
	if right.Next != nil {
		result.Next = mergeTrees(left.Next, right.Next, result)
	}
	return result
}

// FoldTrees merges trees left to right, so later trees take precedence.
// It returns nil for no trees.
func FoldTrees(trees ...*CommandTree) *CommandTree {
	var result *CommandTree
	for i, tree := range trees {
		if i == 0 {
			result = tree
			continue
		}
		result = MergeTrees(result, tree)
	}
	return result
}

// cloneTree copies a chain so it can hang below a new parent without
// touching the original.
func cloneTree(tree, parent *CommandTree) *CommandTree {
	if tree == nil {
		return nil
	}
	clone := &CommandTree{
		Command:  tree.Command,
		Mapped:   cloneMapped(tree.Mapped),
		Unmapped: slices.Clone(tree.Unmapped),
		ShowHelp: tree.ShowHelp,
		Parent:   parent,
	}
	clone.Next = cloneTree(tree.Next, clone)
	return clone
}

func cloneMapped(mapped []MappedParameter) []MappedParameter {
	if mapped == nil {
		return nil
	}
	clones := make([]MappedParameter, len(mapped))
	for i, entry := range mapped {
		clones[i] = entry.clone()
	}
	return clones
}
