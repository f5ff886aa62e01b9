// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"strings"
)

// RemainingGroup is one unrecognized option name and every value given
// for it, in encounter order. An option given without a value
// contributes an empty string.
type RemainingGroup struct {
	Key    string
	Values []string
}

// RemainingArguments is the input the parser did not consume: unknown
// options grouped by name (case-insensitively, first spelling kept) and
// the raw tokens after a "--" terminator. The zero value is empty.
type RemainingArguments struct {
	groups []RemainingGroup
	raw    []string
}

// NewRemainingArguments builds remaining arguments from groups and raw
// tokens. Groups whose keys differ only in case are combined.
func NewRemainingArguments(groups []RemainingGroup, raw []string) RemainingArguments {
	var remaining RemainingArguments
	for _, group := range groups {
		for _, value := range group.Values {
			remaining.add(group.Key, value)
		}
		if len(group.Values) == 0 {
			remaining.add(group.Key, "")
		}
	}
	remaining.raw = slices.Clone(raw)
	return remaining
}

func (r *RemainingArguments) add(key, value string) {
	for i := range r.groups {
		if strings.EqualFold(r.groups[i].Key, key) {
			r.groups[i].Values = append(r.groups[i].Values, value)
			return
		}
	}
	r.groups = append(r.groups, RemainingGroup{Key: key, Values: []string{value}})
}

// Groups returns a copy of the groups in first-encounter order.
func (r RemainingArguments) Groups() []RemainingGroup {
	groups := make([]RemainingGroup, len(r.groups))
	for i, group := range r.groups {
		groups[i] = RemainingGroup{Key: group.Key, Values: slices.Clone(group.Values)}
	}
	return groups
}

// Values returns the values given for key, matched case-insensitively.
func (r RemainingArguments) Values(key string) ([]string, bool) {
	for _, group := range r.groups {
		if strings.EqualFold(group.Key, key) {
			return slices.Clone(group.Values), true
		}
	}
	return nil, false
}

// Keys returns the group keys in first-encounter order.
func (r RemainingArguments) Keys() []string {
	keys := make([]string, len(r.groups))
	for i, group := range r.groups {
		keys[i] = group.Key
	}
	return keys
}

// Raw returns the tokens that followed a "--" terminator.
func (r RemainingArguments) Raw() []string {
	return slices.Clone(r.raw)
}

// Len returns the number of groups.
func (r RemainingArguments) Len() int {
	return len(r.groups)
}

// Without returns a copy with the groups for keys removed (matched
// case-insensitively). Raw tokens are kept.
func (r RemainingArguments) Without(keys ...string) RemainingArguments {
	result := RemainingArguments{raw: slices.Clone(r.raw)}
	for _, group := range r.groups {
		if slices.ContainsFunc(keys, func(key string) bool { return strings.EqualFold(key, group.Key) }) {
			continue
		}
		result.groups = append(result.groups, RemainingGroup{Key: group.Key, Values: slices.Clone(group.Values)})
	}
	return result
}
