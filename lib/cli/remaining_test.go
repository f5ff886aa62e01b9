// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRemainingArgumentsGroupsCaseInsensitively(t *testing.T) {
	remaining := NewRemainingArguments([]RemainingGroup{
		{Key: "Config", Values: []string{"a.yaml"}},
		{Key: "yaml", Values: []string{"b.yaml"}},
		{Key: "CONFIG", Values: []string{"c.yaml"}},
		{Key: "verbose"},
	}, []string{"tail"})

	want := []RemainingGroup{
		{Key: "Config", Values: []string{"a.yaml", "c.yaml"}},
		{Key: "yaml", Values: []string{"b.yaml"}},
		{Key: "verbose", Values: []string{""}},
	}
	if diff := cmp.Diff(want, remaining.Groups()); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if remaining.Len() != 3 {
		t.Errorf("Len() = %d, want 3", remaining.Len())
	}
	if values, ok := remaining.Values("config"); !ok || len(values) != 2 {
		t.Errorf("Values(config) = %q, %v; want two values", values, ok)
	}
	if _, ok := remaining.Values("missing"); ok {
		t.Error("Values(missing) found a group")
	}
	if diff := cmp.Diff([]string{"Config", "yaml", "verbose"}, remaining.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestRemainingArgumentsWithout(t *testing.T) {
	remaining := NewRemainingArguments([]RemainingGroup{
		{Key: "config", Values: []string{"a.yaml"}},
		{Key: "other", Values: []string{"x"}},
	}, []string{"raw"})

	trimmed := remaining.Without("CONFIG")
	if diff := cmp.Diff([]string{"other"}, trimmed.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"raw"}, trimmed.Raw()); diff != "" {
		t.Errorf("raw mismatch (-want +got):\n%s", diff)
	}
	if remaining.Len() != 2 {
		t.Errorf("original Len() = %d after Without, want 2", remaining.Len())
	}
}

func TestRemainingArgumentsCopies(t *testing.T) {
	remaining := NewRemainingArguments([]RemainingGroup{{Key: "k", Values: []string{"v"}}}, nil)

	groups := remaining.Groups()
	groups[0].Values[0] = "changed"
	if values, _ := remaining.Values("k"); values[0] != "v" {
		t.Errorf("Values(k) = %q after mutating Groups() result, want [v]", values)
	}

	var empty RemainingArguments
	if empty.Len() != 0 || len(empty.Groups()) != 0 || len(empty.Raw()) != 0 {
		t.Error("zero RemainingArguments is not empty")
	}
}
