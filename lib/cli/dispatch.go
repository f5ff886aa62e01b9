// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/bureau-foundation/layerargs/lib/argsource"
)

// Dispatch expands remaining options that name a registered argument
// source into extra token batches.
//
// Groups are visited in order. Every source whose key matches the group
// key (case-insensitively) is asked, in registration order, to provide
// arguments for each of the group's values in order; each call yields
// one batch. Empty values are skipped. A matched key is reported as
// consumed even when it yields no batch. Keys with no source are left
// alone. The first source failure aborts dispatch and no batches are
// returned.
func Dispatch(registry *argsource.Registry, remaining RemainingArguments) ([][]string, []string, error) {
	var batches [][]string
	var consumed []string
	for _, group := range remaining.groups {
		sources := registry.Lookup(group.Key)
		if len(sources) == 0 {
			continue
		}
		consumed = append(consumed, group.Key)
		for _, source := range sources {
			for _, locator := range group.Values {
				if locator == "" {
					continue
				}
				tokens, err := source.ProvideArguments(locator)
				if err != nil {
					return nil, nil, fmt.Errorf("argument source --%s: %w", source.Key(), err)
				}
				batches = append(batches, tokens)
			}
		}
	}
	return batches, consumed, nil
}
