// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

// suggestName returns the candidate closest to unknown, or "" if nothing
// is close enough. "Close enough" means an edit distance of at most 3,
// which catches common typos (transpositions, dropped characters, extra
// characters).
func suggestName(unknown string, candidates []string) string {
	bestName := ""
	bestDistance := 4 // threshold: only suggest if distance <= 3

	for _, candidate := range candidates {
		distance := levenshtein(unknown, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}

	return bestName
}

// suggestOption returns the closest option visible from command, with
// its dashes, or "".
func suggestOption(unknown string, command *Command) string {
	var names []string
	for ; command != nil; command = command.parent {
		for _, parameter := range command.parameters {
			if parameter.Kind == OptionParameter {
				names = append(names, parameter.Name)
			}
		}
	}
	best := suggestName(unknown, names)
	if best == "" {
		return ""
	}
	return "--" + best
}

// levenshtein computes the Levenshtein edit distance between two strings.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Single row of the distance matrix, updated in place.
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}

		previous = current
	}

	return previous[len(a)]
}
