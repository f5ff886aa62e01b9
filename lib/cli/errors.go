// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"strings"
)

// ParseError reports input the parser could not place in the command
// model: an unknown command, a surplus positional token, or an option
// missing its value.
type ParseError struct {
	// Command is the path of the command being parsed, empty at the
	// top level.
	Command string
	// Token is the offending input token.
	Token string
	// Message describes the problem.
	Message string
	// Suggestion is the closest valid name, if any.
	Suggestion string
}

func (e *ParseError) Error() string {
	var builder strings.Builder
	if e.Command != "" {
		builder.WriteString(e.Command)
		builder.WriteString(": ")
	}
	builder.WriteString(e.Message)
	if e.Token != "" {
		fmt.Fprintf(&builder, " %q", e.Token)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&builder, " (did you mean %q?)", e.Suggestion)
	}
	return builder.String()
}

// ValidationError reports bound settings that cannot run: values that
// do not convert to the field type, missing required arguments, or a
// failed Validate hook.
type ValidationError struct {
	Command  string
	Problems []string
	// Err is the hook error when the failure came from Validate.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
