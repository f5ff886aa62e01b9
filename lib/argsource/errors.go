// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDocumentCount reports a source holding zero or several documents.
	ErrDocumentCount = errors.New("expected exactly one document")

	// ErrRootNotMapping reports a document whose root is a scalar or a
	// sequence.
	ErrRootNotMapping = errors.New("root must be a mapping")

	// ErrNonScalarKey reports a mapping key that is itself a mapping or a
	// sequence.
	ErrNonScalarKey = errors.New("non-scalar key")

	// ErrEmptyKey reports a mapping key with empty text.
	ErrEmptyKey = errors.New("empty key")

	// ErrUnsupportedValue reports a decoded value with no token form
	// (binary strings, unknown tags, runaway nesting).
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrUnknownFormat reports a locator whose format cannot be inferred.
	ErrUnknownFormat = errors.New("unknown document format")
)

// FormatError is returned when a document cannot be turned into tokens.
// Err is one of the sentinel errors above or a wrapped decoder error.
type FormatError struct {
	// Locator is the value passed to ProvideArguments. Empty when the
	// error came from flattening an in-memory document.
	Locator string

	// Format is the decoder in use. FormatAuto when not yet known.
	Format Format

	// Path is the dotted key path to the offending entry ("add.package"),
	// with [n] for sequence elements. Empty for document-level errors.
	Path string

	// Line is the 1-based source line when the decoder reports one.
	Line int

	Err error
}

func (e *FormatError) Error() string {
	var builder strings.Builder
	builder.WriteString("invalid argument document")
	if e.Locator != "" {
		fmt.Fprintf(&builder, " %s", e.Locator)
	}
	if e.Format != FormatAuto {
		fmt.Fprintf(&builder, " (%s)", e.Format)
	}
	if e.Path != "" {
		fmt.Fprintf(&builder, " at %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&builder, " line %d", e.Line)
	}
	fmt.Fprintf(&builder, ": %v", e.Err)
	return builder.String()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// annotate fills in the locator and format on a FormatError produced
// below ProvideArguments. Other errors pass through unchanged.
func annotate(err error, locator string, format Format) error {
	var formatError *FormatError
	if errors.As(err, &formatError) {
		if formatError.Locator == "" {
			formatError.Locator = locator
		}
		if formatError.Format == FormatAuto {
			formatError.Format = format
		}
	}
	return err
}
