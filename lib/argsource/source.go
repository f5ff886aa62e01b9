// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultYAMLKey is the key [NewYAMLSource] uses when given an empty key.
const DefaultYAMLKey = "yaml"

// ArgumentSource converts an external document into command-line tokens.
type ArgumentSource interface {
	// Key names the flag that selects this source, without dashes.
	// Compared case-insensitively.
	Key() string

	// ProvideArguments loads the document at locator and returns its
	// tokens. A malformed document fails with a *FormatError.
	ProvideArguments(locator string) ([]string, error)
}

// Source is the document-backed ArgumentSource.
type Source struct {
	key    string
	format Format
	loader *Loader
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithLoader sets the Loader a Source reads locators with.
func WithLoader(loader *Loader) SourceOption {
	return func(source *Source) {
		source.loader = loader
	}
}

// NewSource returns a Source for key decoding documents as format.
func NewSource(key string, format Format, options ...SourceOption) *Source {
	source := &Source{key: key, format: format}
	for _, option := range options {
		option(source)
	}
	if source.loader == nil {
		source.loader = NewLoader()
	}
	return source
}

// NewYAMLSource returns a YAML Source. An empty key selects
// [DefaultYAMLKey].
func NewYAMLSource(key string, options ...SourceOption) *Source {
	if key == "" {
		key = DefaultYAMLKey
	}
	return NewSource(key, FormatYAML, options...)
}

func (s *Source) Key() string {
	return s.key
}

// Format returns the configured format, FormatAuto for sources that infer
// it per locator.
func (s *Source) Format() Format {
	return s.format
}

func (s *Source) ProvideArguments(locator string) ([]string, error) {
	document, err := s.loader.Load(locator)
	if err != nil {
		return nil, err
	}

	format := s.format
	if format == FormatAuto {
		inferred, ok := FormatForName(document.Name)
		if !ok {
			return nil, &FormatError{
				Locator: locator,
				Err:     fmt.Errorf("%w: cannot infer format of %q", ErrUnknownFormat, document.Name),
			}
		}
		format = inferred
	}

	documents, err := Decode(format, document.Data)
	if err != nil {
		return nil, annotate(err, locator, format)
	}

	tokens, err := FlattenDocuments(documents)
	if err != nil {
		return nil, annotate(err, locator, format)
	}
	return tokens, nil
}

// Registry holds sources in registration order, indexed by lower-cased
// key. Several sources may share a key; all of them are consulted.
type Registry struct {
	sources []ArgumentSource
	byKey   map[string][]ArgumentSource
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string][]ArgumentSource)}
}

// Register appends sources to the registry.
func (r *Registry) Register(sources ...ArgumentSource) error {
	for _, source := range sources {
		if source == nil {
			return errors.New("argument source cannot be nil")
		}
		key := source.Key()
		if key == "" {
			return errors.New("argument source key cannot be empty")
		}
		if strings.HasPrefix(key, "-") {
			return fmt.Errorf("argument source key %q must not include dashes", key)
		}
		normalized := strings.ToLower(key)
		r.sources = append(r.sources, source)
		r.byKey[normalized] = append(r.byKey[normalized], source)
	}
	return nil
}

// Lookup returns the sources registered under key, compared
// case-insensitively, in registration order.
func (r *Registry) Lookup(key string) []ArgumentSource {
	if r == nil {
		return nil
	}
	return r.byKey[strings.ToLower(key)]
}

// Sources returns every registered source in registration order.
func (r *Registry) Sources() []ArgumentSource {
	if r == nil {
		return nil
	}
	return append([]ArgumentSource(nil), r.sources...)
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sources)
}
