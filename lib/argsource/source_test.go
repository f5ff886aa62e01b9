// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/layerargs/lib/codec"
	"github.com/bureau-foundation/layerargs/lib/testutil"
)

func TestNewYAMLSourceDefaultKey(t *testing.T) {
	if got := NewYAMLSource("").Key(); got != DefaultYAMLKey {
		t.Errorf("Key() = %q, want %q", got, DefaultYAMLKey)
	}
	if got := NewYAMLSource("settings").Key(); got != "settings" {
		t.Errorf("Key() = %q, want %q", got, "settings")
	}
}

func TestSourceProvideArguments(t *testing.T) {
	cborDocument, err := codec.Marshal(map[string]any{
		"add": map[string]any{"package": map[string]any{"number": "5"}},
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	paths := testutil.WriteDocuments(t, map[string][]byte{
		"args.yaml":  []byte(sampleYAML),
		"args.yml":   []byte(sampleYAML),
		"args.jsonc": []byte(`{"add": {"package": {"number": "5"}}} // trailing comment`),
		"args.cbor":  cborDocument,
		"args.toml":  []byte("[add.package]\nnumber = \"5\"\n"),
	})

	source := NewSource("config", FormatAuto)
	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			tokens, err := source.ProvideArguments(path)
			if err != nil {
				t.Fatalf("ProvideArguments: %v", err)
			}
			if diff := cmp.Diff(sampleTokens, tokens); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSourceUnknownExtension(t *testing.T) {
	path := testutil.WriteDocument(t, "args.ini", []byte("[add]\n"))

	_, err := NewSource("config", FormatAuto).ProvideArguments(path)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("error = %v, want ErrUnknownFormat", err)
	}
	var formatError *FormatError
	if !errors.As(err, &formatError) || formatError.Locator != path {
		t.Errorf("error = %#v, want FormatError with locator %q", err, path)
	}
}

func TestSourceFormatErrorCarriesLocator(t *testing.T) {
	path := testutil.WriteDocument(t, "args.yaml", []byte("- add\n- package\n"))

	_, err := NewYAMLSource("").ProvideArguments(path)
	var formatError *FormatError
	if !errors.As(err, &formatError) {
		t.Fatalf("error = %v (%T), want *FormatError", err, err)
	}
	if formatError.Locator != path {
		t.Errorf("Locator = %q, want %q", formatError.Locator, path)
	}
	if formatError.Format != FormatYAML {
		t.Errorf("Format = %v, want yaml", formatError.Format)
	}
	if !errors.Is(err, ErrRootNotMapping) {
		t.Errorf("error = %v, want ErrRootNotMapping", err)
	}
}

// stubSource is an in-memory ArgumentSource for registry tests.
type stubSource struct {
	key string
}

func (s stubSource) Key() string { return s.key }

func (s stubSource) ProvideArguments(locator string) ([]string, error) {
	return []string{locator}, nil
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	registry := NewRegistry()
	first := stubSource{key: "Config"}
	second := stubSource{key: "config"}
	other := stubSource{key: "yaml"}
	if err := registry.Register(first, other, second); err != nil {
		t.Fatalf("Register: %v", err)
	}

	matches := registry.Lookup("CONFIG")
	if len(matches) != 2 || matches[0] != ArgumentSource(first) || matches[1] != ArgumentSource(second) {
		t.Errorf("Lookup(CONFIG) = %v, want [first second] in registration order", matches)
	}
	if len(registry.Lookup("json")) != 0 {
		t.Errorf("Lookup(json) = %v, want none", registry.Lookup("json"))
	}
	if registry.Len() != 3 {
		t.Errorf("Len() = %d, want 3", registry.Len())
	}
}

func TestRegistryRejectsInvalidSources(t *testing.T) {
	tests := []struct {
		name   string
		source ArgumentSource
	}{
		{name: "nil", source: nil},
		{name: "empty key", source: stubSource{key: ""}},
		{name: "dashed key", source: stubSource{key: "--config"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := NewRegistry().Register(test.source); err == nil {
				t.Error("Register succeeded, want error")
			}
		})
	}
}

func TestNilRegistry(t *testing.T) {
	var registry *Registry
	if registry.Lookup("yaml") != nil || registry.Sources() != nil || registry.Len() != 0 {
		t.Error("nil Registry should behave as empty")
	}
}
