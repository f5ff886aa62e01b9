// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/layerargs/lib/codec"
)

func decodeAndFlatten(t *testing.T, format Format, data []byte) ([]string, error) {
	t.Helper()
	documents, err := Decode(format, data)
	if err != nil {
		return nil, err
	}
	return FlattenDocuments(documents)
}

func TestDecodeYAML(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     []string
	}{
		{
			name:     "nested mapping",
			document: "a:\n  b: \"1\"\n",
			want:     []string{"a", "--b", "1"},
		},
		{
			name:     "scalar list",
			document: "v: [\"1\", \"2\"]\n",
			want:     []string{"--v", "1", "--v", "2"},
		},
		{
			name:     "list of mappings",
			document: "v:\n  - x: \"1\"\n",
			want:     []string{"v", "--x", "1"},
		},
		{
			name:     "empty values are boolean flags",
			document: "flag: \"\"\nother:\n",
			want:     []string{"--flag", "--other"},
		},
		{
			name: "package example",
			document: "add:\n" +
				"  package:\n" +
				"    package_name: Spectre.Console\n" +
				"    version: [\"0.1\", \"0.2\"]\n" +
				"    flag:\n" +
				"    number: 5\n",
			want: []string{
				"add", "package",
				"--package_name", "Spectre.Console",
				"--version", "0.1", "--version", "0.2",
				"--flag",
				"--number", "5",
			},
		},
		{
			name:     "aliases are resolved",
			document: "base: &shared\n  x: \"1\"\ncopy: *shared\n",
			want:     []string{"base", "--x", "1", "copy", "--x", "1"},
		},
		{
			name:     "scalar text is kept verbatim",
			document: "number: 0x10\nenabled: yes\n",
			want:     []string{"--number", "0x10", "--enabled", "yes"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := decodeAndFlatten(t, FormatYAML, []byte(test.document))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeYAMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     error
		wantLine int
	}{
		{name: "empty file", document: "", want: ErrDocumentCount},
		{name: "two documents", document: "a: \"1\"\n---\nb: \"2\"\n", want: ErrDocumentCount},
		{name: "scalar root", document: "hello\n", want: ErrRootNotMapping, wantLine: 1},
		{name: "sequence root", document: "- a\n- b\n", want: ErrRootNotMapping, wantLine: 1},
		{name: "explicit sequence key", document: "? [a, b]\n: value\n", want: ErrNonScalarKey, wantLine: 1},
		{name: "empty key", document: "add:\n  \"\": value\n", want: ErrEmptyKey, wantLine: 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := decodeAndFlatten(t, FormatYAML, []byte(test.document))
			if !errors.Is(err, test.want) {
				t.Fatalf("decode = %v, %v; want error %v", tokens, err, test.want)
			}
			var formatError *FormatError
			if !errors.As(err, &formatError) {
				t.Fatalf("error type = %T, want *FormatError", err)
			}
			if formatError.Line != test.wantLine {
				t.Errorf("Line = %d, want %d", formatError.Line, test.wantLine)
			}
		})
	}
}

func TestDecodeYAMLSyntaxError(t *testing.T) {
	_, err := Decode(FormatYAML, []byte("add: [unterminated\n"))
	var formatError *FormatError
	if !errors.As(err, &formatError) {
		t.Fatalf("error = %v (%T), want *FormatError", err, err)
	}
	if formatError.Format != FormatYAML {
		t.Errorf("Format = %v, want yaml", formatError.Format)
	}
}

func TestDecodeYAMLAliasExpansionLimit(t *testing.T) {
	// Each level references the previous one ten times, so seven levels
	// describe ten million mappings in a few hundred bytes.
	var builder strings.Builder
	builder.WriteString("a0: &a0 {x: \"1\"}\n")
	for level := 1; level <= 7; level++ {
		references := make([]string, 10)
		for i := range references {
			references[i] = fmt.Sprintf("*a%d", level-1)
		}
		fmt.Fprintf(&builder, "a%d: &a%d [%s]\n", level, level, strings.Join(references, ", "))
	}

	_, err := Decode(FormatYAML, []byte(builder.String()))
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Fatalf("Decode = %v, want ErrUnsupportedValue", err)
	}
	var formatError *FormatError
	if !errors.As(err, &formatError) {
		t.Fatalf("error type = %T, want *FormatError", err)
	}
}

func TestDecodeYAMLSharedAnchor(t *testing.T) {
	document := "defaults: &defaults {number: \"5\"}\nadd:\n  package: *defaults\n  reference: *defaults\n"
	tokens, err := decodeAndFlatten(t, FormatYAML, []byte(document))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"defaults", "--number", "5", "add", "package", "--number", "5", "reference", "--number", "5"}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     []string
	}{
		{
			name:     "member order is preserved",
			document: `{"zeta": "1", "alpha": {"beta": "2"}}`,
			want:     []string{"--zeta", "1", "alpha", "--beta", "2"},
		},
		{
			name: "comments and trailing commas",
			document: `{
				// subcommand
				"add": {
					"package": {
						"number": 5, /* inline */
						"version": ["1.0", "2.0",],
					},
				},
			}`,
			want: []string{"add", "package", "--number", "5", "--version", "1.0", "--version", "2.0"},
		},
		{
			name:     "null and booleans",
			document: `{"flag": null, "enabled": true, "disabled": false}`,
			want:     []string{"--flag", "--enabled", "true", "--disabled", "false"},
		},
		{
			name:     "numbers keep their written form",
			document: `{"rate": 1.50, "count": 1e3}`,
			want:     []string{"--rate", "1.50", "--count", "1e3"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := decodeAndFlatten(t, FormatJSON, []byte(test.document))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     error
	}{
		{name: "empty", document: "", want: ErrDocumentCount},
		{name: "comment only", document: "// nothing\n", want: ErrDocumentCount},
		{name: "two values", document: `{"a": "1"} {"b": "2"}`, want: ErrDocumentCount},
		{name: "array root", document: `["add"]`, want: ErrRootNotMapping},
		{name: "string root", document: `"add"`, want: ErrRootNotMapping},
		{name: "empty key", document: `{"": "x"}`, want: ErrEmptyKey},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := decodeAndFlatten(t, FormatJSON, []byte(test.document))
			if !errors.Is(err, test.want) {
				t.Fatalf("decode = %v, %v; want error %v", tokens, err, test.want)
			}
		})
	}

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(FormatJSON, []byte(`{"add": {"package": `))
		var formatError *FormatError
		if !errors.As(err, &formatError) {
			t.Fatalf("error = %v (%T), want *FormatError", err, err)
		}
	})
}

func TestDecodeCBOR(t *testing.T) {
	data, err := codec.Marshal(map[string]any{
		"add": map[string]any{
			"project": "app",
			"package": map[string]any{
				"number":  5,
				"flag":    nil,
				"version": []any{"1.0", "2.0"},
			},
		},
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := decodeAndFlatten(t, FormatCBOR, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Options of "add" come before its "package" subcommand; within each
	// group keys are sorted.
	want := []string{
		"add", "--project", "app",
		"package", "--flag", "--number", "5", "--version", "1.0", "--version", "2.0",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCBORErrors(t *testing.T) {
	single, err := codec.Marshal(map[string]any{"a": "1"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	array, err := codec.Marshal([]any{"a"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	binary, err := codec.Marshal(map[string]any{"a": []byte{1, 2}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: ErrDocumentCount},
		{name: "sequence of two", data: append(append([]byte{}, single...), single...), want: ErrDocumentCount},
		{name: "array root", data: array, want: ErrRootNotMapping},
		{name: "byte string value", data: binary, want: ErrUnsupportedValue},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := decodeAndFlatten(t, FormatCBOR, test.data)
			if !errors.Is(err, test.want) {
				t.Fatalf("decode = %v, %v; want error %v", tokens, err, test.want)
			}
		})
	}
}

func TestDecodeTOML(t *testing.T) {
	document := `
verbose = true

[add]
project = "app"

[add.package]
version = ["1.0", "2.0"]
number = 5
flag = ""
`
	got, err := decodeAndFlatten(t, FormatTOML, []byte(document))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []string{
		"--verbose", "true",
		"add", "--project", "app",
		"package", "--flag", "--number", "5", "--version", "1.0", "--version", "2.0",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTOMLErrors(t *testing.T) {
	t.Run("empty document has no tokens", func(t *testing.T) {
		got, err := decodeAndFlatten(t, FormatTOML, nil)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("tokens = %v, want none", got)
		}
	})

	t.Run("syntax error carries a line", func(t *testing.T) {
		_, err := Decode(FormatTOML, []byte("a = 1\nb = = 2\n"))
		var formatError *FormatError
		if !errors.As(err, &formatError) {
			t.Fatalf("error = %v (%T), want *FormatError", err, err)
		}
		if formatError.Line != 2 {
			t.Errorf("Line = %d, want 2", formatError.Line)
		}
	})
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"":      FormatAuto,
		"auto":  FormatAuto,
		"YAML":  FormatYAML,
		"yml":   FormatYAML,
		"jsonc": FormatJSON,
		"cbor":  FormatCBOR,
		"toml":  FormatTOML,
	} {
		got, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", name, got, want)
		}
	}

	if _, err := ParseFormat("ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(ini) error = %v, want ErrUnknownFormat", err)
	}
}
