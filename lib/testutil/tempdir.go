// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteDocument writes content to a new file named name inside a
// per-test temporary directory and returns the file's path. The
// directory is removed when the test completes.
//
//	path := testutil.WriteDocument(t, "args.yaml", []byte("add: {}\n"))
func WriteDocument(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// WriteDocuments writes several files into one temporary directory and
// returns their paths keyed by name. Use it when a test needs documents
// that refer to each other by relative location.
func WriteDocuments(t *testing.T, files map[string][]byte) map[string]string {
	t.Helper()
	directory := t.TempDir()
	paths := make(map[string]string, len(files))
	for name, content := range files {
		path := filepath.Join(directory, name)
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		paths[name] = path
	}
	return paths
}
