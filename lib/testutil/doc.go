// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [WriteDocument] and [WriteDocuments] put argument documents on disk in
// a per-test temporary directory so that loader and source tests
// exercise real file reads.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
