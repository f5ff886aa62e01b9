// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR configuration shared by argument
// document decoding and by tests that produce CBOR documents.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// decoder turns any-typed maps into map[any]any and rejects duplicate
// map keys.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For CBOR sequences (several items back to back):
//
//	decoder := codec.NewDecoder(reader)
//	for {
//	    var item any
//	    if err := decoder.Decode(&item); err == io.EOF {
//	        break
//	    }
//	}
package codec
