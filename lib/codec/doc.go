// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration.
//
// Two serialization formats are used with a clear boundary: YAML and
// JSONC for human-edited manifests (lib/manifest), CBOR for machine
// artifacts such as dispatch trace files (lib/trace). This package
// provides the shared CBOR encoding and decoding modes so that every
// package encodes identically without duplicating configuration. The
// encoder uses Core Deterministic Encoding (RFC 8949 Â§4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes, which keeps
// trace files diffable and content-addressable.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
package codec
