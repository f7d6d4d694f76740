// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package trace persists dispatch traces: one record per dispatch,
// carrying the per-component parse spans accumulated in the dispatch
// context plus the outcome. Records are encoded with the
// deterministic CBOR configuration from lib/codec and written as a
// zstd-compressed stream, so trace files are compact, diffable for
// identical inputs, and readable without loading the whole file.
//
// Recorder plugs into the execute package as an Observer; front ends
// point it at a file and get a complete dispatch log for free.
package trace
