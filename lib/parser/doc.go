// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package parser defines the typed argument-parser contract and the
// per-dispatch context that parsed values flow through.
//
// An [ArgumentParser] consumes a prefix of a command input and yields
// a [Result]: either a typed value or a failure. Parsers consume only
// what they successfully parse — on failure the cursor stays at the
// failing token so the engine can attribute the error and suggestion
// providers can complete it.
//
// The package provides three layers:
//
//   - The generic contracts: [ArgumentParser], [Result],
//     [SuggestionProvider], and [Untyped] (the type-erased form the
//     command tree stores).
//
//   - Standard parsers for strings, integers, floats, booleans,
//     durations, enums, and UUIDs.
//
//   - Composition: [Aggregate] folds an ordered list of named
//     sub-parsers into one typed value through a mapper, and
//     [Future] models parse steps that suspend on external I/O while
//     preserving sequential ordering.
//
// A [Context] is created per dispatch and never shared between
// dispatches; it carries the sender, the parsed values keyed by
// component name, and per-component parse bookkeeping
// ([ParsingRecord]).
package parser
