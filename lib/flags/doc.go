// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package flags implements the in-command flag sub-grammar.
//
// Flags differ from positional components: a command line may
// interleave them with positional arguments in caller-chosen order,
// so they are recognized by a scan over the remaining input rather
// than by a slot in the component sequence. The scan finds
// flag-shaped tokens (--name, --name=value, -n, bundled presence
// aliases -abc), parses and removes each, and hands the residual
// tokens back for positional matching.
//
// Two scan modes exist: [Liberal] accepts flags anywhere in the
// scanned region; [StrictTrailing] requires all flags to follow the
// positional arguments.
//
// A presence flag records how many times it appeared; a value flag
// parses the following token (or quoted run) with its declared
// parser. The value token reaches the parser with quotes already
// stripped, so flags whose values may contain spaces declare a
// greedy string parser. Repeatable value flags accumulate an ordered list.
// Duplicating a non-repeatable flag, naming an unknown flag, or
// ending the input where a value was expected all fail the parse
// with a [ParseError].
package flags
