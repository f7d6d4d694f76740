// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package input provides the cursor-based reader that all command
// parsing goes through.
//
// A [CommandInput] wraps an immutable string with a cursor. Parsers
// read tokens through the cursor; the engine uses [CommandInput.Copy]
// and [CommandInput.Difference] to record exactly what each parser
// consumed, and [CommandInput.Restore] to rewind to a saved
// checkpoint during suggestion trials. The cursor only ever moves
// forward within a single parse attempt; rewinding is an explicit
// restore, never a side effect of a failed read.
//
// Validated probes (IsValidInt, IsValidFloat, IsValidBool) test the
// next token without moving the cursor. The matching reads consume
// exactly the token that the probe validated, so a probe-then-read
// pair never leaves the cursor in the middle of a token.
package input
