// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package suggest defines completion candidates and the processor
// chain that filters raw candidates against the partially-typed
// input.
//
// The tree walk produces raw [Suggestion] values; a [Chain] then
// filters and normalizes them before they are returned to the front
// end. The default chain keeps candidates whose lowercased form
// extends the unconsumed tail of input token by token, so
// multi-word candidates survive as long as the typed words match.
package suggest
