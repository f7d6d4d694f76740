// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package tree implements the command tree: the trie of literal,
// argument, and flag components that matches a token stream against
// registered commands and computes completions for partial input.
//
// Commands register as root-to-leaf component sequences; sequences
// sharing a prefix share nodes. Matching consults children in a
// deterministic priority order: an exact literal match (including
// aliases) always beats an argument parser, and viable argument
// siblings are tried in registration order with the first success
// winning. Both policies are deliberate: the literal priority keeps
// "foo bar" from being swallowed by "foo <x>", and the
// registration-order tie-break is preserved as documented behavior
// because registrants may depend on it, surprising as it is for
// ambiguous grammars.
//
// Matching is greedy: once a literal child is chosen the walk never
// retries its siblings, even if deeper matching later fails. The
// resulting error is attributed to the deepest failure point.
//
// A tree freezes on first dispatch. After that it is immutable and
// safely shared by any number of concurrent dispatches and
// suggestion computations without locking.
package tree
