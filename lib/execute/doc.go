// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package execute runs matched commands. A coordinator accepts raw
// command lines, builds the per-dispatch context, injects registered
// context values, matches against the tree, and runs the handler,
// delivering the outcome through a Future exactly once.
//
// Two coordinators are provided. Inline runs the whole dispatch on
// the caller's goroutine; the returned future is already resolved.
// Pool runs dispatches on a fixed set of workers so slow handlers do
// not block the accepting goroutine; callers that do not care about
// the outcome discard the future and the result is dropped on
// resolution.
//
// Handler failures and handler panics are wrapped in HandlerError so
// callers can tell a command that matched but failed from input that
// never matched at all.
package execute
