// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package grammar compiles a compact textual command grammar into
// tree components, so command sets can be declared in manifests or
// one-line registrations instead of builder chains.
//
// The grammar is a space-separated token sequence:
//
//	give|g <target> <amount> [reason] --force|-f --env=<env> --tag=<tag>...
//
// A bare word is a literal, with aliases split on "|". <name> is a
// required argument and [name] an optional one; both must be bound to
// a parser by name. --name declares a presence flag (aliases after
// "|", written with a single dash), --name=<binding> a value flag,
// and a "..." suffix makes a flag repeatable. Flags may appear
// anywhere in the string; they are collected into one set attached
// after the last literal, which is where scanning starts during
// dispatch.
package grammar
