// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest loads declarative command sets from YAML or JSONC
// files. A manifest pairs each command's grammar string with typed
// argument declarations; handlers stay in code and are attached by
// name at load time.
//
// The manifest file is the single source of truth for the command
// surface. Validation is fail-fast: a manifest with an unknown
// argument type, an unbound grammar reference, or a missing handler
// is rejected whole, never partially registered.
//
//	commands:
//	  - name: give
//	    grammar: "give|g <target> <amount> [reason] --force|-f"
//	    permission: demo.give
//	    arguments:
//	      target: {type: string}
//	      amount: {type: int, min: 1, max: 64}
//	      reason: {type: string, greedy: true, default: "no reason"}
//
// Files ending in .json or .jsonc are parsed as JSON with comments
// and trailing commas allowed; everything else is parsed as YAML.
package manifest
