// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/parlance-dev/parlance/lib/manifest"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/tree"
)

// defaultManifest is the built-in command set used when no manifest
// file is given. It exercises literals with aliases, typed and
// optional arguments, and the flag grammar.
const defaultManifest = `
commands:
  - name: give
    grammar: "give|g <target> <amount> [reason] --force|-f --env=<env>"
    description: Give an amount to a player.
    permission: demo.give
    arguments:
      target: {type: string, suggest: [Alice, Bob, Carol]}
      amount: {type: int, min: 1, max: 64}
      reason: {type: string, greedy: true, default: "no reason"}
      env: {type: enum, options: [dev, prod]}
  - name: msg
    grammar: "msg|tell <target> <text>"
    description: Send a message.
    arguments:
      target: {type: string, suggest: [Alice, Bob, Carol]}
      text: {type: string, greedy: true}
  - name: wait
    grammar: "wait <delay>"
    description: Sleep for a duration.
    arguments:
      delay: {type: duration}
  - name: roll
    grammar: "roll [sides]"
    description: Roll a die.
    arguments:
      sides: {type: int, min: 2, max: 120, default: "6"}
  - name: broadcast
    grammar: "broadcast <text> --silent|-s"
    description: Send a message to everyone.
    permission: demo.admin
    arguments:
      text: {type: string, greedy: true}
`

// consoleSender is the sender identity used by the one-shot and shell
// front ends.
type consoleSender string

func (s consoleSender) Name() string { return string(s) }

// demoPermissions grants everything to the sender named "admin" and
// all non-admin nodes to everyone else.
func demoPermissions(sender parser.Sender, permission string) bool {
	if sender.Name() == "admin" {
		return true
	}
	return !strings.HasPrefix(permission, "demo.admin")
}

// demoHandlers writes command effects through print, which the shell
// redirects into its output log.
func demoHandlers(print func(format string, args ...any)) map[string]tree.Handler {
	return map[string]tree.Handler{
		"give": func(ctx *parser.Context) error {
			target := parser.MustGet[string](ctx, "target")
			amount := parser.MustGet[int64](ctx, "amount")
			reason := parser.MustGet[string](ctx, "reason")
			print("gave %d to %s (%s)", amount, target, reason)
			return nil
		},
		"msg": func(ctx *parser.Context) error {
			print("-> %s: %s",
				parser.MustGet[string](ctx, "target"),
				parser.MustGet[string](ctx, "text"))
			return nil
		},
		"wait": func(ctx *parser.Context) error {
			print("waited %v", parser.MustGet[time.Duration](ctx, "delay"))
			return nil
		},
		"roll": func(ctx *parser.Context) error {
			sides := parser.MustGet[int64](ctx, "sides")
			// The roll is deliberately deterministic so transcripts
			// are reproducible.
			print("rolled %d (d%d)", sides/2+1, sides)
			return nil
		},
		"broadcast": func(ctx *parser.Context) error {
			print("[broadcast] %s", parser.MustGet[string](ctx, "text"))
			return nil
		},
	}
}

// buildTree loads the manifest (the built-in one when path is empty)
// and registers the demo command set.
func buildTree(path string, print func(format string, args ...any)) (*tree.Tree, error) {
	var m *manifest.Manifest
	var err error
	if path == "" {
		m, err = manifest.ParseYAML([]byte(defaultManifest))
	} else {
		m, err = manifest.Load(path)
	}
	if err != nil {
		return nil, err
	}

	tr := tree.New(tree.Config{Permissions: demoPermissions})
	if err := m.Register(tr, demoHandlers(print)); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	return tr, nil
}
