// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/parlance-dev/parlance/lib/execute"
	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/tree"
)

const yamlManifest = `
commands:
  - name: give
    grammar: "give|g <target> <amount> [reason] --force|-f --env=<env>"
    description: Give an item to a player.
    permission: demo.give
    arguments:
      target: {type: string}
      amount: {type: int, min: 1, max: 64}
      reason: {type: string, greedy: true, default: "no reason"}
      env: {type: enum, options: [dev, prod]}
  - name: wait
    grammar: "wait <delay>"
    arguments:
      delay: {type: duration}
`

const jsoncManifest = `{
  // Commands for the demo shell.
  "commands": [
    {
      "name": "give",
      "grammar": "give <target> <amount>",
      "arguments": {
        "target": {"type": "string", "suggest": ["Alice", "Bob"]},
        "amount": {"type": "int", "min": 1, "max": 64},
      },
    },
  ],
}`

type testSender string

func (s testSender) Name() string { return string(s) }

func TestParseYAML(t *testing.T) {
	m, err := ParseYAML([]byte(yamlManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(m.Commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(m.Commands))
	}
	give := m.Commands[0]
	if give.Permission != "demo.give" {
		t.Errorf("permission = %q", give.Permission)
	}
	if give.Arguments["amount"].Min == nil || *give.Arguments["amount"].Min != 1 {
		t.Errorf("amount min = %v", give.Arguments["amount"].Min)
	}
}

func TestParseJSONC_CommentsAndTrailingCommas(t *testing.T) {
	m, err := ParseJSONC([]byte(jsoncManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(m.Commands) != 1 || m.Commands[0].Name != "give" {
		t.Fatalf("commands = %+v", m.Commands)
	}
	if got := m.Commands[0].Arguments["target"].Suggest; len(got) != 2 {
		t.Errorf("suggest = %v", got)
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
		want     string
	}{
		{
			name:     "unknown type",
			manifest: "commands:\n  - grammar: \"x <a>\"\n    arguments: {a: {type: blob}}\n",
			want:     "unknown type",
		},
		{
			name:     "enum without options",
			manifest: "commands:\n  - grammar: \"x <a>\"\n    arguments: {a: {type: enum}}\n",
			want:     "enum requires options",
		},
		{
			name:     "duplicate name",
			manifest: "commands:\n  - grammar: \"x\"\n  - grammar: \"x\"\n",
			want:     "duplicate name",
		},
		{
			name:     "missing grammar",
			manifest: "commands:\n  - name: x\n",
			want:     "grammar is required",
		},
		{
			name:     "greedy non-string",
			manifest: "commands:\n  - grammar: \"x <a>\"\n    arguments: {a: {type: int, greedy: true}}\n",
			want:     "greedy/quoted only apply to string",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.manifest))
			if err == nil {
				t.Fatal("invalid manifest accepted")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestBuild_MissingHandler(t *testing.T) {
	m, err := ParseYAML([]byte(yamlManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = m.Build(map[string]tree.Handler{
		"give": func(ctx *parser.Context) error { return nil },
	})
	if err == nil || !strings.Contains(err.Error(), `command "wait": no handler`) {
		t.Fatalf("error = %v, want missing handler for wait", err)
	}
}

func TestRegister_EndToEnd(t *testing.T) {
	m, err := ParseYAML([]byte(yamlManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var gotTarget string
	var gotAmount int64
	var gotReason string
	handlers := map[string]tree.Handler{
		"give": func(ctx *parser.Context) error {
			gotTarget = parser.MustGet[string](ctx, "target")
			gotAmount = parser.MustGet[int64](ctx, "amount")
			gotReason = parser.MustGet[string](ctx, "reason")
			return nil
		},
		"wait": func(ctx *parser.Context) error { return nil },
	}

	tr := tree.New(tree.Config{
		Permissions: func(sender parser.Sender, permission string) bool { return true },
	})
	if err := m.Register(tr, handlers); err != nil {
		t.Fatalf("register: %v", err)
	}

	coordinator := execute.NewInline(execute.Config{Tree: tr})
	future := coordinator.Dispatch(context.Background(), testSender("tester"), "g Alice 5 --force")
	outcome, err := future.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if outcome.Err != nil {
		t.Fatalf("dispatch: %v", outcome.Err)
	}
	if gotTarget != "Alice" || gotAmount != 5 || gotReason != "no reason" {
		t.Errorf("handler saw target %q amount %d reason %q", gotTarget, gotAmount, gotReason)
	}

	// The manifest range survives into dispatch.
	outcome, err = coordinator.Dispatch(context.Background(), testSender("tester"), "give Alice 99").Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	var argErr *tree.ArgumentError
	if !errors.As(outcome.Err, &argErr) || argErr.Component != "amount" {
		t.Fatalf("error = %v, want ArgumentError on amount", outcome.Err)
	}
}

func TestManifestSuggestions(t *testing.T) {
	m, err := ParseJSONC([]byte(jsoncManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tr := tree.New(tree.Config{})
	handlers := map[string]tree.Handler{
		"give": func(ctx *parser.Context) error { return nil },
	}
	if err := m.Register(tr, handlers); err != nil {
		t.Fatalf("register: %v", err)
	}

	ctx := parser.NewContext(testSender("tester"), parser.ForSuggestions())
	suggestions := tr.Suggest(ctx, input.New("give A"))
	if len(suggestions) != 1 || suggestions[0].Text != "give Alice" {
		t.Fatalf("suggestions = %v, want [give Alice]", suggestions)
	}
}
