// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"errors"
	"testing"

	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/tree"
)

func bindings() map[string]parser.Untyped {
	return map[string]parser.Untyped{
		"target": parser.Erase(parser.String()),
		"amount": parser.Erase(parser.IntBetween(1, 64)),
		"reason": parser.Erase(parser.Greedy()),
		"env":    parser.Erase(parser.Enum("dev", "prod")),
		"tag":    parser.Erase(parser.String()),
	}
}

func TestParse_FullGrammar(t *testing.T) {
	components, err := Parse(
		"give|g <target> <amount> [reason] --force|-f --env=<env> --tag=<tag>...",
		bindings(),
		WithDefault("reason", &tree.Default{Constant: "no reason"}),
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	kinds := []tree.Kind{tree.KindLiteral, tree.KindFlags, tree.KindArgument, tree.KindArgument, tree.KindArgument}
	if len(components) != len(kinds) {
		t.Fatalf("got %d components, want %d", len(components), len(kinds))
	}
	for i, kind := range kinds {
		if components[i].Kind != kind {
			t.Errorf("component %d kind = %v, want %v", i, components[i].Kind, kind)
		}
	}

	literal := components[0]
	if literal.Name != "give" || len(literal.Aliases) != 1 || literal.Aliases[0] != "g" {
		t.Errorf("literal = %q aliases %v", literal.Name, literal.Aliases)
	}

	set := components[1].Flags
	force, ok := set.Lookup("force")
	if !ok || force.HasValue() || len(force.Aliases) != 1 || force.Aliases[0] != "f" {
		t.Errorf("force spec = %+v, ok %v", force, ok)
	}
	env, ok := set.Lookup("env")
	if !ok || !env.HasValue() || env.Repeatable {
		t.Errorf("env spec = %+v, ok %v", env, ok)
	}
	tag, ok := set.Lookup("tag")
	if !ok || !tag.HasValue() || !tag.Repeatable {
		t.Errorf("tag spec = %+v, ok %v", tag, ok)
	}

	reason := components[4]
	if !reason.Optional || reason.Default == nil || reason.Default.Constant != "no reason" {
		t.Errorf("reason = %+v", reason)
	}
}

func TestParse_UnboundArgument(t *testing.T) {
	_, err := Parse("give <missing>", bindings())
	var grammarErr *Error
	if !errors.As(err, &grammarErr) {
		t.Fatalf("error = %v, want grammar.Error", err)
	}
	if grammarErr.Token != "<missing>" {
		t.Errorf("token = %q, want <missing>", grammarErr.Token)
	}
}

func TestParse_RequiredAfterOptional(t *testing.T) {
	_, err := Parse("give [reason] <target>", bindings())
	if err == nil {
		t.Fatal("required-after-optional accepted")
	}
}

func TestParse_MustStartWithLiteral(t *testing.T) {
	_, err := Parse("<target> give", bindings())
	if err == nil {
		t.Fatal("argument-first grammar accepted")
	}
}

func TestParse_LiteralAfterArgumentRejected(t *testing.T) {
	_, err := Parse("give <target> all", bindings())
	if err == nil {
		t.Fatal("literal after argument accepted")
	}
}

func TestCommand_Dispatches(t *testing.T) {
	ran := 0
	cmd, err := Command(
		"give|g <target> <amount> [reason] --force|-f",
		bindings(),
		func(ctx *parser.Context) error { ran++; return nil },
		WithDefault("reason", &tree.Default{Constant: "no reason"}),
	)
	if err != nil {
		t.Fatalf("command: %v", err)
	}

	tr := tree.New(tree.Config{})
	if err := tr.Register(cmd); err != nil {
		t.Fatalf("register: %v", err)
	}

	ctx := parser.NewContext(senderFunc("tester"))
	if err := tr.Dispatch(ctx, input.New("g Alice 5 --force")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if ran != 1 {
		t.Fatalf("handler ran %d times, want 1", ran)
	}
	if got := parser.MustGet[string](ctx, "reason"); got != "no reason" {
		t.Errorf("reason = %q, want default", got)
	}
}

type senderFunc string

func (s senderFunc) Name() string { return string(s) }
