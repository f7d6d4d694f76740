// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"testing"
	"time"

	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/suggest"
)

type testSender struct{ name string }

func (s testSender) Name() string { return s.name }

func newTestContext() *Context {
	return NewContext(testSender{name: "tester"})
}

func TestStringParser_SingleToken(t *testing.T) {
	ctx := newTestContext()
	in := input.New("hello world")

	result := String().Parse(ctx, in)
	if !result.Ok() {
		t.Fatalf("Parse: %v", result.Err())
	}
	if result.Value() != "hello" {
		t.Errorf("value = %q, want %q", result.Value(), "hello")
	}
	if in.Remaining() != "world" {
		t.Errorf("remaining = %q, want %q", in.Remaining(), "world")
	}
}

func TestStringParser_SingleTokenQuotedRun(t *testing.T) {
	// A double-quoted run is one token: the single-token mode consumes
	// it whole, quotes removed.
	ctx := newTestContext()
	in := input.New(`"hello world" rest`)

	result := String().Parse(ctx, in)
	if !result.Ok() {
		t.Fatalf("Parse: %v", result.Err())
	}
	if result.Value() != "hello world" {
		t.Errorf("value = %q, want %q", result.Value(), "hello world")
	}
	if in.Remaining() != "rest" {
		t.Errorf("remaining = %q, want %q", in.Remaining(), "rest")
	}
}

func TestStringParser_Greedy(t *testing.T) {
	ctx := newTestContext()
	in := input.New("all of this text")

	result := Greedy().Parse(ctx, in)
	if !result.Ok() {
		t.Fatalf("Parse: %v", result.Err())
	}
	if result.Value() != "all of this text" {
		t.Errorf("value = %q, want full input", result.Value())
	}
	if !in.IsEmpty() {
		t.Errorf("greedy parse left input: %q", in.Remaining())
	}
}

func TestStringParser_Quoted(t *testing.T) {
	ctx := newTestContext()
	in := input.New(`"hello world" rest`)

	result := Quoted().Parse(ctx, in)
	if !result.Ok() {
		t.Fatalf("Parse: %v", result.Err())
	}
	if result.Value() != "hello world" {
		t.Errorf("value = %q, want %q", result.Value(), "hello world")
	}
	if in.Remaining() != "rest" {
		t.Errorf("remaining = %q, want %q", in.Remaining(), "rest")
	}

	// Unquoted input falls back to a single token.
	in = input.New("plain rest")
	result = Quoted().Parse(ctx, in)
	if result.Value() != "plain" {
		t.Errorf("value = %q, want %q", result.Value(), "plain")
	}

	// Unterminated quote fails without moving the cursor.
	in = input.New(`"unterminated`)
	result = Quoted().Parse(ctx, in)
	if result.Ok() {
		t.Fatal("unterminated quote parsed successfully")
	}
	if in.Cursor() != 0 {
		t.Errorf("failed quoted parse moved cursor to %d", in.Cursor())
	}
}

func TestIntParser_Bounds(t *testing.T) {
	ctx := newTestContext()

	result := IntBetween(1, 10).Parse(ctx, input.New("5"))
	if !result.Ok() || result.Value() != 5 {
		t.Errorf("Parse(5) = (%d, %v), want (5, nil)", result.Value(), result.Err())
	}

	result = IntBetween(1, 10).Parse(ctx, input.New("11"))
	if result.Ok() {
		t.Error("Parse(11) with max 10 succeeded")
	}

	in := input.New("notanumber later")
	result = Int().Parse(ctx, in)
	if result.Ok() {
		t.Error("Parse(notanumber) succeeded")
	}
	if in.Cursor() != 0 {
		t.Errorf("failed int parse moved cursor to %d", in.Cursor())
	}
}

func TestFloatParser(t *testing.T) {
	ctx := newTestContext()
	result := Float().Parse(ctx, input.New("3.25"))
	if !result.Ok() || result.Value() != 3.25 {
		t.Errorf("Parse(3.25) = (%g, %v)", result.Value(), result.Err())
	}
	if result := FloatBetween(0, 1).Parse(ctx, input.New("1.5")); result.Ok() {
		t.Error("Parse(1.5) with max 1 succeeded")
	}
}

func TestBoolParser_Suggestions(t *testing.T) {
	ctx := newTestContext()
	got := suggest.Texts(Bool().Suggestions(ctx, input.New("")))
	if len(got) != 2 || got[0] != "true" || got[1] != "false" {
		t.Errorf("Suggestions = %v, want [true false]", got)
	}
}

func TestDurationParser(t *testing.T) {
	ctx := newTestContext()
	result := Duration().Parse(ctx, input.New("2h45m"))
	if !result.Ok() || result.Value() != 2*time.Hour+45*time.Minute {
		t.Errorf("Parse(2h45m) = (%v, %v)", result.Value(), result.Err())
	}
	if result := Duration().Parse(ctx, input.New("fast")); result.Ok() {
		t.Error("Parse(fast) succeeded")
	}
}

func TestEnumParser(t *testing.T) {
	ctx := newTestContext()
	survival := Enum("survival", "creative", "adventure")

	result := survival.Parse(ctx, input.New("CREATIVE"))
	if !result.Ok() || result.Value() != "creative" {
		t.Errorf("Parse(CREATIVE) = (%q, %v), want canonical form", result.Value(), result.Err())
	}

	in := input.New("flying")
	if result := survival.Parse(ctx, in); result.Ok() {
		t.Error("Parse(flying) succeeded")
	}
	if in.Cursor() != 0 {
		t.Errorf("failed enum parse moved cursor to %d", in.Cursor())
	}

	got := suggest.Texts(survival.Suggestions(ctx, input.New("")))
	if len(got) != 3 {
		t.Errorf("Suggestions = %v, want all options", got)
	}
}

func TestUUIDParser(t *testing.T) {
	ctx := newTestContext()
	result := UUID().Parse(ctx, input.New("123e4567-e89b-12d3-a456-426614174000"))
	if !result.Ok() {
		t.Fatalf("Parse: %v", result.Err())
	}
	if result.Value().String() != "123e4567-e89b-12d3-a456-426614174000" {
		t.Errorf("value = %v", result.Value())
	}
	if result := UUID().Parse(ctx, input.New("not-a-uuid")); result.Ok() {
		t.Error("Parse(not-a-uuid) succeeded")
	}
}

func TestErase_ForwardsSuggestions(t *testing.T) {
	ctx := newTestContext()
	erasedEnum := Erase(Enum("red", "green"))

	value, err := erasedEnum.ParseUntyped(ctx, input.New("red"))
	if err != nil {
		t.Fatalf("ParseUntyped: %v", err)
	}
	if value.(string) != "red" {
		t.Errorf("value = %v, want red", value)
	}

	got := suggest.Texts(erasedEnum.Suggestions(ctx, input.New("")))
	if len(got) != 2 {
		t.Errorf("erased Suggestions = %v, want enum options", got)
	}

	// A parser without a provider yields no suggestions.
	erasedInt := Erase(Int())
	if got := erasedInt.Suggestions(ctx, input.New("")); got != nil {
		t.Errorf("int Suggestions = %v, want nil", got)
	}
}

func TestRegistry_Inject(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("server", func(*Context) (any, error) { return "main", nil }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register("server", func(*Context) (any, error) { return nil, nil }); err == nil {
		t.Fatal("duplicate Register succeeded")
	}

	ctx := newTestContext()
	if err := registry.Inject(ctx); err != nil {
		t.Fatalf("Inject: %v", err)
	}
	if got := MustGet[string](ctx, "server"); got != "main" {
		t.Errorf("injected value = %q, want %q", got, "main")
	}
}
