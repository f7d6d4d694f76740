// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package flags

import (
	"errors"
	"reflect"
	"testing"

	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/suggest"
)

type testSender struct{}

func (testSender) Name() string { return "tester" }

func newTestContext() *parser.Context {
	return parser.NewContext(testSender{})
}

// testSet declares the flags used across the parse tests:
//
//	--verbose / -v   presence, repeatable
//	--force / -f     presence
//	--silent / -s    presence
//	--tag / -t       value (string), repeatable
//	--mode / -m      value (enum)
func testSet(t *testing.T) *Set {
	t.Helper()
	set, err := NewSet(
		&Spec{Name: "verbose", Aliases: []string{"v"}, Repeatable: true},
		&Spec{Name: "force", Aliases: []string{"f"}},
		&Spec{Name: "silent", Aliases: []string{"s"}},
		&Spec{Name: "tag", Aliases: []string{"t"}, Parser: parser.Erase(parser.Greedy()), Repeatable: true},
		&Spec{Name: "mode", Aliases: []string{"m"}, Parser: parser.Erase(parser.Enum("fast", "slow"))},
	)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	return set
}

func TestParse_PresenceAndValue(t *testing.T) {
	ctx := newTestContext()
	set := testSet(t)

	residual, err := set.Parse(ctx, input.New("target --force --mode fast extra"), Liberal)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if residual != "target extra" {
		t.Errorf("residual = %q, want %q", residual, "target extra")
	}
	if Count(ctx, "force") != 1 {
		t.Errorf("force count = %d, want 1", Count(ctx, "force"))
	}
	mode, ok := Value[string](ctx, "mode")
	if !ok || mode != "fast" {
		t.Errorf("mode = (%q, %v), want (fast, true)", mode, ok)
	}
}

func TestParse_InlineValue(t *testing.T) {
	ctx := newTestContext()
	residual, err := testSet(t).Parse(ctx, input.New("--mode=slow rest"), Liberal)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if residual != "rest" {
		t.Errorf("residual = %q, want %q", residual, "rest")
	}
	if mode, _ := Value[string](ctx, "mode"); mode != "slow" {
		t.Errorf("mode = %q, want slow", mode)
	}
}

func TestParse_RepeatableValueAccumulation(t *testing.T) {
	ctx := newTestContext()
	if _, err := testSet(t).Parse(ctx, input.New("--tag one --tag two --tag three"), Liberal); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := Values[string](ctx, "tag")
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tag values = %v, want %v", got, want)
	}
}

func TestParse_RepeatablePresenceCount(t *testing.T) {
	// --verbose once plus a -vvv bundle: count 4.
	ctx := newTestContext()
	if _, err := testSet(t).Parse(ctx, input.New("--verbose -vvv"), Liberal); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := Count(ctx, "verbose"); got != 4 {
		t.Errorf("verbose count = %d, want 4", got)
	}
}

func TestParse_BundledAliases(t *testing.T) {
	ctx := newTestContext()
	if _, err := testSet(t).Parse(ctx, input.New("-fs"), Liberal); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if Count(ctx, "force") != 1 || Count(ctx, "silent") != 1 {
		t.Errorf("bundle -fs: force=%d silent=%d, want 1/1", Count(ctx, "force"), Count(ctx, "silent"))
	}

	// A value flag inside a bundle is an error.
	ctx = newTestContext()
	_, err := testSet(t).Parse(ctx, input.New("-fm"), Liberal)
	assertReason(t, err, ReasonBadValue)
}

func TestParse_LiberalReordering(t *testing.T) {
	// The same flags in different positions produce identical
	// context values and residuals.
	inputs := []string{
		"target --mode fast",
		"--mode fast target",
	}
	for _, raw := range inputs {
		ctx := newTestContext()
		residual, err := testSet(t).Parse(ctx, input.New(raw), Liberal)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		if residual != "target" {
			t.Errorf("Parse(%q) residual = %q, want %q", raw, residual, "target")
		}
		if mode, _ := Value[string](ctx, "mode"); mode != "fast" {
			t.Errorf("Parse(%q) mode = %q, want fast", raw, mode)
		}
	}
}

func TestParse_StrictTrailing(t *testing.T) {
	// Flags after positionals: fine.
	ctx := newTestContext()
	residual, err := testSet(t).Parse(ctx, input.New("target --force"), StrictTrailing)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if residual != "target" {
		t.Errorf("residual = %q, want %q", residual, "target")
	}

	// A positional after a flag: rejected.
	ctx = newTestContext()
	_, err = testSet(t).Parse(ctx, input.New("--force target"), StrictTrailing)
	assertReason(t, err, ReasonMisplaced)
}

func TestParse_DuplicateNonRepeatable(t *testing.T) {
	ctx := newTestContext()
	_, err := testSet(t).Parse(ctx, input.New("--force --force"), Liberal)
	assertReason(t, err, ReasonDuplicate)

	ctx = newTestContext()
	_, err = testSet(t).Parse(ctx, input.New("--mode fast -m slow"), Liberal)
	assertReason(t, err, ReasonDuplicate)
}

func TestParse_UnknownFlagWithHint(t *testing.T) {
	ctx := newTestContext()
	_, err := testSet(t).Parse(ctx, input.New("--forec"), Liberal)
	assertReason(t, err, ReasonUnknown)

	var parseError *ParseError
	errors.As(err, &parseError)
	if parseError.Hint != "--force" {
		t.Errorf("hint = %q, want %q", parseError.Hint, "--force")
	}
}

func TestParse_MissingValue(t *testing.T) {
	ctx := newTestContext()
	_, err := testSet(t).Parse(ctx, input.New("--mode"), Liberal)
	assertReason(t, err, ReasonMissingValue)
}

func TestParse_BadValue(t *testing.T) {
	ctx := newTestContext()
	_, err := testSet(t).Parse(ctx, input.New("--mode sideways"), Liberal)
	assertReason(t, err, ReasonBadValue)
}

func TestParse_NegativeNumberIsPositional(t *testing.T) {
	ctx := newTestContext()
	residual, err := testSet(t).Parse(ctx, input.New("-5 --force"), Liberal)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if residual != "-5" {
		t.Errorf("residual = %q, want %q", residual, "-5")
	}
}

func TestParse_QuotedValue(t *testing.T) {
	ctx := newTestContext()
	if _, err := testSet(t).Parse(ctx, input.New(`--tag "two words"`), Liberal); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := Values[string](ctx, "tag")
	if len(got) != 1 || got[0] != "two words" {
		t.Errorf("tag values = %v, want [two words]", got)
	}
}

func TestParse_QuotedValueNonGreedyParsers(t *testing.T) {
	// A quoted run is a single value unit for every parser kind, not
	// just greedy ones.
	set, err := NewSet(
		&Spec{Name: "msg", Aliases: []string{"m"}, Parser: parser.Erase(parser.Quoted())},
		&Spec{Name: "title", Parser: parser.Erase(parser.String())},
		&Spec{Name: "mode", Parser: parser.Erase(parser.Enum("fast", "slow"))},
	)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	ctx := newTestContext()
	residual, err := set.Parse(ctx, input.New(`target --msg "two words"`), Liberal)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if residual != "target" {
		t.Errorf("residual = %q, want %q", residual, "target")
	}
	if msg, _ := Value[string](ctx, "msg"); msg != "two words" {
		t.Errorf("msg = %q, want %q", msg, "two words")
	}

	ctx = newTestContext()
	if _, err := set.Parse(ctx, input.New(`--title "two words"`), Liberal); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if title, _ := Value[string](ctx, "title"); title != "two words" {
		t.Errorf("title = %q, want %q", title, "two words")
	}

	ctx = newTestContext()
	if _, err := set.Parse(ctx, input.New(`--mode "fast"`), Liberal); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if mode, _ := Value[string](ctx, "mode"); mode != "fast" {
		t.Errorf("mode = %q, want fast", mode)
	}
}

func TestParse_ResidualPreservesQuoting(t *testing.T) {
	// Positional text survives the scan verbatim, quoting included,
	// whether or not any flag tokens appear.
	ctx := newTestContext()
	residual, err := testSet(t).Parse(ctx, input.New(`say "two words"`), Liberal)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if residual != `say "two words"` {
		t.Errorf("residual = %q, want %q", residual, `say "two words"`)
	}

	ctx = newTestContext()
	residual, err = testSet(t).Parse(ctx, input.New(`say --force "two words" trailing`), Liberal)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if residual != `say "two words" trailing` {
		t.Errorf("residual = %q, want %q", residual, `say "two words" trailing`)
	}
	if Count(ctx, "force") != 1 {
		t.Errorf("force count = %d, want 1", Count(ctx, "force"))
	}
}

func TestSuggestions_LongNames(t *testing.T) {
	ctx := newTestContext()
	got := suggest.Texts(testSet(t).Suggestions(ctx, input.New("--")))
	want := []string{"--verbose", "--force", "--silent", "--tag", "--mode"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions = %v, want %v", got, want)
	}
}

func TestSuggestions_UsedFlagsExcluded(t *testing.T) {
	// --force already given and not repeatable; --verbose repeatable
	// stays available.
	ctx := newTestContext()
	got := suggest.Texts(testSet(t).Suggestions(ctx, input.New("--force --verbose --")))
	for _, text := range got {
		if text == "--force --verbose --force" {
			t.Errorf("non-repeatable used flag still suggested: %v", got)
		}
	}
	found := false
	for _, text := range got {
		if text == "--force --verbose --verbose" {
			found = true
		}
	}
	if !found {
		t.Errorf("repeatable flag missing from suggestions: %v", got)
	}
}

func TestSuggestions_ValueCompletion(t *testing.T) {
	ctx := newTestContext()
	got := suggest.Texts(testSet(t).Suggestions(ctx, input.New("--mode ")))
	want := []string{"--mode fast", "--mode slow"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions = %v, want %v", got, want)
	}
}

func TestSuggestions_ShortForm(t *testing.T) {
	ctx := newTestContext()
	got := suggest.Texts(testSet(t).Suggestions(ctx, input.New("-")))
	containsShort := false
	for _, text := range got {
		if text == "-v" {
			containsShort = true
		}
	}
	if !containsShort {
		t.Errorf("short aliases missing for single-dash partial: %v", got)
	}
}

func assertReason(t *testing.T, err error, want Reason) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a flag parse error")
	}
	var parseError *ParseError
	if !errors.As(err, &parseError) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if parseError.Reason != want {
		t.Fatalf("reason = %v, want %v", parseError.Reason, want)
	}
}
