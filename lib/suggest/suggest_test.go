// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package suggest

import (
	"reflect"
	"testing"
)

func TestFilterTokenPrefix_PartialToken(t *testing.T) {
	candidates := FromTexts([]string{"banana", "blueberry", "apple"})

	got := Texts(FilterTokenPrefix(candidates, "b"))
	want := []string{"banana", "blueberry"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterTokenPrefix(.., %q) = %v, want %v", "b", got, want)
	}
}

func TestFilterTokenPrefix_CaseInsensitive(t *testing.T) {
	candidates := FromTexts([]string{"Banana"})
	if got := FilterTokenPrefix(candidates, "bAn"); len(got) != 1 {
		t.Errorf("case-insensitive match failed: %v", Texts(got))
	}
}

func TestFilterTokenPrefix_MultiWord(t *testing.T) {
	candidates := FromTexts([]string{"Goofy banana", "Goofy apple", "Pluto banana"})

	// First token complete, second partial.
	got := Texts(FilterTokenPrefix(candidates, "Goofy b"))
	want := []string{"Goofy banana"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterTokenPrefix = %v, want %v", got, want)
	}

	// Trailing space: first token must match exactly, anything may follow.
	got = Texts(FilterTokenPrefix(candidates, "Goofy "))
	want = []string{"Goofy banana", "Goofy apple"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterTokenPrefix with trailing space = %v, want %v", got, want)
	}
}

func TestFilterTokenPrefix_EmptyRemaining_KeepsAll(t *testing.T) {
	candidates := FromTexts([]string{"a", "b"})
	if got := FilterTokenPrefix(candidates, ""); len(got) != 2 {
		t.Errorf("empty remaining filtered candidates: %v", Texts(got))
	}
}

func TestDeduplicate(t *testing.T) {
	candidates := FromTexts([]string{"a", "b", "a", "c", "b"})
	got := Texts(Deduplicate(candidates, ""))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Deduplicate = %v, want %v", got, want)
	}
}

func TestChain_BlankWhenEmpty(t *testing.T) {
	chain := NewChain(BlankWhenEmpty())
	got := chain.Process(FromTexts([]string{"banana"}), "zzz")
	if len(got) != 1 || got[0].Text != "" {
		t.Errorf("Process = %v, want single blank suggestion", Texts(got))
	}

	// Without the option, the empty list stays empty.
	plain := NewChain()
	if got := plain.Process(FromTexts([]string{"banana"}), "zzz"); len(got) != 0 {
		t.Errorf("Process without BlankWhenEmpty = %v, want empty", Texts(got))
	}
}

func TestChain_CustomProcessor(t *testing.T) {
	reverse := ProcessorFunc(func(candidates []Suggestion, _ string) []Suggestion {
		out := make([]Suggestion, len(candidates))
		for i, candidate := range candidates {
			out[len(candidates)-1-i] = candidate
		}
		return out
	})
	chain := NewChain(WithProcessor(reverse))
	got := Texts(chain.Process(FromTexts([]string{"aa", "ab"}), "a"))
	want := []string{"ab", "aa"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process = %v, want %v", got, want)
	}
}
