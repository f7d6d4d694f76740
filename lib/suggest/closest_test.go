// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package suggest

import "testing"

func TestClosest(t *testing.T) {
	candidates := []string{"gamemode", "give", "teleport"}

	tests := []struct {
		unknown string
		want    string
	}{
		{"gvie", "give"},
		{"gamemdoe", "gamemode"},
		{"teleprot", "teleport"},
		{"zzzzzzzz", ""},
		{"give", "give"},
	}
	for _, test := range tests {
		if got := Closest(test.unknown, candidates); got != test.want {
			t.Errorf("Closest(%q) = %q, want %q", test.unknown, got, test.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flag", "flga", 2},
		{"same", "same", 0},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
