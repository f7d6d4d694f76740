// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"strings"

	"github.com/parlance-dev/parlance/lib/flags"
	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/suggest"
)

// Suggest computes completions for a partial command line. The walk
// mirrors Match over the complete tokens, then collects candidates
// from the components reachable at the stopping point: literal names
// the sender may use, argument providers, and flag names or values
// when a flag set is in scope. Candidates are prefixed with the text
// already consumed and run through the tree's processor chain, so the
// result is a set of full replacements for the unconsumed input.
func (t *Tree) Suggest(ctx *parser.Context, in *input.CommandInput) []suggest.Suggestion {
	t.frozen.Store(true)
	ctx.SetRawInput(in.Input())

	in.SkipWhitespace(-1)
	start := in.Copy()

	current := t.root
	var activeFlags *flags.Set
	usedFlags := make(map[string]bool)
	for {
		if current.flagSet != nil {
			activeFlags = current.flagSet
		}

		in.SkipWhitespacePreserveSingle()
		token := in.PeekString()
		if token == "" {
			// Input exhausted, or only the trailing separator remains:
			// the next component starts fresh.
			return t.finish(ctx, start, in, t.candidates(ctx, in, current, activeFlags, usedFlags, ""))
		}
		tokenComplete := len(token) < in.RemainingLength()
		if !tokenComplete {
			return t.finish(ctx, start, in, t.candidates(ctx, in, current, activeFlags, usedFlags, token))
		}

		if activeFlags != nil && flags.IsFlagToken(token) {
			if stop, candidates := t.walkFlag(ctx, in, activeFlags, usedFlags, token); stop {
				return t.finish(ctx, start, in, candidates)
			}
			continue
		}

		if child, ok := current.literalIndex[token]; ok {
			// Separators stay in place; the loop-top skip owns them and
			// preserves a trailing one.
			in.ReadStringPreserveWhitespace()
			current = child
			continue
		}

		if next := t.walkArgument(ctx, in, current); next != nil {
			current = next
			continue
		}

		// The complete token satisfies no child. Completions of the
		// first argument child may still repair it; literal children
		// are offered for prefix filtering.
		return t.finish(ctx, start, in, t.candidates(ctx, in, current, activeFlags, usedFlags, token))
	}
}

// walkArgument advances over a complete token accepted by an
// argument child, restoring the cursor when every sibling rejects
// it.
func (t *Tree) walkArgument(ctx *parser.Context, in *input.CommandInput, current *node) *node {
	for _, child := range current.argumentOrder {
		checkpoint := in.Cursor()
		value, err := child.component.Parser.ParseUntyped(ctx, in)
		if err != nil {
			in.Restore(checkpoint)
			continue
		}
		ctx.Set(child.component.Name, value)
		return child
	}
	return nil
}

// walkFlag consumes one complete flag token and, for a value flag
// without an inline value, its value token. It stops the walk when
// the value is still being typed, returning the value completions.
func (t *Tree) walkFlag(ctx *parser.Context, in *input.CommandInput, set *flags.Set, used map[string]bool, token string) (bool, []suggest.Suggestion) {
	in.ReadStringPreserveWhitespace()
	spec, ok := set.SpecFor(token)
	if !ok {
		// Unknown flag token; keep walking so later components can
		// still complete.
		return false, nil
	}
	used[spec.Name] = true
	if !spec.HasValue() || strings.Contains(token, "=") {
		return false, nil
	}

	in.SkipWhitespacePreserveSingle()
	value := in.PeekString()
	if value == "" || len(value) >= in.RemainingLength() {
		return true, flagValueCandidates(ctx, in, spec)
	}
	in.ReadStringPreserveWhitespace()
	return false, nil
}

// candidates collects completion texts for the components reachable
// at current. partial is the token being typed, used only to decide
// whether short flag forms apply; prefix filtering itself happens in
// the processor chain.
func (t *Tree) candidates(ctx *parser.Context, in *input.CommandInput, current *node, activeFlags *flags.Set, usedFlags map[string]bool, partial string) []suggest.Suggestion {
	var out []suggest.Suggestion

	for _, child := range current.literalOrder {
		if !child.anyPermitted(ctx.Sender(), t.config.Permissions) {
			continue
		}
		out = append(out, suggest.Of(child.component.Name))
	}

	for _, child := range current.argumentOrder {
		if !child.anyPermitted(ctx.Sender(), t.config.Permissions) {
			continue
		}
		out = append(out, providerCandidates(ctx, in, child.component)...)
	}

	if activeFlags != nil {
		shortForm := strings.HasPrefix(partial, "-") && !strings.HasPrefix(partial, "--")
		for _, spec := range activeFlags.Specs() {
			if usedFlags[spec.Name] && !spec.Repeatable {
				continue
			}
			out = append(out, suggest.Of("--"+spec.Name))
			if shortForm {
				for _, alias := range spec.Aliases {
					out = append(out, suggest.Of("-"+alias))
				}
			}
		}
	}

	return out
}

// providerCandidates queries an argument component's suggestion
// source: the explicit override, or the parser itself when it offers
// one.
func providerCandidates(ctx *parser.Context, in *input.CommandInput, component *Component) []suggest.Suggestion {
	var provider parser.SuggestionProvider = component.Suggest
	if provider == nil {
		provider = component.Parser
	}
	if provider == nil {
		return nil
	}
	checkpoint := in.Cursor()
	candidates := provider.Suggestions(ctx, in)
	in.Restore(checkpoint)
	return candidates
}

func flagValueCandidates(ctx *parser.Context, in *input.CommandInput, spec *flags.Spec) []suggest.Suggestion {
	var provider parser.SuggestionProvider
	if spec.Suggest != nil {
		provider = spec.Suggest
	} else {
		provider = spec.Parser
	}
	if provider == nil {
		return nil
	}
	checkpoint := in.Cursor()
	candidates := provider.Suggestions(ctx, in)
	in.Restore(checkpoint)
	return candidates
}

// finish prefixes candidates with the complete tokens the walk
// consumed and applies the processor chain against the full
// unconsumed tail.
func (t *Tree) finish(ctx *parser.Context, start, current *input.CommandInput, candidates []suggest.Suggestion) []suggest.Suggestion {
	consumed, err := current.Difference(start)
	if err == nil && consumed != "" {
		prefix := consumed
		if !strings.HasSuffix(prefix, " ") {
			prefix += " "
		}
		prefixed := make([]suggest.Suggestion, len(candidates))
		for i, candidate := range candidates {
			prefixed[i] = suggest.Of(prefix + candidate.Text)
		}
		candidates = prefixed
	}
	return t.config.Suggestions.Process(candidates, start.Remaining())
}
