// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package suggest

import "strings"

// Suggestion is a single completion candidate. Two suggestions are
// equal when their text is equal; deduplication relies on this.
type Suggestion struct {
	Text string
}

// Of builds a Suggestion from text.
func Of(text string) Suggestion { return Suggestion{Text: text} }

// Texts extracts the plain strings from a suggestion list.
func Texts(suggestions []Suggestion) []string {
	texts := make([]string, len(suggestions))
	for i, suggestion := range suggestions {
		texts[i] = suggestion.Text
	}
	return texts
}

// FromTexts wraps plain strings as suggestions.
func FromTexts(texts []string) []Suggestion {
	suggestions := make([]Suggestion, len(texts))
	for i, text := range texts {
		suggestions[i] = Suggestion{Text: text}
	}
	return suggestions
}

// Processor transforms a candidate list given the unconsumed tail of
// input. Processors run in order; each receives the previous
// processor's output.
type Processor interface {
	Process(candidates []Suggestion, remaining string) []Suggestion
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(candidates []Suggestion, remaining string) []Suggestion

// Process calls the function.
func (f ProcessorFunc) Process(candidates []Suggestion, remaining string) []Suggestion {
	return f(candidates, remaining)
}

// Chain applies a sequence of processors to raw candidates.
type Chain struct {
	processors []Processor

	// blankWhenEmpty, when set, makes the chain return a single
	// empty-string suggestion instead of an empty list. Some front
	// ends treat an empty completion response as "no completion
	// support" and fall back to their own behavior; the blank keeps
	// them stable.
	blankWhenEmpty bool
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// BlankWhenEmpty makes the chain emit [""] instead of an empty list
// when filtering removes every candidate.
func BlankWhenEmpty() ChainOption {
	return func(chain *Chain) { chain.blankWhenEmpty = true }
}

// WithProcessor appends an extra processor after the defaults.
func WithProcessor(processor Processor) ChainOption {
	return func(chain *Chain) { chain.processors = append(chain.processors, processor) }
}

// NewChain builds the default processor chain: token-prefix filtering
// followed by deduplication, plus any options.
func NewChain(options ...ChainOption) *Chain {
	chain := &Chain{
		processors: []Processor{
			ProcessorFunc(FilterTokenPrefix),
			ProcessorFunc(Deduplicate),
		},
	}
	for _, option := range options {
		option(chain)
	}
	return chain
}

// Process runs the chain over candidates.
func (chain *Chain) Process(candidates []Suggestion, remaining string) []Suggestion {
	for _, processor := range chain.processors {
		candidates = processor.Process(candidates, remaining)
	}
	if len(candidates) == 0 && chain.blankWhenEmpty {
		return []Suggestion{{Text: ""}}
	}
	return candidates
}

// FilterTokenPrefix retains candidates that extend the remaining
// input, compared case-insensitively token by token: every complete
// token of the remaining input must match the candidate's token at
// the same position, and the final (partial) token must be a prefix
// of the candidate's corresponding token.
func FilterTokenPrefix(candidates []Suggestion, remaining string) []Suggestion {
	typed := strings.Fields(strings.ToLower(remaining))
	if len(typed) == 0 {
		return candidates
	}
	lastIsPartial := !strings.HasSuffix(remaining, " ")

	var kept []Suggestion
	for _, candidate := range candidates {
		words := strings.Fields(strings.ToLower(candidate.Text))
		if tokensMatch(typed, words, lastIsPartial) {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// tokensMatch reports whether the typed tokens are compatible with the
// candidate tokens.
func tokensMatch(typed, candidate []string, lastIsPartial bool) bool {
	if len(candidate) < len(typed) {
		return false
	}
	for i, token := range typed {
		if i == len(typed)-1 && lastIsPartial {
			return strings.HasPrefix(candidate[i], token)
		}
		if candidate[i] != token {
			return false
		}
	}
	return true
}

// Deduplicate removes duplicate suggestions, preserving first-seen
// order.
func Deduplicate(candidates []Suggestion, _ string) []Suggestion {
	seen := make(map[string]bool, len(candidates))
	var kept []Suggestion
	for _, candidate := range candidates {
		if seen[candidate.Text] {
			continue
		}
		seen[candidate.Text] = true
		kept = append(kept, candidate)
	}
	return kept
}
