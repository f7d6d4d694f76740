// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package flags

import (
	"strings"

	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/suggest"
)

// Suggestions completes the flag region of the input. The remaining
// input is treated as a run of flag tokens with the last token
// possibly partial; candidates are returned as completions of the
// whole region, mirroring aggregate prefixing, so the processor chain
// can filter them against the full unconsumed tail.
func (s *Set) Suggestions(ctx *parser.Context, in *input.CommandInput) []suggest.Suggestion {
	if s.Empty() {
		return nil
	}

	tokens := in.Tokenize()
	remaining := in.Remaining()

	partial := ""
	complete := tokens
	if len(tokens) > 0 && !strings.HasSuffix(remaining, " ") {
		partial = tokens[len(tokens)-1]
		complete = tokens[:len(tokens)-1]
	}

	used := make(map[*Spec]bool)
	var pendingValue *Spec
	for _, token := range complete {
		if pendingValue != nil {
			// Token consumed as the pending flag's value.
			pendingValue = nil
			continue
		}
		spec := s.specForToken(token)
		if spec == nil {
			continue
		}
		used[spec] = true
		if spec.HasValue() && !strings.Contains(token, "=") {
			pendingValue = spec
		}
	}

	prefix := strings.Join(complete, " ")
	if prefix != "" {
		prefix += " "
	}

	if pendingValue != nil {
		return prefixCandidates(prefix, s.valueCandidates(pendingValue, ctx, in))
	}
	return prefixCandidates(prefix, s.flagCandidates(used, partial))
}

// SpecFor resolves a complete flag token ("-v", "--name",
// "--name=value") to its spec.
func (s *Set) SpecFor(token string) (*Spec, bool) {
	if s.Empty() {
		return nil, false
	}
	spec := s.specForToken(token)
	return spec, spec != nil
}

// specForToken resolves a complete flag token to its spec, or nil.
func (s *Set) specForToken(token string) *Spec {
	if !IsFlagToken(token) {
		return nil
	}
	if strings.HasPrefix(token, "--") {
		name := token[2:]
		if index := strings.IndexByte(name, '='); index >= 0 {
			name = name[:index]
		}
		return s.byName[name]
	}
	if len(token) == 2 {
		return s.byAlias[token[1:]]
	}
	return nil
}

// flagCandidates offers the flags that may still appear. Long forms
// are always offered; short forms only when the user has typed a
// single dash.
func (s *Set) flagCandidates(used map[*Spec]bool, partial string) []suggest.Suggestion {
	shortForm := strings.HasPrefix(partial, "-") && !strings.HasPrefix(partial, "--")
	var candidates []suggest.Suggestion
	for _, spec := range s.specs {
		if used[spec] && !spec.Repeatable {
			continue
		}
		candidates = append(candidates, suggest.Of("--"+spec.Name))
		if shortForm {
			for _, alias := range spec.Aliases {
				candidates = append(candidates, suggest.Of("-"+alias))
			}
		}
	}
	return candidates
}

// valueCandidates completes the value of a flag, via the override
// provider or the value parser's own.
func (s *Set) valueCandidates(spec *Spec, ctx *parser.Context, in *input.CommandInput) []suggest.Suggestion {
	provider := spec.Suggest
	if provider == nil {
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

// prefixCandidates prepends the already-typed complete tokens.
func prefixCandidates(prefix string, candidates []suggest.Suggestion) []suggest.Suggestion {
	if prefix == "" {
		return candidates
	}
	prefixed := make([]suggest.Suggestion, len(candidates))
	for i, candidate := range candidates {
		prefixed[i] = suggest.Of(prefix + candidate.Text)
	}
	return prefixed
}
