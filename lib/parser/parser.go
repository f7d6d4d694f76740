// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/suggest"
)

// ArgumentParser consumes a prefix of the input and produces a typed
// value. The contract:
//
//   - On success, the cursor has advanced past exactly the text the
//     parser consumed, including a single trailing separator space
//     when one was present.
//
//   - On failure, the cursor sits at the start of the failing token
//     so the caller can report or complete it. Parsers must not leave
//     the cursor mid-token.
type ArgumentParser[T any] interface {
	Parse(ctx *Context, in *input.CommandInput) Result[T]
}

// ParserFunc adapts a function to ArgumentParser.
type ParserFunc[T any] func(ctx *Context, in *input.CommandInput) Result[T]

// Parse calls the function.
func (f ParserFunc[T]) Parse(ctx *Context, in *input.CommandInput) Result[T] {
	return f(ctx, in)
}

// SuggestionProvider produces completion candidates for the
// unconsumed tail of in. Providers must treat the input as read-only
// or restore the cursor before returning; the tree walk checkpoints
// around provider calls regardless.
type SuggestionProvider interface {
	Suggestions(ctx *Context, in *input.CommandInput) []suggest.Suggestion
}

// SuggestionsFunc adapts a function to SuggestionProvider.
type SuggestionsFunc func(ctx *Context, in *input.CommandInput) []suggest.Suggestion

// Suggestions calls the function.
func (f SuggestionsFunc) Suggestions(ctx *Context, in *input.CommandInput) []suggest.Suggestion {
	return f(ctx, in)
}

// StaticSuggestions returns a provider that always offers the given
// candidates. The processor chain filters them against the typed
// partial.
func StaticSuggestions(texts ...string) SuggestionProvider {
	candidates := suggest.FromTexts(texts)
	return SuggestionsFunc(func(*Context, *input.CommandInput) []suggest.Suggestion {
		return candidates
	})
}

// Untyped is the type-erased parser form the command tree stores.
// Obtain one with [Erase]; the erased parser forwards suggestions
// from the underlying typed parser when it provides them.
type Untyped interface {
	ParseUntyped(ctx *Context, in *input.CommandInput) (any, error)
	SuggestionProvider
}

// Erase wraps a typed parser for storage in heterogeneous component
// lists.
func Erase[T any](parser ArgumentParser[T]) Untyped {
	return erased[T]{parser: parser}
}

type erased[T any] struct {
	parser ArgumentParser[T]
}

func (e erased[T]) ParseUntyped(ctx *Context, in *input.CommandInput) (any, error) {
	result := e.parser.Parse(ctx, in)
	if err := result.Err(); err != nil {
		return nil, err
	}
	return result.Value(), nil
}

func (e erased[T]) Suggestions(ctx *Context, in *input.CommandInput) []suggest.Suggestion {
	if provider, ok := any(e.parser).(SuggestionProvider); ok {
		return provider.Suggestions(ctx, in)
	}
	return nil
}
