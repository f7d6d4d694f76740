// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"fmt"

	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/suggest"
)

// ErrInputExhausted reports that input ran out before a required
// component was satisfied.
var ErrInputExhausted = errors.New("input exhausted before required component")

// AggregateError attributes a failure inside an aggregate to the
// named sub-component.
type AggregateError struct {
	Component string
	Cause     error
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("component %q: %v", e.Component, e.Cause)
}

func (e *AggregateError) Unwrap() error { return e.Cause }

// AggregateComponent is one named slot of an aggregate.
type AggregateComponent struct {
	// Name keys the component's intermediate value for the mapper.
	Name string

	// Parser consumes the component's portion of the input.
	Parser Untyped

	// Suggest overrides the parser's own suggestion provider when
	// non-nil.
	Suggest SuggestionProvider
}

// Component builds an AggregateComponent from a typed parser.
func Component[T any](name string, parser ArgumentParser[T]) AggregateComponent {
	return AggregateComponent{Name: name, Parser: Erase(parser)}
}

// Values holds the intermediate values of one aggregate parse, keyed
// by component name. It is transient: created for one Parse call and
// handed to the mapper.
type Values struct {
	values map[string]any
}

// Value returns the raw intermediate value for a component.
func (v *Values) Value(name string) (any, bool) {
	value, ok := v.values[name]
	return value, ok
}

// ValueAs returns a component's intermediate value, typed. The mapper
// uses it to fold components into the final result.
func ValueAs[T any](v *Values, name string) (T, bool) {
	value, ok := v.values[name]
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}

// MustValue returns a component's intermediate value or panics. Safe
// inside mappers, which only run after every component parsed.
func MustValue[T any](v *Values, name string) T {
	typed, ok := ValueAs[T](v, name)
	if !ok {
		panic(fmt.Sprintf("parser: aggregate value %q missing or mistyped", name))
	}
	return typed
}

// Mapper folds the intermediate values of an aggregate into the final
// typed result.
type Mapper[T any] func(ctx *Context, values *Values) Result[T]

// Aggregate is an ArgumentParser composed of an ordered list of named
// sub-parsers and a mapper. Components parse sequentially, separated
// by single spaces; the first failure aborts the parse and is
// attributed to the failing component.
type Aggregate[T any] struct {
	components []AggregateComponent
	mapper     Mapper[T]
}

// NewAggregate builds an aggregate. Component names must be unique.
func NewAggregate[T any](mapper Mapper[T], components ...AggregateComponent) (*Aggregate[T], error) {
	if mapper == nil {
		return nil, fmt.Errorf("aggregate requires a mapper")
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("aggregate requires at least one component")
	}
	seen := make(map[string]bool, len(components))
	for _, component := range components {
		if component.Name == "" {
			return nil, fmt.Errorf("aggregate component requires a name")
		}
		if component.Parser == nil {
			return nil, fmt.Errorf("aggregate component %q requires a parser", component.Name)
		}
		if seen[component.Name] {
			return nil, fmt.Errorf("duplicate aggregate component %q", component.Name)
		}
		seen[component.Name] = true
	}
	return &Aggregate[T]{components: components, mapper: mapper}, nil
}

// Parse implements ArgumentParser. Each component's consumed span is
// recorded in the context under the component's name.
func (a *Aggregate[T]) Parse(ctx *Context, in *input.CommandInput) Result[T] {
	values := &Values{values: make(map[string]any, len(a.components))}

	for _, component := range a.components {
		if in.IsEmpty() {
			return Failure[T](&AggregateError{Component: component.Name, Cause: ErrInputExhausted})
		}

		started := ctx.Clock().Now()
		before := in.Copy()
		value, err := component.Parser.ParseUntyped(ctx, in)
		if err != nil {
			return Failure[T](&AggregateError{Component: component.Name, Cause: err})
		}
		consumed, _ := in.Difference(before)
		ctx.Record(&ParsingRecord{
			Component: component.Name,
			Success:   true,
			Start:     before.Cursor(),
			End:       in.Cursor(),
			Consumed:  consumed,
			Duration:  ctx.Clock().Since(started),
		})
		values.values[component.Name] = value
	}

	return a.mapper(ctx, values)
}

// Suggestions implements SuggestionProvider. The walk mirrors Parse:
// components with complete tokens are parsed and skipped; the first
// component that fails, or whose token is still being typed, yields
// its suggestions. Returned candidates are prefixed with the text the
// earlier components consumed so they remain valid completions of the
// original unconsumed input.
func (a *Aggregate[T]) Suggestions(ctx *Context, in *input.CommandInput) []suggest.Suggestion {
	start := in.Copy()

	for _, component := range a.components {
		if in.IsEmpty() {
			return a.prefixed(start, in, a.suggestFor(component, ctx, in))
		}

		token := in.PeekString()
		tokenComplete := len(token) < in.RemainingLength()
		if !tokenComplete {
			// The final token is still being typed; it belongs to
			// this component.
			return a.prefixed(start, in, a.suggestFor(component, ctx, in))
		}

		checkpoint := in.Cursor()
		if _, err := component.Parser.ParseUntyped(ctx, in); err != nil {
			in.Restore(checkpoint)
			return a.prefixed(start, in, a.suggestFor(component, ctx, in))
		}
	}
	return nil
}

// suggestFor returns the candidates for one component, preferring the
// component's override provider.
func (a *Aggregate[T]) suggestFor(component AggregateComponent, ctx *Context, in *input.CommandInput) []suggest.Suggestion {
	provider := component.Suggest
	if provider == nil {
		provider = component.Parser
	}
	checkpoint := in.Cursor()
	candidates := provider.Suggestions(ctx, in)
	in.Restore(checkpoint)
	return candidates
}

// prefixed prepends the text consumed since the aggregate started to
// every candidate.
func (a *Aggregate[T]) prefixed(start, current *input.CommandInput, candidates []suggest.Suggestion) []suggest.Suggestion {
	prefix, err := current.Difference(start)
	if err != nil || prefix == "" {
		return candidates
	}
	prefixedCandidates := make([]suggest.Suggestion, len(candidates))
	for i, candidate := range candidates {
		prefixedCandidates[i] = suggest.Of(prefix + candidate.Text)
	}
	return prefixedCandidates
}
