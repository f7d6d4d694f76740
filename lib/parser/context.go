// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"time"

	"github.com/parlance-dev/parlance/lib/clock"
)

// Sender identifies who issued a command. Front ends supply their own
// implementation (a player, a chat user, a console); the engine only
// needs a stable name for logging and traces. Permission and
// capability checks are injected separately at command registration.
type Sender interface {
	Name() string
}

// Context is the per-dispatch bag of parsed values. It is created for
// one dispatch, mutated incrementally as the tree is walked, read by
// later parsers, suggestion providers, and the handler, and discarded
// when the dispatch completes. It is never shared across dispatches
// and needs no synchronization.
type Context struct {
	sender               Sender
	suggestionsRequested bool
	clock                clock.Clock
	rawInput             string

	values  map[string]any
	records map[string]*ParsingRecord
	order   []string
}

// ContextOption configures a Context at construction.
type ContextOption func(*Context)

// WithClock sets the clock used for parse timing. Defaults to
// clock.Real().
func WithClock(c clock.Clock) ContextOption {
	return func(ctx *Context) { ctx.clock = c }
}

// ForSuggestions marks the context as a suggestion computation.
// Parsers may consult this to skip expensive validation that only
// matters for real dispatch.
func ForSuggestions() ContextOption {
	return func(ctx *Context) { ctx.suggestionsRequested = true }
}

// NewContext creates a dispatch context for the given sender.
func NewContext(sender Sender, options ...ContextOption) *Context {
	ctx := &Context{
		sender:  sender,
		clock:   clock.Real(),
		values:  make(map[string]any),
		records: make(map[string]*ParsingRecord),
	}
	for _, option := range options {
		option(ctx)
	}
	return ctx
}

// Sender returns the dispatch's sender.
func (c *Context) Sender() Sender { return c.sender }

// SuggestionsRequested reports whether this context belongs to a
// suggestion computation rather than a real dispatch.
func (c *Context) SuggestionsRequested() bool { return c.suggestionsRequested }

// Clock returns the context's clock.
func (c *Context) Clock() clock.Clock { return c.clock }

// SetRawInput records the original input string for traces and error
// messages.
func (c *Context) SetRawInput(raw string) { c.rawInput = raw }

// RawInput returns the original input string.
func (c *Context) RawInput() string { return c.rawInput }

// Set stores a parsed value under a component key. Later components
// and the handler read it back with [Get].
func (c *Context) Set(key string, value any) { c.values[key] = value }

// Has reports whether a value is stored under key.
func (c *Context) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Value returns the raw stored value.
func (c *Context) Value(key string) (any, bool) {
	value, ok := c.values[key]
	return value, ok
}

// Get returns the value stored under key, typed. The second return is
// false when the key is absent or holds a different type.
func Get[T any](c *Context, key string) (T, bool) {
	value, ok := c.values[key]
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}

// MustGet returns the value stored under key or panics. Handlers use
// it for required components, which the tree guarantees are present
// when the handler runs.
func MustGet[T any](c *Context, key string) T {
	typed, ok := Get[T](c, key)
	if !ok {
		panic(fmt.Sprintf("parser: required context value %q missing or mistyped", key))
	}
	return typed
}

// GetOr returns the value stored under key, or fallback when absent.
func GetOr[T any](c *Context, key string, fallback T) T {
	if typed, ok := Get[T](c, key); ok {
		return typed
	}
	return fallback
}

// ParsingRecord is the per-component bookkeeping accumulated during
// one dispatch: whether the component parsed, the exact span of input
// it consumed, and how long parsing took.
type ParsingRecord struct {
	// Component is the component name the record belongs to.
	Component string

	// Success is true when the component's parser returned a value.
	Success bool

	// Start and End are cursor offsets into the input the component
	// parsed against (End exclusive). When a flag scan removed tokens
	// from the line, later components parse the residual line and
	// their offsets index it, not the raw input.
	Start, End int

	// Consumed is the exact text between Start and End.
	Consumed string

	// Duration is the wall time the parse took, measured with the
	// context's clock.
	Duration time.Duration
}

// Record stores a parsing record for a component, replacing any
// earlier record with the same name.
func (c *Context) Record(record *ParsingRecord) {
	if _, exists := c.records[record.Component]; !exists {
		c.order = append(c.order, record.Component)
	}
	c.records[record.Component] = record
}

// ParsingRecordFor returns the record for a component, or nil.
func (c *Context) ParsingRecordFor(component string) *ParsingRecord {
	return c.records[component]
}

// ParsingRecords returns all records in the order the components were
// first parsed.
func (c *Context) ParsingRecords() []*ParsingRecord {
	records := make([]*ParsingRecord, 0, len(c.order))
	for _, name := range c.order {
		records = append(records, c.records[name])
	}
	return records
}
