// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"github.com/parlance-dev/parlance/lib/flags"
	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
)

// Kind distinguishes the three component shapes a command sequence is
// built from.
type Kind int

const (
	// KindLiteral matches one exact token, case-sensitively, by name
	// or alias.
	KindLiteral Kind = iota
	// KindArgument delegates to a typed parser and stores the parsed
	// value in the dispatch context under the component name.
	KindArgument
	// KindFlags marks the point in the sequence where the attached
	// flag set scans the remaining input.
	KindFlags
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindArgument:
		return "argument"
	case KindFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Default supplies a value for an optional argument the input did not
// reach. Exactly one field should be set; Resolve prefers them in
// field order.
type Default struct {
	// Constant is stored as-is.
	Constant any
	// FromContext derives the value from the dispatch context, e.g.
	// the sender's own name.
	FromContext func(ctx *parser.Context) (any, error)
	// Literal is run through the component's parser, so defaults
	// take the same validation path as typed input.
	Literal string
}

// Component is one step of a command sequence.
type Component struct {
	Kind        Kind
	Name        string
	Aliases     []string
	Parser      parser.Untyped
	Suggest     parser.SuggestionProvider
	Optional    bool
	Default     *Default
	Flags       *flags.Set
	Description string
}

// Literal builds a literal component matched by name or any alias.
func Literal(name string, aliases ...string) *Component {
	return &Component{Kind: KindLiteral, Name: name, Aliases: aliases}
}

// Argument builds a required argument component backed by a typed
// parser.
func Argument[T any](name string, p parser.ArgumentParser[T]) *Component {
	return &Component{Kind: KindArgument, Name: name, Parser: parser.Erase(p)}
}

// OptionalArgument builds a trailing argument the input may omit.
// A nil default leaves the context entry absent when omitted.
func OptionalArgument[T any](name string, p parser.ArgumentParser[T], def *Default) *Component {
	return &Component{Kind: KindArgument, Name: name, Parser: parser.Erase(p), Optional: true, Default: def}
}

// Flags builds the component that attaches a flag set to the
// sequence. At most one per command, after the last literal.
func Flags(set *flags.Set) *Component {
	return &Component{Kind: KindFlags, Flags: set}
}

// resolveDefault produces the omitted-argument value, or (nil, false,
// nil) when the component carries no default.
func (c *Component) resolveDefault(ctx *parser.Context) (any, bool, error) {
	if c.Default == nil {
		return nil, false, nil
	}
	switch {
	case c.Default.Constant != nil:
		return c.Default.Constant, true, nil
	case c.Default.FromContext != nil:
		value, err := c.Default.FromContext(ctx)
		if err != nil {
			return nil, false, err
		}
		return value, true, nil
	case c.Default.Literal != "":
		value, err := c.Parser.ParseUntyped(ctx, input.New(c.Default.Literal))
		if err != nil {
			return nil, false, err
		}
		return value, true, nil
	default:
		return nil, false, nil
	}
}

// matchesLiteral reports whether token is the component's name or one
// of its aliases.
func (c *Component) matchesLiteral(token string) bool {
	if c.Name == token {
		return true
	}
	for _, alias := range c.Aliases {
		if alias == token {
			return true
		}
	}
	return false
}
