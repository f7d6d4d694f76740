// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"github.com/parlance-dev/parlance/lib/flags"
	"github.com/parlance-dev/parlance/lib/parser"
)

// Builder assembles a Command incrementally. Errors accumulate and
// surface from Done, so call sites chain without intermediate checks.
type Builder struct {
	command Command
}

// NewCommand starts a builder with the leading literal.
func NewCommand(name string, aliases ...string) *Builder {
	b := &Builder{}
	b.command.Components = append(b.command.Components, Literal(name, aliases...))
	return b
}

// Literal appends a literal component.
func (b *Builder) Literal(name string, aliases ...string) *Builder {
	b.command.Components = append(b.command.Components, Literal(name, aliases...))
	return b
}

// Argument appends a required argument backed by an untyped parser.
// Typed call sites usually go through the package-level Argument
// helper and Component instead.
func (b *Builder) Argument(name string, p parser.Untyped) *Builder {
	b.command.Components = append(b.command.Components, &Component{Kind: KindArgument, Name: name, Parser: p})
	return b
}

// Optional appends a trailing optional argument.
func (b *Builder) Optional(name string, p parser.Untyped, def *Default) *Builder {
	b.command.Components = append(b.command.Components, &Component{
		Kind: KindArgument, Name: name, Parser: p, Optional: true, Default: def,
	})
	return b
}

// Component appends a prebuilt component, typically from the typed
// Argument or OptionalArgument constructors.
func (b *Builder) Component(component *Component) *Builder {
	b.command.Components = append(b.command.Components, component)
	return b
}

// Flags attaches the flag set scanned from this point of the
// sequence.
func (b *Builder) Flags(set *flags.Set) *Builder {
	b.command.Components = append(b.command.Components, Flags(set))
	return b
}

// Permission sets the permission node the sender must hold.
func (b *Builder) Permission(node string) *Builder {
	b.command.Permission = node
	return b
}

// SenderGate restricts the command to senders the predicate accepts.
func (b *Builder) SenderGate(gate func(parser.Sender) bool) *Builder {
	b.command.SenderGate = gate
	return b
}

// Description sets the help text shown in listings.
func (b *Builder) Description(text string) *Builder {
	b.command.Description = text
	return b
}

// Handler sets the function run when the command matches.
func (b *Builder) Handler(handler Handler) *Builder {
	b.command.Handler = handler
	return b
}

// Done validates and returns the assembled command.
func (b *Builder) Done() (*Command, error) {
	command := b.command
	if err := command.validate(); err != nil {
		return nil, err
	}
	return &command, nil
}
