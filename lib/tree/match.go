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

// Match walks the trie against the input and returns the command the
// input selects, after storing every parsed argument and flag value
// in the context. It does not run the handler.
//
// The walk is greedy: an exact literal match always wins over
// argument siblings and is never reconsidered, and among argument
// siblings the first registered parser that succeeds wins. Errors are
// attributed to the deepest point the walk reached; for argument
// parse failures the input cursor is left at the offending token.
func (t *Tree) Match(ctx *parser.Context, in *input.CommandInput) (*Command, error) {
	t.frozen.Store(true)
	ctx.SetRawInput(in.Input())

	current := t.root
	var scanned *flags.Set
	for {
		if current.flagSet != nil && current.flagSet != scanned {
			before := in.Cursor()
			residual, err := current.flagSet.Parse(ctx, in, t.config.FlagMode)
			if err != nil {
				return nil, err
			}
			scanned = current.flagSet
			if residual == strings.Trim(in.Input()[before:], " \t") {
				// The scan removed nothing; keep reading the original
				// line so parsing records keep indexing it.
				in.Restore(before)
			} else {
				in = input.New(residual)
			}
		}

		in.SkipWhitespace(-1)
		if in.IsEmpty() {
			return t.completeWithDefaults(ctx, current)
		}

		token := in.PeekString()
		if child, ok := current.literalIndex[token]; ok {
			started := ctx.Clock().Now()
			before := in.Cursor()
			in.ReadString()
			ctx.Record(&parser.ParsingRecord{
				Component: child.component.Name,
				Success:   true,
				Start:     before,
				End:       in.Cursor(),
				Consumed:  token,
				Duration:  ctx.Clock().Since(started),
			})
			current = child
			continue
		}

		if next, err := t.matchArgument(ctx, in, current); err != nil {
			return nil, err
		} else if next != nil {
			current = next
			continue
		}

		return nil, t.divergence(current, token)
	}
}

// Dispatch is Match followed by the handler. Parse errors and handler
// errors both surface here; callers that need to tell them apart use
// Match directly or the execute package's coordinator.
func (t *Tree) Dispatch(ctx *parser.Context, in *input.CommandInput) error {
	command, err := t.Match(ctx, in)
	if err != nil {
		return err
	}
	return command.Handler(ctx)
}

// matchArgument tries the argument children of current in
// registration order. It returns the child that consumed input, nil
// when current has no argument children, or the failure of the
// first-registered child when none succeed.
func (t *Tree) matchArgument(ctx *parser.Context, in *input.CommandInput, current *node) (*node, error) {
	if len(current.argumentOrder) == 0 {
		return nil, nil
	}

	var firstErr error
	var firstName string
	for _, child := range current.argumentOrder {
		started := ctx.Clock().Now()
		before := in.Copy()
		value, err := child.component.Parser.ParseUntyped(ctx, in)
		if err != nil {
			in.Restore(before.Cursor())
			if firstErr == nil {
				firstErr = err
				firstName = child.component.Name
			}
			continue
		}
		consumed, _ := in.Difference(before)
		ctx.Record(&parser.ParsingRecord{
			Component: child.component.Name,
			Success:   true,
			Start:     before.Cursor(),
			End:       in.Cursor(),
			Consumed:  consumed,
			Duration:  ctx.Clock().Since(started),
		})
		ctx.Set(child.component.Name, value)
		return child, nil
	}
	return nil, &ArgumentError{Component: firstName, Cause: firstErr}
}

// completeWithDefaults handles input exhaustion: accept the terminal
// here, or follow a chain of optional arguments applying their
// defaults until a terminal is reached.
func (t *Tree) completeWithDefaults(ctx *parser.Context, current *node) (*Command, error) {
	for {
		if current.command != nil {
			return t.gate(ctx, current.command)
		}

		var next *node
		for _, child := range current.argumentOrder {
			if child.component.Optional {
				next = child
				break
			}
		}
		if next == nil {
			return nil, &InvalidSyntaxError{Syntax: current.nearestSyntax()}
		}

		value, ok, err := next.component.resolveDefault(ctx)
		if err != nil {
			return nil, &ArgumentError{Component: next.component.Name, Cause: err}
		}
		if ok {
			ctx.Set(next.component.Name, value)
		}
		current = next
	}
}

// gate applies the terminal command's sender and permission
// constraints.
func (t *Tree) gate(ctx *parser.Context, command *Command) (*Command, error) {
	if command.SenderGate != nil && !command.SenderGate(ctx.Sender()) {
		return nil, &InvalidSenderError{Command: command.Name()}
	}
	if command.Permission != "" {
		if t.config.Permissions == nil || !t.config.Permissions(ctx.Sender(), command.Permission) {
			return nil, &NoPermissionError{Permission: command.Permission}
		}
	}
	return command, nil
}

// divergence builds the error for a token no child of current
// accepts.
func (t *Tree) divergence(current *node, token string) error {
	if current == t.root {
		return &NoSuchCommandError{Token: token, Hint: suggest.Closest(token, t.rootNames())}
	}
	var names []string
	for _, child := range current.literalOrder {
		names = append(names, child.component.Name)
	}
	return &InvalidSyntaxError{
		Syntax: current.nearestSyntax(),
		Token:  token,
		Hint:   suggest.Closest(token, names),
	}
}
