// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"github.com/parlance-dev/parlance/lib/parser"
)

// Handler runs a fully matched command. All parsed argument and flag
// values are available through the dispatch context by component
// name.
type Handler func(ctx *parser.Context) error

// Command is a registered root-to-leaf component sequence with its
// handler and access constraints.
type Command struct {
	Components  []*Component
	Handler     Handler
	Permission  string
	SenderGate  func(sender parser.Sender) bool
	Description string
}

// Name is the primary name of the leading literal.
func (c *Command) Name() string {
	if len(c.Components) == 0 {
		return ""
	}
	return c.Components[0].Name
}

// validate enforces the structural rules checked at Register time.
func (c *Command) validate() error {
	fail := func(reason string) error {
		return &RegistrationError{Command: c.Name(), Reason: reason}
	}
	if len(c.Components) == 0 {
		return fail("command has no components")
	}
	if c.Handler == nil {
		return fail("command has no handler")
	}
	if c.Components[0].Kind != KindLiteral {
		return fail("first component must be a literal")
	}

	seenOptional := false
	seenFlags := false
	names := make(map[string]bool)
	for _, component := range c.Components {
		switch component.Kind {
		case KindLiteral:
			if component.Name == "" {
				return fail("literal component has no name")
			}
			if seenFlags {
				return fail("literal after flag set")
			}
		case KindArgument:
			if component.Name == "" {
				return fail("argument component has no name")
			}
			if component.Parser == nil {
				return fail("argument " + component.Name + " has no parser")
			}
			if names[component.Name] {
				return fail("duplicate argument name " + component.Name)
			}
			names[component.Name] = true
			if component.Optional {
				seenOptional = true
			} else if seenOptional {
				return fail("required argument " + component.Name + " after optional argument")
			}
		case KindFlags:
			if component.Flags.Empty() {
				return fail("flag component has an empty set")
			}
			if seenFlags {
				return fail("multiple flag components")
			}
			seenFlags = true
		default:
			return fail("unknown component kind")
		}
	}
	return nil
}

// permitted reports whether sender may run the command under check.
// A nil check grants everything with an empty Permission and nothing
// else; the sender gate is always consulted.
func (c *Command) permitted(sender parser.Sender, check PermissionFunc) bool {
	if c.SenderGate != nil && !c.SenderGate(sender) {
		return false
	}
	if c.Permission == "" {
		return true
	}
	if check == nil {
		return false
	}
	return check(sender, c.Permission)
}
