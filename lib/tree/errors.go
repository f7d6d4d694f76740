// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"errors"
	"fmt"
)

// ErrFrozen is returned by Register after the tree has served its
// first dispatch or suggestion request.
var ErrFrozen = errors.New("command tree is frozen")

// NoSuchCommandError reports a first token that matches no root
// literal. Hint carries the closest registered command name when one
// is within editing distance, empty otherwise.
type NoSuchCommandError struct {
	Token string
	Hint  string
}

func (e *NoSuchCommandError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("unknown command %q (did you mean %q?)", e.Token, e.Hint)
	}
	return fmt.Sprintf("unknown command %q", e.Token)
}

// InvalidSyntaxError reports input that entered a known command but
// diverged from every registered continuation: an unknown
// subcommand, a missing required argument, or trailing input past a
// terminal. Syntax is the reconstructed usage string of the nearest
// registered command.
type InvalidSyntaxError struct {
	Syntax string
	Token  string
	Hint   string
}

func (e *InvalidSyntaxError) Error() string {
	switch {
	case e.Token != "" && e.Hint != "":
		return fmt.Sprintf("invalid syntax at %q (did you mean %q?): usage: %s", e.Token, e.Hint, e.Syntax)
	case e.Token != "":
		return fmt.Sprintf("invalid syntax at %q: usage: %s", e.Token, e.Syntax)
	default:
		return fmt.Sprintf("incomplete command: usage: %s", e.Syntax)
	}
}

// ArgumentError attributes a parse failure to the argument component
// that rejected the input. The cursor of the dispatched input is left
// at the offending token.
type ArgumentError struct {
	Component string
	Cause     error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q: %v", e.Component, e.Cause)
}

func (e *ArgumentError) Unwrap() error { return e.Cause }

// NoPermissionError reports a syntactically valid command the sender
// is not permitted to run.
type NoPermissionError struct {
	Permission string
}

func (e *NoPermissionError) Error() string {
	return fmt.Sprintf("missing permission %q", e.Permission)
}

// InvalidSenderError reports a syntactically valid command whose
// sender gate rejected the dispatching sender.
type InvalidSenderError struct {
	Command string
}

func (e *InvalidSenderError) Error() string {
	return fmt.Sprintf("command %q cannot be run by this sender", e.Command)
}

// RegistrationError reports a command rejected at Register time.
type RegistrationError struct {
	Command string
	Reason  string
}

func (e *RegistrationError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("command registration: %s", e.Reason)
	}
	return fmt.Sprintf("register %q: %s", e.Command, e.Reason)
}
