// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCursorOutOfRange is returned by fixed-length reads that extend
// past the end of the input. Use errors.Is to test for it; the
// returned error carries the requested length and remaining length.
var ErrCursorOutOfRange = errors.New("cursor out of range")

// ErrForeignInput is returned by Difference when the two snapshots do
// not share the same underlying string.
var ErrForeignInput = errors.New("inputs do not share the same underlying string")

// CommandInput is a cursor over an immutable command string. One
// instance is created per incoming dispatch; components that need a
// restorable checkpoint take a Copy or save the Cursor position.
type CommandInput struct {
	input  string
	cursor int
}

// New returns a CommandInput positioned at the start of input.
func New(input string) *CommandInput {
	return &CommandInput{input: input}
}

// Input returns the full underlying string, independent of cursor
// position.
func (c *CommandInput) Input() string { return c.input }

// Cursor returns the current cursor position. Valid positions are
// 0 through len(Input()) inclusive.
func (c *CommandInput) Cursor() int { return c.cursor }

// Remaining returns the unconsumed tail of the input.
func (c *CommandInput) Remaining() string { return c.input[c.cursor:] }

// RemainingLength returns the number of unconsumed bytes.
func (c *CommandInput) RemainingLength() int { return len(c.input) - c.cursor }

// IsEmpty reports whether the cursor has reached the end of the input.
func (c *CommandInput) IsEmpty() bool { return c.cursor >= len(c.input) }

// HasRemaining reports whether any unconsumed bytes remain.
func (c *CommandInput) HasRemaining() bool { return c.cursor < len(c.input) }

// Consumed returns the prefix of the input that has been read so far.
func (c *CommandInput) Consumed() string { return c.input[:c.cursor] }

// Copy returns an independent snapshot with its own cursor. The
// underlying string is shared (it is immutable).
func (c *CommandInput) Copy() *CommandInput {
	return &CommandInput{input: c.input, cursor: c.cursor}
}

// Restore rewinds (or advances) the cursor to a previously observed
// position. Callers must only pass values obtained from Cursor() on
// the same input; Restore panics on out-of-range positions because
// that is always a programming error in the engine, never bad user
// input.
func (c *CommandInput) Restore(cursor int) {
	if cursor < 0 || cursor > len(c.input) {
		panic(fmt.Sprintf("input: restore to %d outside [0, %d]", cursor, len(c.input)))
	}
	c.cursor = cursor
}

// Difference returns the substring consumed between an older snapshot
// of the same input and this one. The older snapshot's cursor must not
// be ahead of this one.
func (c *CommandInput) Difference(older *CommandInput) (string, error) {
	if older.input != c.input {
		return "", ErrForeignInput
	}
	if older.cursor > c.cursor {
		return "", fmt.Errorf("older snapshot is ahead of current cursor (%d > %d)", older.cursor, c.cursor)
	}
	return c.input[older.cursor:c.cursor], nil
}

// Peek returns the next n bytes without moving the cursor.
func (c *CommandInput) Peek(n int) (string, error) {
	if n < 0 || c.cursor+n > len(c.input) {
		return "", fmt.Errorf("peek %d bytes with %d remaining: %w", n, c.RemainingLength(), ErrCursorOutOfRange)
	}
	return c.input[c.cursor : c.cursor+n], nil
}

// Read consumes and returns the next n bytes.
func (c *CommandInput) Read(n int) (string, error) {
	read, err := c.Peek(n)
	if err != nil {
		return "", err
	}
	c.cursor += n
	return read, nil
}

// PeekString returns the next whitespace-delimited token without
// moving the cursor. Leading whitespace is not skipped; callers skip
// it explicitly so that cursor accounting stays exact.
func (c *CommandInput) PeekString() string {
	remaining := c.Remaining()
	if index := strings.IndexAny(remaining, " \t"); index >= 0 {
		return remaining[:index]
	}
	return remaining
}

// ReadString consumes the next whitespace-delimited token and a single
// following separator space, if present. This is the standard read for
// sequential components: after the read, the cursor sits at the start
// of the next token (or at end of input).
func (c *CommandInput) ReadString() string {
	token := c.PeekString()
	c.cursor += len(token)
	c.SkipWhitespace(1)
	return token
}

// ReadStringPreserveWhitespace consumes the next token but leaves any
// following whitespace in place. Suggestion walks use this so that a
// trailing space — the signal that the user finished the token —
// survives for the next component to observe.
func (c *CommandInput) ReadStringPreserveWhitespace() string {
	token := c.PeekString()
	c.cursor += len(token)
	return token
}

// SkipWhitespace consumes up to limit whitespace bytes (spaces and
// tabs). A negative limit consumes all leading whitespace. Returns the
// number of bytes consumed.
func (c *CommandInput) SkipWhitespace(limit int) int {
	skipped := 0
	for c.HasRemaining() && (limit < 0 || skipped < limit) {
		b := c.input[c.cursor]
		if b != ' ' && b != '\t' {
			break
		}
		c.cursor++
		skipped++
	}
	return skipped
}

// SkipWhitespacePreserveSingle consumes leading whitespace but, when
// the whitespace runs to the end of the input, leaves exactly one
// trailing space unconsumed. The preserved space keeps suggestion
// prompts stable: "give Goofy " must still look different from
// "give Goofy" after skipping.
func (c *CommandInput) SkipWhitespacePreserveSingle() int {
	skipped := 0
	for c.HasRemaining() {
		b := c.input[c.cursor]
		if b != ' ' && b != '\t' {
			break
		}
		if c.cursor == len(c.input)-1 {
			// Last byte of input is whitespace: preserve it.
			break
		}
		c.cursor++
		skipped++
	}
	return skipped
}

// ReadRemaining consumes and returns everything left.
func (c *CommandInput) ReadRemaining() string {
	remaining := c.Remaining()
	c.cursor = len(c.input)
	return remaining
}

// IsValidInt reports whether the next token parses as a signed
// integer. The cursor does not move.
func (c *CommandInput) IsValidInt() bool {
	token := c.PeekString()
	if token == "" {
		return false
	}
	_, err := strconv.ParseInt(token, 10, 64)
	return err == nil
}

// IsValidUint reports whether the next token parses as an unsigned
// integer. The cursor does not move.
func (c *CommandInput) IsValidUint() bool {
	token := c.PeekString()
	if token == "" {
		return false
	}
	_, err := strconv.ParseUint(token, 10, 64)
	return err == nil
}

// IsValidFloat reports whether the next token parses as a float. The
// cursor does not move.
func (c *CommandInput) IsValidFloat() bool {
	token := c.PeekString()
	if token == "" {
		return false
	}
	_, err := strconv.ParseFloat(token, 64)
	return err == nil
}

// IsValidBool reports whether the next token is a recognized boolean
// literal (true/false, yes/no, on/off, 1/0, case-insensitive). The
// cursor does not move.
func (c *CommandInput) IsValidBool() bool {
	_, ok := parseBoolToken(c.PeekString())
	return ok
}

// ReadInt consumes the next token and returns it as an int64. The
// token must have been validated (IsValidInt); on an invalid token the
// cursor does not move and an error is returned.
func (c *CommandInput) ReadInt() (int64, error) {
	token := c.PeekString()
	value, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("reading integer from %q: %w", token, err)
	}
	c.cursor += len(token)
	c.SkipWhitespace(1)
	return value, nil
}

// ReadFloat consumes the next token and returns it as a float64. On an
// invalid token the cursor does not move.
func (c *CommandInput) ReadFloat() (float64, error) {
	token := c.PeekString()
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("reading float from %q: %w", token, err)
	}
	c.cursor += len(token)
	c.SkipWhitespace(1)
	return value, nil
}

// ReadBool consumes the next token and returns it as a bool. On an
// unrecognized token the cursor does not move.
func (c *CommandInput) ReadBool() (bool, error) {
	token := c.PeekString()
	value, ok := parseBoolToken(token)
	if !ok {
		return false, fmt.Errorf("reading boolean from %q: not a boolean literal", token)
	}
	c.cursor += len(token)
	c.SkipWhitespace(1)
	return value, nil
}

// parseBoolToken maps the accepted boolean literals to their values.
func parseBoolToken(token string) (value, ok bool) {
	switch strings.ToLower(token) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

// Tokenize splits the remaining input into a token queue without
// moving the cursor. Double-quoted runs form a single token with the
// quotes removed; an unterminated quote extends to the end of input.
// Tokens are separated by runs of spaces and tabs.
func (c *CommandInput) Tokenize() []string {
	var tokens []string
	remaining := c.Remaining()
	i := 0
	for i < len(remaining) {
		// Skip separators.
		for i < len(remaining) && (remaining[i] == ' ' || remaining[i] == '\t') {
			i++
		}
		if i >= len(remaining) {
			break
		}
		if remaining[i] == '"' {
			// Quoted run: consume to the closing quote.
			end := strings.IndexByte(remaining[i+1:], '"')
			if end < 0 {
				tokens = append(tokens, remaining[i+1:])
				i = len(remaining)
				continue
			}
			tokens = append(tokens, remaining[i+1:i+1+end])
			i += end + 2
			continue
		}
		start := i
		for i < len(remaining) && remaining[i] != ' ' && remaining[i] != '\t' {
			i++
		}
		tokens = append(tokens, remaining[start:i])
	}
	return tokens
}
