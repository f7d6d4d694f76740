// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package flags

import "fmt"

// Reason classifies a flag parse failure.
type Reason int

const (
	// ReasonUnknown marks a flag token that matches no declared flag.
	ReasonUnknown Reason = iota
	// ReasonDuplicate marks a non-repeatable flag that appeared
	// twice.
	ReasonDuplicate
	// ReasonMissingValue marks a value flag at the end of the input.
	ReasonMissingValue
	// ReasonBadValue marks a value that failed its parser, an inline
	// value on a presence flag, or a value flag inside a bundle.
	ReasonBadValue
	// ReasonMisplaced marks a positional token after flags in
	// strict-trailing mode.
	ReasonMisplaced
)

// String returns the reason's wire form.
func (r Reason) String() string {
	switch r {
	case ReasonUnknown:
		return "unknown"
	case ReasonDuplicate:
		return "duplicate"
	case ReasonMissingValue:
		return "missing value"
	case ReasonBadValue:
		return "bad value"
	case ReasonMisplaced:
		return "misplaced"
	}
	return "invalid"
}

// ParseError reports a failure in the flag scan. It is terminal for
// the dispatch.
type ParseError struct {
	// Flag is the offending token as typed, including dashes.
	Flag string

	// Reason classifies the failure.
	Reason Reason

	// Cause is the underlying error for ReasonBadValue.
	Cause error

	// Hint is a "did you mean" candidate for ReasonUnknown, already
	// formatted with its dash prefix. Empty when nothing is close.
	Hint string
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case ReasonUnknown:
		if e.Hint != "" {
			return fmt.Sprintf("unknown flag %s (did you mean %s?)", e.Flag, e.Hint)
		}
		return fmt.Sprintf("unknown flag %s", e.Flag)
	case ReasonDuplicate:
		return fmt.Sprintf("flag %s specified more than once", e.Flag)
	case ReasonMissingValue:
		return fmt.Sprintf("flag %s requires a value", e.Flag)
	case ReasonBadValue:
		return fmt.Sprintf("invalid value for flag %s: %v", e.Flag, e.Cause)
	case ReasonMisplaced:
		return fmt.Sprintf("positional argument %q after flags", e.Flag)
	}
	return fmt.Sprintf("flag parse error on %s", e.Flag)
}

func (e *ParseError) Unwrap() error { return e.Cause }
