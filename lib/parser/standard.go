// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/suggest"
)

// StringMode selects how much input a string parser consumes.
type StringMode int

const (
	// SingleToken consumes one token. A double-quoted run counts as
	// one token, per the input's quoting convention.
	SingleToken StringMode = iota
	// GreedyString consumes everything that remains.
	GreedyString
	// QuotedString consumes a double-quoted run as one value, or a
	// single token when the input is not quoted.
	QuotedString
)

// StringParser parses string arguments.
type StringParser struct {
	Mode StringMode
}

// String returns a single-token string parser. A double-quoted run is
// consumed as one token with the quotes removed.
func String() StringParser { return StringParser{Mode: SingleToken} }

// Greedy returns a parser consuming the whole remaining input.
func Greedy() StringParser { return StringParser{Mode: GreedyString} }

// Quoted returns a parser accepting quoted runs or single tokens.
func Quoted() StringParser { return StringParser{Mode: QuotedString} }

// Parse implements ArgumentParser.
func (p StringParser) Parse(ctx *Context, in *input.CommandInput) Result[string] {
	if in.IsEmpty() {
		return Failure[string](fmt.Errorf("expected a string, input is empty"))
	}
	if p.Mode == GreedyString {
		return Success(in.ReadRemaining())
	}
	if next, err := in.Peek(1); err == nil && next == `"` {
		return p.parseQuoted(in)
	}
	return Success(in.ReadString())
}

// parseQuoted consumes a double-quoted run including both quotes plus
// a single trailing separator space. The cursor does not move when the
// run is unterminated.
func (p StringParser) parseQuoted(in *input.CommandInput) Result[string] {
	remaining := in.Remaining()
	end := strings.IndexByte(remaining[1:], '"')
	if end < 0 {
		return Failure[string](fmt.Errorf("unterminated quoted string"))
	}
	value := remaining[1 : 1+end]
	if _, err := in.Read(end + 2); err != nil {
		return Failure[string](err)
	}
	in.SkipWhitespace(1)
	return Success(value)
}

// IntParser parses signed integers with inclusive bounds.
type IntParser struct {
	Min, Max int64
}

// Int returns an unbounded integer parser.
func Int() IntParser { return IntParser{Min: math.MinInt64, Max: math.MaxInt64} }

// IntBetween returns an integer parser accepting min through max
// inclusive.
func IntBetween(min, max int64) IntParser { return IntParser{Min: min, Max: max} }

// Parse implements ArgumentParser.
func (p IntParser) Parse(ctx *Context, in *input.CommandInput) Result[int64] {
	if in.IsEmpty() {
		return Failure[int64](fmt.Errorf("expected an integer, input is empty"))
	}
	if !in.IsValidInt() {
		return Failure[int64](fmt.Errorf("%q is not an integer", in.PeekString()))
	}
	value, err := in.ReadInt()
	if err != nil {
		return Failure[int64](err)
	}
	if value < p.Min || value > p.Max {
		return Failure[int64](fmt.Errorf("%d is outside the allowed range [%d, %d]", value, p.Min, p.Max))
	}
	return Success(value)
}

// FloatParser parses floats with inclusive bounds.
type FloatParser struct {
	Min, Max float64
}

// Float returns an unbounded float parser.
func Float() FloatParser { return FloatParser{Min: math.Inf(-1), Max: math.Inf(1)} }

// FloatBetween returns a float parser accepting min through max
// inclusive.
func FloatBetween(min, max float64) FloatParser { return FloatParser{Min: min, Max: max} }

// Parse implements ArgumentParser.
func (p FloatParser) Parse(ctx *Context, in *input.CommandInput) Result[float64] {
	if in.IsEmpty() {
		return Failure[float64](fmt.Errorf("expected a number, input is empty"))
	}
	if !in.IsValidFloat() {
		return Failure[float64](fmt.Errorf("%q is not a number", in.PeekString()))
	}
	value, err := in.ReadFloat()
	if err != nil {
		return Failure[float64](err)
	}
	if value < p.Min || value > p.Max {
		return Failure[float64](fmt.Errorf("%g is outside the allowed range [%g, %g]", value, p.Min, p.Max))
	}
	return Success(value)
}

// BoolParser parses boolean literals (true/false, yes/no, on/off,
// 1/0, case-insensitive).
type BoolParser struct{}

// Bool returns a boolean parser.
func Bool() BoolParser { return BoolParser{} }

// Parse implements ArgumentParser.
func (p BoolParser) Parse(ctx *Context, in *input.CommandInput) Result[bool] {
	if in.IsEmpty() {
		return Failure[bool](fmt.Errorf("expected a boolean, input is empty"))
	}
	if !in.IsValidBool() {
		return Failure[bool](fmt.Errorf("%q is not a boolean", in.PeekString()))
	}
	value, err := in.ReadBool()
	if err != nil {
		return Failure[bool](err)
	}
	return Success(value)
}

// Suggestions implements SuggestionProvider.
func (p BoolParser) Suggestions(ctx *Context, in *input.CommandInput) []suggest.Suggestion {
	return suggest.FromTexts([]string{"true", "false"})
}

// DurationParser parses Go duration literals ("300ms", "2h45m").
type DurationParser struct{}

// Duration returns a duration parser.
func Duration() DurationParser { return DurationParser{} }

// Parse implements ArgumentParser.
func (p DurationParser) Parse(ctx *Context, in *input.CommandInput) Result[time.Duration] {
	if in.IsEmpty() {
		return Failure[time.Duration](fmt.Errorf("expected a duration, input is empty"))
	}
	token := in.PeekString()
	value, err := time.ParseDuration(token)
	if err != nil {
		return Failure[time.Duration](fmt.Errorf("%q is not a duration: %w", token, err))
	}
	in.ReadString()
	return Success(value)
}

// EnumParser accepts one of a fixed set of literals.
type EnumParser struct {
	Options         []string
	CaseInsensitive bool
}

// Enum returns a case-insensitive enum parser over options.
func Enum(options ...string) EnumParser {
	return EnumParser{Options: options, CaseInsensitive: true}
}

// Parse implements ArgumentParser.
func (p EnumParser) Parse(ctx *Context, in *input.CommandInput) Result[string] {
	if in.IsEmpty() {
		return Failure[string](fmt.Errorf("expected one of %s, input is empty", strings.Join(p.Options, "|")))
	}
	token := in.PeekString()
	for _, option := range p.Options {
		if token == option || (p.CaseInsensitive && strings.EqualFold(token, option)) {
			in.ReadString()
			return Success(option)
		}
	}
	return Failure[string](fmt.Errorf("%q is not one of %s", token, strings.Join(p.Options, "|")))
}

// Suggestions implements SuggestionProvider.
func (p EnumParser) Suggestions(ctx *Context, in *input.CommandInput) []suggest.Suggestion {
	return suggest.FromTexts(p.Options)
}

// UUIDParser parses RFC 4122 UUIDs.
type UUIDParser struct{}

// UUID returns a UUID parser.
func UUID() UUIDParser { return UUIDParser{} }

// Parse implements ArgumentParser.
func (p UUIDParser) Parse(ctx *Context, in *input.CommandInput) Result[uuid.UUID] {
	if in.IsEmpty() {
		return Failure[uuid.UUID](fmt.Errorf("expected a UUID, input is empty"))
	}
	token := in.PeekString()
	value, err := uuid.Parse(token)
	if err != nil {
		return Failure[uuid.UUID](fmt.Errorf("%q is not a UUID: %w", token, err))
	}
	in.ReadString()
	return Success(value)
}
