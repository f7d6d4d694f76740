// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package flags

import (
	"fmt"
	"strings"

	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/suggest"
)

// Mode selects where flags may appear relative to positional
// arguments.
type Mode int

const (
	// StrictTrailing requires every flag to follow the positional
	// arguments.
	StrictTrailing Mode = iota
	// Liberal accepts flags before, between, or after positional
	// arguments.
	Liberal
)

// Spec declares one flag.
type Spec struct {
	// Name is the long name, without dashes.
	Name string

	// Aliases are single-character short names ("-n"). Presence-flag
	// aliases may be bundled ("-abc").
	Aliases []string

	// Parser parses the flag's value from the following token. Nil
	// declares a presence flag.
	Parser parser.Untyped

	// Repeatable allows the flag to appear multiple times. Presence
	// flags accumulate a count, value flags an ordered list.
	Repeatable bool

	// Suggest overrides the value parser's suggestion provider.
	Suggest parser.SuggestionProvider

	// Description is shown by front ends.
	Description string
}

// HasValue reports whether the flag consumes a value token.
func (s *Spec) HasValue() bool { return s.Parser != nil }

// Set is an immutable collection of flag specs attached to a command.
type Set struct {
	specs   []*Spec
	byName  map[string]*Spec
	byAlias map[string]*Spec
}

// NewSet builds a Set. Names and aliases must be unique within the
// set; aliases must be a single character.
func NewSet(specs ...*Spec) (*Set, error) {
	set := &Set{
		byName:  make(map[string]*Spec),
		byAlias: make(map[string]*Spec),
	}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("flag requires a name")
		}
		if strings.HasPrefix(spec.Name, "-") {
			return nil, fmt.Errorf("flag name %q must not include dashes", spec.Name)
		}
		if _, exists := set.byName[spec.Name]; exists {
			return nil, fmt.Errorf("duplicate flag %q", spec.Name)
		}
		set.byName[spec.Name] = spec
		for _, alias := range spec.Aliases {
			if len(alias) != 1 {
				return nil, fmt.Errorf("flag %q alias %q must be a single character", spec.Name, alias)
			}
			if _, exists := set.byAlias[alias]; exists {
				return nil, fmt.Errorf("duplicate flag alias %q", alias)
			}
			set.byAlias[alias] = spec
		}
		set.specs = append(set.specs, spec)
	}
	return set, nil
}

// Empty reports whether the set declares no flags.
func (s *Set) Empty() bool { return s == nil || len(s.specs) == 0 }

// Specs returns the declared flags in declaration order.
func (s *Set) Specs() []*Spec {
	if s == nil {
		return nil
	}
	return s.specs
}

// Lookup returns the spec for a long name.
func (s *Set) Lookup(name string) (*Spec, bool) {
	spec, ok := s.byName[name]
	return spec, ok
}

// LookupAlias returns the spec for a single-character alias.
func (s *Set) LookupAlias(alias string) (*Spec, bool) {
	spec, ok := s.byAlias[alias]
	return spec, ok
}

// contextKey namespaces flag values in the dispatch context so they
// never collide with positional component names.
func contextKey(name string) string { return "flag:" + name }

// Present reports whether the flag appeared at least once.
func Present(ctx *parser.Context, name string) bool {
	return Count(ctx, name) > 0 || ctx.Has(contextKey(name))
}

// Count returns how many times a presence flag appeared.
func Count(ctx *parser.Context, name string) int {
	count, _ := parser.Get[int](ctx, contextKey(name))
	return count
}

// Value returns the parsed value of a non-repeatable value flag.
func Value[T any](ctx *parser.Context, name string) (T, bool) {
	return parser.Get[T](ctx, contextKey(name))
}

// Values returns the ordered values of a repeatable value flag.
func Values[T any](ctx *parser.Context, name string) []T {
	raw, ok := parser.Get[[]any](ctx, contextKey(name))
	if !ok {
		return nil
	}
	values := make([]T, 0, len(raw))
	for _, value := range raw {
		if typed, ok := value.(T); ok {
			values = append(values, typed)
		}
	}
	return values
}

// IsFlagToken reports whether a token is flag-shaped: a dash prefix
// followed by a non-digit. Bare "-" and negative numbers are
// positional.
func IsFlagToken(token string) bool {
	if len(token) < 2 || token[0] != '-' {
		return false
	}
	rest := token[1:]
	if rest[0] == '-' {
		return len(rest) > 1
	}
	return rest[0] < '0' || rest[0] > '9'
}

// isSeparator reports whether b separates tokens.
func isSeparator(b byte) bool { return b == ' ' || b == '\t' }

// rawToken returns the token at the start of text: a double-quoted run
// including both quotes (an unterminated run extends to the end of
// input), or a run of non-whitespace bytes.
func rawToken(text string) string {
	if text[0] == '"' {
		if end := strings.IndexByte(text[1:], '"'); end >= 0 {
			return text[:end+2]
		}
		return text
	}
	for i := 0; i < len(text); i++ {
		if isSeparator(text[i]) {
			return text[:i]
		}
	}
	return text
}

// unquote strips the surrounding double quotes from a quoted run.
// Unquoted tokens pass through unchanged.
func unquote(token string) string {
	if len(token) == 0 || token[0] != '"' {
		return token
	}
	token = token[1:]
	if len(token) > 0 && token[len(token)-1] == '"' {
		token = token[:len(token)-1]
	}
	return token
}

// Parse scans the remaining input for flag tokens, parses and removes
// each, and returns the residual positional text. The scan works over
// spans of the original string: text that is not a flag token or a
// flag value is preserved verbatim, quoting included, and spans
// separated by removed flags are rejoined with a single space. The
// whole remaining input is consumed from in; the caller matches
// positionals against the residual.
func (s *Set) Parse(ctx *parser.Context, in *input.CommandInput, mode Mode) (string, error) {
	text := in.ReadRemaining()
	scan := &scanState{set: s, ctx: ctx, mode: mode}

	var spans [][2]int
	i := 0
	for i < len(text) {
		sepStart := i
		for i < len(text) && isSeparator(text[i]) {
			i++
		}
		if i >= len(text) {
			break
		}
		start := i
		token := rawToken(text[i:])
		i += len(token)

		if !IsFlagToken(token) {
			if mode == StrictTrailing && scan.sawFlag {
				return "", &ParseError{
					Flag:   token,
					Reason: ReasonMisplaced,
				}
			}
			if len(spans) > 0 && spans[len(spans)-1][1] == sepStart {
				// Adjacent to the previous kept span: extend it so the
				// original separators survive untouched.
				spans[len(spans)-1][1] = i
			} else {
				spans = append(spans, [2]int{start, i})
			}
			continue
		}
		consumed, err := scan.parseFlagToken(token, text[i:])
		if err != nil {
			return "", err
		}
		i += consumed
	}

	scan.store()
	parts := make([]string, len(spans))
	for index, span := range spans {
		parts[index] = text[span[0]:span[1]]
	}
	return strings.Join(parts, " "), nil
}

// scanState accumulates one flag scan.
type scanState struct {
	set     *Set
	ctx     *parser.Context
	mode    Mode
	sawFlag bool

	counts []flagCount
	values []flagValue
}

type flagCount struct {
	spec  *Spec
	count int
}

type flagValue struct {
	spec   *Spec
	values []any
}

// parseFlagToken handles one flag-shaped token. tail holds the text
// after it; the return value is how many bytes of tail were consumed
// as the flag's value.
func (s *scanState) parseFlagToken(token, tail string) (int, error) {
	s.sawFlag = true

	if strings.HasPrefix(token, "--") {
		name := token[2:]
		inlineValue := ""
		hasInline := false
		if index := strings.IndexByte(name, '='); index >= 0 {
			inlineValue = name[index+1:]
			name = name[:index]
			hasInline = true
		}
		spec, ok := s.set.byName[name]
		if !ok {
			return 0, s.unknown("--" + name)
		}
		return s.applyFlag(spec, "--"+name, inlineValue, hasInline, tail)
	}

	aliases := token[1:]
	if len(aliases) == 1 {
		spec, ok := s.set.byAlias[aliases]
		if !ok {
			return 0, s.unknown(token)
		}
		return s.applyFlag(spec, token, "", false, tail)
	}

	// Bundled aliases: every character must name a presence flag.
	for _, alias := range strings.Split(aliases, "") {
		spec, ok := s.set.byAlias[alias]
		if !ok {
			return 0, s.unknown("-" + alias)
		}
		if spec.HasValue() {
			return 0, &ParseError{
				Flag:   "-" + alias,
				Reason: ReasonBadValue,
				Cause:  fmt.Errorf("value flag cannot appear in a bundle %q", token),
			}
		}
		if err := s.recordPresence(spec, "-"+alias); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

// applyFlag records one occurrence of spec, consuming a value token
// from tail when needed. Returns how many bytes of tail were consumed.
func (s *scanState) applyFlag(spec *Spec, display, inlineValue string, hasInline bool, tail string) (int, error) {
	if !spec.HasValue() {
		if hasInline {
			return 0, &ParseError{
				Flag:   display,
				Reason: ReasonBadValue,
				Cause:  fmt.Errorf("flag takes no value"),
			}
		}
		return 0, s.recordPresence(spec, display)
	}

	token := inlineValue
	consumed := 0
	if !hasInline {
		skip := 0
		for skip < len(tail) && isSeparator(tail[skip]) {
			skip++
		}
		if skip >= len(tail) {
			return 0, &ParseError{Flag: display, Reason: ReasonMissingValue}
		}
		token = rawToken(tail[skip:])
		consumed = skip + len(token)
	}

	value, err := s.parseValue(spec, token)
	if err != nil {
		return 0, &ParseError{Flag: display, Reason: ReasonBadValue, Cause: err}
	}
	if err := s.recordValue(spec, display, value); err != nil {
		return 0, err
	}
	return consumed, nil
}

// parseValue runs the value parser over one token. A double-quoted run
// is a single value unit: the parser sees the inner text first, then
// the raw run with quotes intact, so quote-aware parsers can frame the
// unit themselves.
func (s *scanState) parseValue(spec *Spec, token string) (any, error) {
	inner := unquote(token)
	value, err := s.parseUnit(spec, inner)
	if err == nil {
		return value, nil
	}
	if inner != token {
		if value, rawErr := s.parseUnit(spec, token); rawErr == nil {
			return value, nil
		}
	}
	return nil, err
}

// parseUnit applies the value parser to one framed token, requiring
// full consumption.
func (s *scanState) parseUnit(spec *Spec, token string) (any, error) {
	valueInput := input.New(token)
	value, err := spec.Parser.ParseUntyped(s.ctx, valueInput)
	if err != nil {
		return nil, err
	}
	if valueInput.HasRemaining() {
		return nil, fmt.Errorf("trailing input %q after value", valueInput.Remaining())
	}
	return value, nil
}

// recordPresence counts one occurrence of a presence flag.
func (s *scanState) recordPresence(spec *Spec, display string) error {
	for i := range s.counts {
		if s.counts[i].spec == spec {
			if !spec.Repeatable {
				return &ParseError{Flag: display, Reason: ReasonDuplicate}
			}
			s.counts[i].count++
			return nil
		}
	}
	s.counts = append(s.counts, flagCount{spec: spec, count: 1})
	return nil
}

// recordValue appends one parsed value of a value flag.
func (s *scanState) recordValue(spec *Spec, display string, value any) error {
	for i := range s.values {
		if s.values[i].spec == spec {
			if !spec.Repeatable {
				return &ParseError{Flag: display, Reason: ReasonDuplicate}
			}
			s.values[i].values = append(s.values[i].values, value)
			return nil
		}
	}
	s.values = append(s.values, flagValue{spec: spec, values: []any{value}})
	return nil
}

// store writes the accumulated flag results into the dispatch
// context: counts for presence flags, the bare value for
// non-repeatable value flags, ordered []any for repeatable ones.
func (s *scanState) store() {
	for _, entry := range s.counts {
		s.ctx.Set(contextKey(entry.spec.Name), entry.count)
	}
	for _, entry := range s.values {
		if entry.spec.Repeatable {
			s.ctx.Set(contextKey(entry.spec.Name), entry.values)
			continue
		}
		s.ctx.Set(contextKey(entry.spec.Name), entry.values[0])
	}
}

// unknown builds the unknown-flag error with a closest-match hint.
func (s *scanState) unknown(token string) error {
	return &ParseError{
		Flag:   token,
		Reason: ReasonUnknown,
		Hint:   s.set.closest(strings.TrimLeft(token, "-")),
	}
}

// closest returns the best "did you mean" candidate for an unknown
// flag name, formatted with the appropriate prefix.
func (s *Set) closest(name string) string {
	var defined []string
	for _, spec := range s.specs {
		defined = append(defined, spec.Name)
		defined = append(defined, spec.Aliases...)
	}
	best := suggest.Closest(name, defined)
	if best == "" {
		return ""
	}
	if len(best) == 1 {
		return "-" + best
	}
	return "--" + best
}
