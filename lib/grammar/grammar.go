// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"fmt"
	"strings"

	"github.com/parlance-dev/parlance/lib/flags"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/tree"
)

// Error reports a grammar string rejected during compilation.
type Error struct {
	Grammar string
	Token   string
	Reason  string
}

func (e *Error) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("grammar %q: token %q: %s", e.Grammar, e.Token, e.Reason)
	}
	return fmt.Sprintf("grammar %q: %s", e.Grammar, e.Reason)
}

// Option adjusts compilation of a single grammar string.
type Option func(*compiler)

// WithDefault attaches a default to the named optional argument.
func WithDefault(name string, def *tree.Default) Option {
	return func(c *compiler) { c.defaults[name] = def }
}

// WithSuggest overrides the suggestion provider of the named argument
// or value flag.
func WithSuggest(name string, provider parser.SuggestionProvider) Option {
	return func(c *compiler) { c.suggest[name] = provider }
}

// Parse compiles a grammar string into tree components. Every <name>
// and [name] argument, and every --flag=<name> value, must have a
// parser in bindings under that name.
func Parse(grammarString string, bindings map[string]parser.Untyped, options ...Option) ([]*tree.Component, error) {
	c := &compiler{
		grammar:  grammarString,
		bindings: bindings,
		defaults: make(map[string]*tree.Default),
		suggest:  make(map[string]parser.SuggestionProvider),
	}
	for _, option := range options {
		option(c)
	}
	return c.compile()
}

// Command compiles a grammar string directly into a registrable
// command.
func Command(grammarString string, bindings map[string]parser.Untyped, handler tree.Handler, options ...Option) (*tree.Command, error) {
	components, err := Parse(grammarString, bindings, options...)
	if err != nil {
		return nil, err
	}
	return &tree.Command{Components: components, Handler: handler}, nil
}

type compiler struct {
	grammar  string
	bindings map[string]parser.Untyped
	defaults map[string]*tree.Default
	suggest  map[string]parser.SuggestionProvider
}

func (c *compiler) fail(token, reason string) error {
	return &Error{Grammar: c.grammar, Token: token, Reason: reason}
}

func (c *compiler) compile() ([]*tree.Component, error) {
	tokens := strings.Fields(c.grammar)
	if len(tokens) == 0 {
		return nil, c.fail("", "empty grammar")
	}

	var components []*tree.Component
	var flagSpecs []*flags.Spec
	lastLiteral := -1
	seenOptional := false

	for _, token := range tokens {
		switch {
		case strings.HasPrefix(token, "--"):
			spec, err := c.flagSpec(token)
			if err != nil {
				return nil, err
			}
			flagSpecs = append(flagSpecs, spec)

		case strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">"):
			if seenOptional {
				return nil, c.fail(token, "required argument after optional argument")
			}
			component, err := c.argument(token, token[1:len(token)-1], false)
			if err != nil {
				return nil, err
			}
			components = append(components, component)

		case strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]"):
			seenOptional = true
			component, err := c.argument(token, token[1:len(token)-1], true)
			if err != nil {
				return nil, err
			}
			components = append(components, component)

		case strings.HasPrefix(token, "-"):
			return nil, c.fail(token, "short flag aliases belong after a long name, as in --force|-f")

		default:
			if len(components) > 0 && components[len(components)-1].Kind != tree.KindLiteral {
				return nil, c.fail(token, "literal after argument")
			}
			names := strings.Split(token, "|")
			for _, name := range names {
				if name == "" {
					return nil, c.fail(token, "empty literal name")
				}
			}
			components = append(components, tree.Literal(names[0], names[1:]...))
			lastLiteral = len(components) - 1
		}
	}

	if len(components) == 0 || components[0].Kind != tree.KindLiteral {
		return nil, c.fail(tokens[0], "grammar must start with a literal")
	}

	if len(flagSpecs) > 0 {
		set, err := flags.NewSet(flagSpecs...)
		if err != nil {
			return nil, c.fail("", err.Error())
		}
		insert := lastLiteral + 1
		components = append(components[:insert], append([]*tree.Component{tree.Flags(set)}, components[insert:]...)...)
	}

	return components, nil
}

func (c *compiler) argument(token, name string, optional bool) (*tree.Component, error) {
	if name == "" {
		return nil, c.fail(token, "empty argument name")
	}
	binding, ok := c.bindings[name]
	if !ok {
		return nil, c.fail(token, "no parser bound for argument "+name)
	}
	component := &tree.Component{Kind: tree.KindArgument, Name: name, Parser: binding, Optional: optional}
	if provider, ok := c.suggest[name]; ok {
		component.Suggest = provider
	}
	if def, ok := c.defaults[name]; ok {
		if !optional {
			return nil, c.fail(token, "default on required argument "+name)
		}
		component.Default = def
	}
	return component, nil
}

// flagSpec parses one flag token: --name, --name|-n, --name=<bind>,
// --name|-n=<bind>, with an optional trailing "..." for repeatable.
func (c *compiler) flagSpec(token string) (*flags.Spec, error) {
	body := strings.TrimPrefix(token, "--")
	repeatable := strings.HasSuffix(body, "...")
	if repeatable {
		body = strings.TrimSuffix(body, "...")
	}

	binding := ""
	if index := strings.IndexByte(body, '='); index >= 0 {
		value := body[index+1:]
		body = body[:index]
		if !strings.HasPrefix(value, "<") || !strings.HasSuffix(value, ">") {
			return nil, c.fail(token, "flag value must be written as --name=<binding>")
		}
		binding = value[1 : len(value)-1]
		if binding == "" {
			return nil, c.fail(token, "empty flag value binding")
		}
	}

	parts := strings.Split(body, "|")
	name := parts[0]
	if name == "" {
		return nil, c.fail(token, "empty flag name")
	}
	var aliases []string
	for _, part := range parts[1:] {
		alias := strings.TrimPrefix(part, "-")
		if len(alias) != 1 {
			return nil, c.fail(token, "flag alias must be a single character")
		}
		aliases = append(aliases, alias)
	}

	spec := &flags.Spec{Name: name, Aliases: aliases, Repeatable: repeatable}
	if binding != "" {
		p, ok := c.bindings[binding]
		if !ok {
			return nil, c.fail(token, "no parser bound for flag value "+binding)
		}
		spec.Parser = p
		if provider, ok := c.suggest[binding]; ok {
			spec.Suggest = provider
		}
	}
	return spec, nil
}
