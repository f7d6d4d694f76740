// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"math"

	"github.com/parlance-dev/parlance/lib/grammar"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/tree"
)

// Build compiles the manifest into registrable commands. handlers
// maps command names to their implementations; every declared command
// must have one.
func (m *Manifest) Build(handlers map[string]tree.Handler) ([]*tree.Command, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	commands := make([]*tree.Command, 0, len(m.Commands))
	for _, spec := range m.Commands {
		name := spec.name()
		handler, ok := handlers[name]
		if !ok {
			return nil, fmt.Errorf("manifest: command %q: no handler", name)
		}

		bindings := make(map[string]parser.Untyped, len(spec.Arguments))
		var options []grammar.Option
		for argName, arg := range spec.Arguments {
			bound, err := buildParser(arg)
			if err != nil {
				return nil, fmt.Errorf("manifest: command %q: argument %q: %w", name, argName, err)
			}
			bindings[argName] = bound
			if arg.Default != "" {
				options = append(options, grammar.WithDefault(argName, &tree.Default{Literal: arg.Default}))
			}
			if len(arg.Suggest) > 0 {
				options = append(options, grammar.WithSuggest(argName, parser.StaticSuggestions(arg.Suggest...)))
			}
		}

		command, err := grammar.Command(spec.Grammar, bindings, handler, options...)
		if err != nil {
			return nil, fmt.Errorf("manifest: command %q: %w", name, err)
		}
		command.Permission = spec.Permission
		command.Description = spec.Description
		commands = append(commands, command)
	}
	return commands, nil
}

// Register builds the manifest and registers every command.
func (m *Manifest) Register(tr *tree.Tree, handlers map[string]tree.Handler) error {
	commands, err := m.Build(handlers)
	if err != nil {
		return err
	}
	for _, command := range commands {
		if err := tr.Register(command); err != nil {
			return fmt.Errorf("manifest: %w", err)
		}
	}
	return nil
}

// buildParser constructs the typed parser an argument spec declares.
func buildParser(arg ArgumentSpec) (parser.Untyped, error) {
	switch arg.Type {
	case "string":
		switch {
		case arg.Greedy:
			return parser.Erase(parser.Greedy()), nil
		case arg.Quoted:
			return parser.Erase(parser.Quoted()), nil
		default:
			return parser.Erase(parser.String()), nil
		}
	case "int":
		min, max := int64(math.MinInt64), int64(math.MaxInt64)
		if arg.Min != nil {
			min = int64(*arg.Min)
		}
		if arg.Max != nil {
			max = int64(*arg.Max)
		}
		return parser.Erase(parser.IntBetween(min, max)), nil
	case "float":
		min, max := math.Inf(-1), math.Inf(1)
		if arg.Min != nil {
			min = *arg.Min
		}
		if arg.Max != nil {
			max = *arg.Max
		}
		return parser.Erase(parser.FloatBetween(min, max)), nil
	case "bool":
		return parser.Erase(parser.Bool()), nil
	case "duration":
		return parser.Erase(parser.Duration()), nil
	case "enum":
		return parser.Erase(parser.Enum(arg.Options...)), nil
	case "uuid":
		return parser.Erase(parser.UUID()), nil
	default:
		return nil, fmt.Errorf("unknown type %q", arg.Type)
	}
}
