// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Manifest is a declarative command set.
type Manifest struct {
	Commands []CommandSpec `yaml:"commands" json:"commands"`
}

// CommandSpec declares one command.
type CommandSpec struct {
	// Name identifies the command for handler lookup. Defaults to
	// the grammar's leading literal.
	Name string `yaml:"name" json:"name"`

	// Grammar is the component sequence, in lib/grammar syntax.
	Grammar string `yaml:"grammar" json:"grammar"`

	// Description is shown by front ends.
	Description string `yaml:"description" json:"description"`

	// Permission is the permission node required to run the command.
	Permission string `yaml:"permission" json:"permission"`

	// Arguments binds each <name>, [name], and --flag=<name>
	// reference in the grammar to a typed parser.
	Arguments map[string]ArgumentSpec `yaml:"arguments" json:"arguments"`
}

// ArgumentSpec declares one argument binding.
type ArgumentSpec struct {
	// Type is one of: string, int, float, bool, duration, enum,
	// uuid.
	Type string `yaml:"type" json:"type"`

	// Greedy makes a string argument consume the rest of the input.
	Greedy bool `yaml:"greedy" json:"greedy"`

	// Quoted makes a string argument require double quotes.
	Quoted bool `yaml:"quoted" json:"quoted"`

	// Min and Max bound int and float arguments.
	Min *float64 `yaml:"min" json:"min"`
	Max *float64 `yaml:"max" json:"max"`

	// Options enumerate the values of an enum argument.
	Options []string `yaml:"options" json:"options"`

	// Default, on an optional argument, is parsed through the
	// argument's own parser when the input omits it.
	Default string `yaml:"default" json:"default"`

	// Suggest overrides the parser's completion candidates.
	Suggest []string `yaml:"suggest" json:"suggest"`
}

// name resolves the handler-lookup name.
func (c *CommandSpec) name() string {
	if c.Name != "" {
		return c.Name
	}
	first := strings.Fields(c.Grammar)
	if len(first) == 0 {
		return ""
	}
	literal, _, _ := strings.Cut(first[0], "|")
	return literal
}

var argumentTypes = map[string]bool{
	"string": true, "int": true, "float": true, "bool": true,
	"duration": true, "enum": true, "uuid": true,
}

// Validate checks the manifest structurally, before any parser
// construction.
func (m *Manifest) Validate() error {
	var errs []error
	if len(m.Commands) == 0 {
		errs = append(errs, fmt.Errorf("manifest declares no commands"))
	}
	seen := make(map[string]bool)
	for i, command := range m.Commands {
		name := command.name()
		if command.Grammar == "" {
			errs = append(errs, fmt.Errorf("command %d: grammar is required", i))
		}
		if name == "" {
			errs = append(errs, fmt.Errorf("command %d: name is required", i))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("command %q: duplicate name", name))
		}
		seen[name] = true
		for argName, arg := range command.Arguments {
			if !argumentTypes[arg.Type] {
				errs = append(errs, fmt.Errorf("command %q: argument %q: unknown type %q", name, argName, arg.Type))
			}
			if arg.Type == "enum" && len(arg.Options) == 0 {
				errs = append(errs, fmt.Errorf("command %q: argument %q: enum requires options", name, argName))
			}
			if arg.Type != "enum" && len(arg.Options) > 0 {
				errs = append(errs, fmt.Errorf("command %q: argument %q: options only apply to enum", name, argName))
			}
			if (arg.Greedy || arg.Quoted) && arg.Type != "string" {
				errs = append(errs, fmt.Errorf("command %q: argument %q: greedy/quoted only apply to string", name, argName))
			}
		}
	}
	return errors.Join(errs...)
}

// Load reads and validates a manifest file. Files ending in .json or
// .jsonc are treated as JSON with comments; everything else as YAML.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".jsonc") {
		return ParseJSONC(data)
	}
	return ParseYAML(data)
}

// ParseYAML parses and validates a YAML manifest.
func ParseYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse yaml: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &m, nil
}

// ParseJSONC parses and validates a JSONC manifest (comments and
// trailing commas allowed).
func ParseJSONC(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("manifest: parse jsonc: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &m, nil
}
