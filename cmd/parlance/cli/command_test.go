// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecute_DispatchesSubcommand(t *testing.T) {
	ran := false
	root := &Command{
		Name: "parlance",
		Subcommands: []*Command{
			{
				Name: "run",
				Run: func(args []string) error {
					ran = true
					if len(args) != 2 || args[0] != "give" {
						t.Errorf("args = %v", args)
					}
					return nil
				},
			},
		},
	}
	if err := root.Execute([]string{"run", "give", "Alice"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !ran {
		t.Fatal("subcommand did not run")
	}
}

func TestExecute_UnknownSubcommandHint(t *testing.T) {
	root := &Command{
		Name: "parlance",
		Subcommands: []*Command{
			{Name: "complete", Run: func(args []string) error { return nil }},
		},
	}
	err := root.Execute([]string{"compelte"})
	if err == nil {
		t.Fatal("unknown subcommand accepted")
	}
	if !strings.Contains(err.Error(), `did you mean "complete"`) {
		t.Errorf("error %q lacks suggestion", err)
	}
}

func TestExecute_FlagParsing(t *testing.T) {
	var name string
	command := &Command{
		Name: "greet",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("greet", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "world", "who to greet")
			return flags
		},
		Run: func(args []string) error { return nil },
	}
	if err := command.Execute([]string{"--name", "Alice"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if name != "Alice" {
		t.Errorf("name = %q, want Alice", name)
	}
}
