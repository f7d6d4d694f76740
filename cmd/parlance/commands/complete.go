// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/parlance-dev/parlance/cmd/parlance/cli"
	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
)

func completeCommand() *cli.Command {
	var manifestPath string
	var sender string

	return &cli.Command{
		Name:    "complete",
		Summary: "Print completions for a partial command line.",
		Usage:   "parlance complete [flags] <partial command line>",
		Examples: []cli.Example{
			{Description: "Complete a partial argument", Command: `parlance complete give A`},
			{Description: "Complete flag names", Command: `parlance complete "give Alice 5 --"`},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("complete", pflag.ContinueOnError)
			flags.StringVar(&manifestPath, "manifest", "", "command manifest file (YAML or JSONC)")
			flags.StringVar(&sender, "sender", "console", "sender identity for permission filtering")
			flags.SetInterspersed(false)
			return flags
		},
		Run: func(args []string) error {
			line := strings.Join(args, " ")
			tr, err := buildTree(manifestPath, func(format string, printArgs ...any) {})
			if err != nil {
				return err
			}

			ctx := parser.NewContext(consoleSender(sender), parser.ForSuggestions())
			for _, suggestion := range tr.Suggest(ctx, input.New(line)) {
				fmt.Println(suggestion.Text)
			}
			return nil
		},
	}
}
