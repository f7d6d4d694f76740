// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/parlance-dev/parlance/cmd/parlance/cli"
	"github.com/parlance-dev/parlance/lib/execute"
	"github.com/parlance-dev/parlance/lib/trace"
)

func runCommand() *cli.Command {
	var manifestPath string
	var sender string
	var tracePath string
	var verbose bool

	return &cli.Command{
		Name:    "run",
		Summary: "Dispatch one command line.",
		Usage:   "parlance run [flags] <command line>",
		Examples: []cli.Example{
			{Description: "Dispatch against the built-in command set", Command: `parlance run give Alice 5`},
			{Description: "Record a dispatch trace", Command: `parlance run --trace out.ptrace give Alice 5 --force`},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
			flags.StringVar(&manifestPath, "manifest", "", "command manifest file (YAML or JSONC)")
			flags.StringVar(&sender, "sender", "console", "sender identity for permission checks")
			flags.StringVar(&tracePath, "trace", "", "append a dispatch trace record to this file")
			flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
			// The dispatched line carries its own flags; stop at the
			// first positional so they reach the engine untouched.
			flags.SetInterspersed(false)
			return flags
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("no command line given")
			}
			line := strings.Join(args, " ")
			logger := cli.NewCommandLogger(verbose).With("command", "run")

			tr, err := buildTree(manifestPath, func(format string, printArgs ...any) {
				fmt.Printf(format+"\n", printArgs...)
			})
			if err != nil {
				return err
			}

			config := execute.Config{Tree: tr, Logger: logger}
			if tracePath != "" {
				file, err := os.OpenFile(tracePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open trace file: %w", err)
				}
				defer file.Close()
				writer, err := trace.NewWriter(file)
				if err != nil {
					return err
				}
				defer writer.Close()
				config.Observer = trace.NewRecorder(writer, trace.WithLogger(logger))
			}

			coordinator := execute.NewInline(config)
			outcome, err := coordinator.
				Dispatch(context.Background(), consoleSender(sender), line).
				Wait(context.Background())
			if err != nil {
				return err
			}
			if outcome.Err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", outcome.Err)
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
