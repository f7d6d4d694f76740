// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the parlance binary's command tree.
package commands

import (
	"github.com/parlance-dev/parlance/cmd/parlance/cli"
)

// Root returns the top-level command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "parlance",
		Summary: "Command dispatch and completion engine.",
		Description: "Parlance parses, completes, and dispatches command lines against\n" +
			"a registered command tree. The demo command set is built in; pass\n" +
			"--manifest to load your own.",
		Subcommands: []*cli.Command{
			runCommand(),
			completeCommand(),
			shellCommand(),
		},
	}
}
