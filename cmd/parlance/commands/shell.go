// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/parlance-dev/parlance/cmd/parlance/cli"
	"github.com/parlance-dev/parlance/lib/execute"
	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/suggest"
	"github.com/parlance-dev/parlance/lib/tree"
)

func shellCommand() *cli.Command {
	var manifestPath string
	var sender string

	return &cli.Command{
		Name:    "shell",
		Summary: "Interactive shell with live completions.",
		Usage:   "parlance shell [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("shell", pflag.ContinueOnError)
			flags.StringVar(&manifestPath, "manifest", "", "command manifest file (YAML or JSONC)")
			flags.StringVar(&sender, "sender", "console", "sender identity")
			return flags
		},
		Run: func(args []string) error {
			log := &outputLog{}
			tr, err := buildTree(manifestPath, log.printf)
			if err != nil {
				return err
			}
			model := newShellModel(tr, log, sender)
			program := tea.NewProgram(model)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("shell: %w", err)
			}
			return nil
		},
	}
}

// outputLog collects handler output so the shell can render it in its
// transcript instead of letting it interleave with the TUI.
type outputLog struct {
	lines []string
}

func (l *outputLog) printf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *outputLog) drain() []string {
	lines := l.lines
	l.lines = nil
	return lines
}

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	echoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
)

// shellModel is the bubbletea model for the interactive shell: a
// single-line input, a transcript of dispatched commands and their
// output, and a completion dropdown refreshed on every keystroke.
type shellModel struct {
	field       textinput.Model
	tree        *tree.Tree
	coordinator *execute.Inline
	log         *outputLog
	sender      string

	transcript  []string
	suggestions []string
	cursor      int
}

func newShellModel(tr *tree.Tree, log *outputLog, sender string) shellModel {
	field := textinput.New()
	field.Prompt = ""
	field.Focus()

	model := shellModel{
		field:       field,
		tree:        tr,
		coordinator: execute.NewInline(execute.Config{Tree: tr}),
		log:         log,
		sender:      sender,
		cursor:      -1,
	}
	model.refreshSuggestions()
	return model
}

func (model shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (model shellModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch message.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return model, tea.Quit
		case tea.KeyEnter:
			model.dispatch()
			return model, nil
		case tea.KeyTab:
			model.acceptSuggestion()
			return model, nil
		case tea.KeyUp:
			model.moveCursor(-1)
			return model, nil
		case tea.KeyDown:
			model.moveCursor(1)
			return model, nil
		}
	}

	var command tea.Cmd
	model.field, command = model.field.Update(message)
	model.refreshSuggestions()
	return model, command
}

func (model *shellModel) refreshSuggestions() {
	ctx := parser.NewContext(consoleSender(model.sender), parser.ForSuggestions())
	candidates := model.tree.Suggest(ctx, input.New(model.field.Value()))
	model.suggestions = suggest.Texts(candidates)
	model.cursor = -1
}

func (model *shellModel) moveCursor(delta int) {
	if len(model.suggestions) == 0 {
		return
	}
	model.cursor += delta
	if model.cursor < -1 {
		model.cursor = len(model.suggestions) - 1
	}
	if model.cursor >= len(model.suggestions) {
		model.cursor = -1
	}
}

func (model *shellModel) acceptSuggestion() {
	index := model.cursor
	if index < 0 {
		if len(model.suggestions) == 0 {
			return
		}
		index = 0
	}
	model.field.SetValue(model.suggestions[index])
	model.field.CursorEnd()
	model.refreshSuggestions()
}

func (model *shellModel) dispatch() {
	line := strings.TrimSpace(model.field.Value())
	if line == "" {
		return
	}
	model.transcript = append(model.transcript, echoStyle.Render("> "+line))

	outcome, err := model.coordinator.
		Dispatch(context.Background(), consoleSender(model.sender), line).
		Wait(context.Background())
	if err == nil {
		err = outcome.Err
	}
	model.transcript = append(model.transcript, model.log.drain()...)
	if err != nil {
		model.transcript = append(model.transcript, errorStyle.Render(err.Error()))
	}

	model.field.SetValue("")
	model.refreshSuggestions()
}

func (model shellModel) View() string {
	var view strings.Builder
	for _, line := range model.transcript {
		view.WriteString(line)
		view.WriteByte('\n')
	}
	view.WriteString(promptStyle.Render("parlance> "))
	view.WriteString(model.field.View())
	view.WriteByte('\n')

	shown := model.suggestions
	const maxShown = 8
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	for i, suggestion := range shown {
		style := suggestionStyle
		if i == model.cursor {
			style = selectedStyle
		}
		view.WriteString("  " + style.Render(suggestion))
		view.WriteByte('\n')
	}
	view.WriteString(echoStyle.Render("tab: accept  up/down: select  esc: quit"))
	view.WriteByte('\n')
	return view.String()
}
