// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"sync/atomic"

	"github.com/parlance-dev/parlance/lib/flags"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/suggest"
)

// PermissionFunc decides whether sender holds the named permission.
type PermissionFunc func(sender parser.Sender, permission string) bool

// Config carries the tree-wide policies fixed at construction.
type Config struct {
	// FlagMode selects the flag scanning discipline. The zero value
	// is StrictTrailing.
	FlagMode flags.Mode
	// Permissions is consulted for commands that declare a
	// permission node. Nil denies all such commands.
	Permissions PermissionFunc
	// Suggestions overrides the processor chain applied to every
	// completion result. Nil installs the default chain.
	Suggestions *suggest.Chain
}

// Tree is the command trie. Register commands, then dispatch; the
// first dispatch or suggestion request freezes the tree for
// concurrent use.
type Tree struct {
	root   *node
	config Config
	frozen atomic.Bool
}

// node is one trie position. Literal children are indexed by name and
// alias for exact-match lookup and kept in registration order for
// deterministic suggestion output; argument children keep
// registration order because it is the documented tie-break.
type node struct {
	component *Component
	parent    *node

	literalIndex  map[string]*node
	literalOrder  []*node
	argumentOrder []*node
	flagSet       *flags.Set

	command *Command
}

func newNode(component *Component, parent *node) *node {
	return &node{
		component:    component,
		parent:       parent,
		literalIndex: make(map[string]*node),
	}
}

// New builds an empty tree.
func New(config Config) *Tree {
	if config.Suggestions == nil {
		config.Suggestions = suggest.NewChain()
	}
	return &Tree{root: newNode(nil, nil), config: config}
}

// Register adds a command, sharing trie nodes with previously
// registered commands along the common component prefix.
func (t *Tree) Register(command *Command) error {
	if t.frozen.Load() {
		return ErrFrozen
	}
	if err := command.validate(); err != nil {
		return err
	}

	current := t.root
	for _, component := range command.Components {
		next, err := t.descend(current, component, command)
		if err != nil {
			return err
		}
		current = next
	}
	if current.command != nil {
		return &RegistrationError{Command: command.Name(), Reason: "duplicate command sequence"}
	}
	current.command = command
	return nil
}

// MustRegister is Register for static command sets assembled at
// startup.
func (t *Tree) MustRegister(command *Command) {
	if err := t.Register(command); err != nil {
		panic(err)
	}
}

// Freeze makes the tree immutable without waiting for the first
// dispatch.
func (t *Tree) Freeze() { t.frozen.Store(true) }

// descend finds or creates the child of current for component.
func (t *Tree) descend(current *node, component *Component, command *Command) (*node, error) {
	fail := func(reason string) error {
		return &RegistrationError{Command: command.Name(), Reason: reason}
	}
	switch component.Kind {
	case KindLiteral:
		if existing, ok := current.literalIndex[component.Name]; ok {
			if existing.component.Kind != KindLiteral || existing.component.Name != component.Name {
				return nil, fail("literal " + component.Name + " collides with an alias of another literal")
			}
			return existing, nil
		}
		for _, alias := range append([]string{component.Name}, component.Aliases...) {
			if _, taken := current.literalIndex[alias]; taken {
				return nil, fail("literal name or alias " + alias + " already registered at this position")
			}
		}
		child := newNode(component, current)
		current.literalIndex[component.Name] = child
		for _, alias := range component.Aliases {
			current.literalIndex[alias] = child
		}
		current.literalOrder = append(current.literalOrder, child)
		return child, nil

	case KindArgument:
		for _, existing := range current.argumentOrder {
			if existing.component.Name == component.Name {
				// Same-named argument at the same position is
				// treated as the shared spine of sibling commands.
				return existing, nil
			}
		}
		child := newNode(component, current)
		current.argumentOrder = append(current.argumentOrder, child)
		return child, nil

	case KindFlags:
		if current.flagSet != nil {
			if current.flagSet != component.Flags {
				return nil, fail("conflicting flag sets at the same position")
			}
			return current, nil
		}
		current.flagSet = component.Flags
		return current, nil

	default:
		return nil, fail("unknown component kind")
	}
}

// firstCommand finds the first-registered command at or below n.
func (n *node) firstCommand() *Command {
	if n.command != nil {
		return n.command
	}
	for _, child := range n.literalOrder {
		if cmd := child.firstCommand(); cmd != nil {
			return cmd
		}
	}
	for _, child := range n.argumentOrder {
		if cmd := child.firstCommand(); cmd != nil {
			return cmd
		}
	}
	return nil
}

// anyPermitted reports whether sender may run at least one command at
// or below n. Suggestion walks use it to hide entire subtrees the
// sender cannot act on.
func (n *node) anyPermitted(sender parser.Sender, check PermissionFunc) bool {
	if n.command != nil && n.command.permitted(sender, check) {
		return true
	}
	for _, child := range n.literalOrder {
		if child.anyPermitted(sender, check) {
			return true
		}
	}
	for _, child := range n.argumentOrder {
		if child.anyPermitted(sender, check) {
			return true
		}
	}
	return false
}

// rootNames lists the primary names of the root literals, for
// closest-match hints.
func (t *Tree) rootNames() []string {
	names := make([]string, 0, len(t.root.literalOrder))
	for _, child := range t.root.literalOrder {
		names = append(names, child.component.Name)
	}
	return names
}
