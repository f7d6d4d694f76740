// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package tree

import "strings"

// Syntax reconstructs the usage string of a command from its
// components: literals verbatim, required arguments in angle
// brackets, optional arguments in square brackets.
func Syntax(command *Command) string {
	var parts []string
	for _, component := range command.Components {
		if display := componentSyntax(component); display != "" {
			parts = append(parts, display)
		}
	}
	return strings.Join(parts, " ")
}

func componentSyntax(component *Component) string {
	switch component.Kind {
	case KindLiteral:
		return component.Name
	case KindArgument:
		if component.Optional {
			return "[" + component.Name + "]"
		}
		return "<" + component.Name + ">"
	case KindFlags:
		return "[flags]"
	default:
		return ""
	}
}

// nearestSyntax is the usage string shown in syntax errors raised at
// n: the first-registered command reachable from there.
func (n *node) nearestSyntax() string {
	if cmd := n.firstCommand(); cmd != nil {
		return Syntax(cmd)
	}
	return ""
}
