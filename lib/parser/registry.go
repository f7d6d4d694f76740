// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import "fmt"

// Factory produces a context value on demand. Factories run at the
// start of a dispatch, before any component parses, so parsers and
// handlers can rely on the injected values being present.
type Factory func(ctx *Context) (any, error)

// Registry maps type tags to factories for injecting values into
// dispatch contexts. It replaces per-dispatch reflection: front ends
// register a factory per tag once, at tree-registration time, and the
// engine seeds every context from the registry.
//
// Registration is not safe for concurrent use; finish registering
// before the first dispatch, like the tree itself.
type Registry struct {
	factories map[string]Factory
	order     []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for tag. Registering the same tag twice is
// an error — injected values have exactly one producer.
func (r *Registry) Register(tag string, factory Factory) error {
	if _, exists := r.factories[tag]; exists {
		return fmt.Errorf("registry: tag %q already registered", tag)
	}
	r.factories[tag] = factory
	r.order = append(r.order, tag)
	return nil
}

// Inject runs every factory in registration order and stores the
// produced values in ctx. The first factory error aborts injection.
func (r *Registry) Inject(ctx *Context) error {
	for _, tag := range r.order {
		value, err := r.factories[tag](ctx)
		if err != nil {
			return fmt.Errorf("injecting %q: %w", tag, err)
		}
		ctx.Set(tag, value)
	}
	return nil
}
