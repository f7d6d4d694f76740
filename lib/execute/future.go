// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package execute

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/tree"
)

// ErrDiscarded is returned by Wait on a future whose caller gave up
// the result before it resolved.
var ErrDiscarded = errors.New("dispatch result discarded")

// Outcome is the resolved state of one dispatch.
type Outcome struct {
	// Context is the dispatch context with every parsed value and
	// parsing record, present even when Err is set, as far as the
	// walk got.
	Context *parser.Context

	// Command is the matched command, nil when matching failed.
	Command *tree.Command

	// Err is the match or handler failure, nil on success.
	Err error
}

// Future is the pending result of one dispatch. It resolves exactly
// once; Wait, Done and Discard are safe from any goroutine.
type Future struct {
	once      sync.Once
	done      chan struct{}
	outcome   Outcome
	discarded atomic.Bool
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve delivers the outcome. Later calls are ignored.
func (f *Future) resolve(outcome Outcome) {
	f.once.Do(func() {
		f.outcome = outcome
		close(f.done)
	})
}

// resolved builds an already-delivered future, used by the inline
// coordinator.
func resolved(outcome Outcome) *Future {
	f := newFuture()
	f.resolve(outcome)
	return f
}

// Wait blocks until the dispatch resolves or ctx is cancelled.
// Cancellation abandons the wait; the dispatch itself keeps running
// and the future may still be waited on again.
func (f *Future) Wait(ctx context.Context) (Outcome, error) {
	if f.discarded.Load() {
		return Outcome{}, ErrDiscarded
	}
	select {
	case <-f.done:
		return f.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

// Done is closed when the dispatch has resolved.
func (f *Future) Done() <-chan struct{} { return f.done }

// Discard marks the result as unwanted. The dispatch still runs to
// completion; its outcome is dropped.
func (f *Future) Discard() { f.discarded.Store(true) }
