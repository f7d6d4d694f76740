// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"context"

	"github.com/parlance-dev/parlance/lib/input"
)

// Future is a parse step that either completed immediately or is
// still resolving on another goroutine. Sequential composition (the
// aggregate, the tree walk) awaits each future before starting the
// next step, so ordering holds even when an early step suspends.
type Future[T any] struct {
	done   chan struct{}
	result Result[T]
}

// Ready returns an already-completed future.
func Ready[T any](result Result[T]) *Future[T] {
	future := &Future[T]{done: make(chan struct{})}
	future.result = result
	close(future.done)
	return future
}

// Go runs resolve on a new goroutine and returns its future.
func Go[T any](resolve func() Result[T]) *Future[T] {
	future := &Future[T]{done: make(chan struct{})}
	go func() {
		future.result = resolve()
		close(future.done)
	}()
	return future
}

// Await blocks until the future completes or ctx is cancelled.
// Cancellation abandons the wait, not the underlying work; the
// resolving goroutine finishes on its own and its result is dropped.
func (f *Future[T]) Await(ctx context.Context) Result[T] {
	select {
	case <-f.done:
		return f.result
	case <-ctx.Done():
		return Failure[T](ctx.Err())
	}
}

// Done returns a channel closed when the future completes.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Suspending builds a parser whose value resolution may block on
// external I/O (a database lookup, a remote profile fetch). The token
// is consumed from the input synchronously — cursor bookkeeping never
// waits on I/O — and resolve runs on its own goroutine.
//
// The returned parser satisfies ArgumentParser by awaiting the
// future, so it drops into any component slot; callers that want the
// future itself use [SuspendingParser.ParseFuture].
func Suspending[T any](resolve func(ctx *Context, token string) Result[T]) SuspendingParser[T] {
	return SuspendingParser[T]{resolve: resolve}
}

// SuspendingParser is the parser form returned by [Suspending].
type SuspendingParser[T any] struct {
	resolve func(ctx *Context, token string) Result[T]
}

// ParseFuture consumes one token and resolves it asynchronously.
func (p SuspendingParser[T]) ParseFuture(ctx *Context, in *input.CommandInput) *Future[T] {
	if in.IsEmpty() {
		return Ready(Failure[T](ErrInputExhausted))
	}
	token := in.ReadString()
	return Go(func() Result[T] { return p.resolve(ctx, token) })
}

// Parse implements ArgumentParser by awaiting the future.
func (p SuspendingParser[T]) Parse(ctx *Context, in *input.CommandInput) Result[T] {
	return p.ParseFuture(ctx, in).Await(context.Background())
}
