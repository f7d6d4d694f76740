// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package parser

// Result is the outcome of one parse: a typed value or a failure.
// Exactly one of the two is set; the zero Result is a success holding
// the zero value, which parsers should never return — use [Success]
// and [Failure].
type Result[T any] struct {
	value T
	err   error
}

// Success returns a successful result holding value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure returns a failed result holding err.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Ok reports whether the result is a success.
func (r Result[T]) Ok() bool { return r.err == nil }

// Value returns the parsed value. Only meaningful when Ok.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure cause, or nil for a success.
func (r Result[T]) Err() error { return r.err }

// Unpack splits the result into Go's conventional (value, error) pair.
func (r Result[T]) Unpack() (T, error) { return r.value, r.err }

// MapResult transforms a success value, passing failures through
// unchanged.
func MapResult[T, U any](r Result[T], transform func(T) U) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return Success(transform(r.value))
}
