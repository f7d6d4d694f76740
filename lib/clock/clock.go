// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. Production code
// injects [Real]; tests inject [Fake] and advance time explicitly.
//
// The engine uses the clock in two places: per-component parse timing
// recorded in the parsing context, and the worker-pool coordinator's
// shutdown grace handling. Both take a Clock so tests never sleep.
package clock

import "time"

// Clock provides the time operations the engine needs.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the elapsed time since t.
	Since(t time.Time) time.Duration

	// After returns a channel that receives the current time after d
	// elapses.
	After(d time.Duration) <-chan time.Time
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) Since(t time.Time) time.Duration        { return time.Since(t) }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
