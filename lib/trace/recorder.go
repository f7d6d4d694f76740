// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"log/slog"
	"time"

	"github.com/parlance-dev/parlance/lib/clock"
	"github.com/parlance-dev/parlance/lib/execute"
)

// Recorder turns resolved dispatches into trace records. It
// implements execute.Observer; write failures are logged, never
// propagated, because tracing must not break dispatch.
type Recorder struct {
	writer *Writer
	clock  clock.Clock
	logger *slog.Logger
}

// RecorderOption adjusts a Recorder.
type RecorderOption func(*Recorder)

// WithClock substitutes the clock stamping each record.
func WithClock(c clock.Clock) RecorderOption {
	return func(r *Recorder) { r.clock = c }
}

// WithLogger substitutes the logger for write failures.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) { r.logger = logger }
}

// NewRecorder builds a recorder appending to writer.
func NewRecorder(writer *Writer, options ...RecorderOption) *Recorder {
	r := &Recorder{
		writer: writer,
		clock:  clock.Real(),
		logger: slog.Default(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// DispatchResolved implements execute.Observer.
func (r *Recorder) DispatchResolved(line string, outcome execute.Outcome, elapsed time.Duration) {
	record := Record{
		Time:    r.clock.Now(),
		Line:    line,
		Elapsed: elapsed,
	}
	if outcome.Context != nil {
		record.Sender = outcome.Context.Sender().Name()
		record.Spans = spansFrom(outcome.Context)
	}
	if outcome.Command != nil {
		record.Command = outcome.Command.Name()
	}
	if outcome.Err != nil {
		record.Error = outcome.Err.Error()
	}
	if err := r.writer.Write(record); err != nil {
		r.logger.Error("trace record dropped", "line", line, "error", err)
	}
}
