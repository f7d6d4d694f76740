// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package execute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/parlance-dev/parlance/lib/clock"
	"github.com/parlance-dev/parlance/lib/input"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/tree"
)

// ErrShutdown is resolved into futures of dispatches submitted after
// Shutdown.
var ErrShutdown = errors.New("coordinator is shut down")

// HandlerError wraps a failure from a matched command's handler,
// including recovered panics, so callers can distinguish it from a
// match failure.
type HandlerError struct {
	Command string
	Cause   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Cause)
}

func (e *HandlerError) Unwrap() error { return e.Cause }

// Observer is notified when a dispatch resolves, with the full
// context (parsing records included) and the outcome. Used by the
// trace package; must be safe for concurrent calls under the pool
// coordinator.
type Observer interface {
	DispatchResolved(line string, outcome Outcome, elapsed time.Duration)
}

// Coordinator accepts command lines for execution.
type Coordinator interface {
	// Dispatch submits one command line on behalf of sender. The
	// returned future resolves with the outcome; ctx bounds only the
	// submission, not the handler.
	Dispatch(ctx context.Context, sender parser.Sender, line string) *Future

	// Shutdown stops accepting dispatches and waits for in-flight
	// ones, up to ctx's deadline.
	Shutdown(ctx context.Context) error
}

// Config carries the collaborators shared by both coordinators.
type Config struct {
	// Tree is the command tree dispatched against. Required.
	Tree *tree.Tree

	// Registry seeds each dispatch context before matching. Optional.
	Registry *parser.Registry

	// Clock feeds context timing. Nil uses the real clock.
	Clock clock.Clock

	// Logger receives per-dispatch debug logging and handler panic
	// reports. Nil uses slog.Default.
	Logger *slog.Logger

	// Observer, when set, sees every resolved dispatch.
	Observer Observer
}

func (c *Config) fill() {
	if c.Clock == nil {
		c.Clock = clock.Real()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// run performs one complete dispatch: context construction, registry
// injection, tree match, handler, observation.
func run(config *Config, sender parser.Sender, line string) Outcome {
	started := config.Clock.Now()
	ctx := parser.NewContext(sender, parser.WithClock(config.Clock))
	outcome := Outcome{Context: ctx}

	if config.Registry != nil {
		if err := config.Registry.Inject(ctx); err != nil {
			outcome.Err = err
			return observe(config, line, outcome, started)
		}
	}

	command, err := config.Tree.Match(ctx, input.New(line))
	if err != nil {
		outcome.Err = err
		return observe(config, line, outcome, started)
	}
	outcome.Command = command

	if err := runHandler(config, command, ctx); err != nil {
		outcome.Err = err
	}
	return observe(config, line, outcome, started)
}

// runHandler invokes the handler with panic containment. A panicking
// handler must not take down the coordinator's goroutine.
func runHandler(config *Config, command *tree.Command, ctx *parser.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			config.Logger.Error("command handler panicked",
				"command", command.Name(),
				"panic", fmt.Sprint(r))
			err = &HandlerError{Command: command.Name(), Cause: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := command.Handler(ctx); err != nil {
		return &HandlerError{Command: command.Name(), Cause: err}
	}
	return nil
}

func observe(config *Config, line string, outcome Outcome, started time.Time) Outcome {
	elapsed := config.Clock.Since(started)
	if outcome.Err != nil {
		config.Logger.Debug("dispatch failed",
			"sender", outcome.Context.Sender().Name(),
			"line", line,
			"error", outcome.Err,
			"elapsed", elapsed)
	} else {
		config.Logger.Debug("dispatch completed",
			"sender", outcome.Context.Sender().Name(),
			"command", outcome.Command.Name(),
			"elapsed", elapsed)
	}
	if config.Observer != nil {
		config.Observer.DispatchResolved(line, outcome, elapsed)
	}
	return outcome
}

// Inline runs every dispatch on the calling goroutine.
type Inline struct {
	config Config
	closed atomic.Bool
}

// NewInline builds the synchronous coordinator.
func NewInline(config Config) *Inline {
	config.fill()
	return &Inline{config: config}
}

// Dispatch implements Coordinator. The returned future is resolved
// before Dispatch returns.
func (c *Inline) Dispatch(ctx context.Context, sender parser.Sender, line string) *Future {
	if c.closed.Load() {
		return resolved(Outcome{Err: ErrShutdown})
	}
	return resolved(run(&c.config, sender, line))
}

// Shutdown implements Coordinator.
func (c *Inline) Shutdown(ctx context.Context) error {
	c.closed.Store(true)
	return nil
}

// Pool runs dispatches on a fixed number of worker goroutines.
type Pool struct {
	config  Config
	jobs    chan poolJob
	closed  bool
	closeMu sync.RWMutex
	workers sync.WaitGroup
}

type poolJob struct {
	sender parser.Sender
	line   string
	future *Future
}

// NewPool builds the concurrent coordinator. workers below one is
// treated as one.
func NewPool(config Config, workers int) *Pool {
	config.fill()
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		config: config,
		jobs:   make(chan poolJob),
	}
	p.workers.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.workers.Done()
	for job := range p.jobs {
		job.future.resolve(run(&p.config, job.sender, job.line))
	}
}

// Dispatch implements Coordinator. Submission blocks until a worker
// accepts the job or ctx is cancelled; the future resolves when the
// handler finishes.
func (p *Pool) Dispatch(ctx context.Context, sender parser.Sender, line string) *Future {
	future := newFuture()

	// The read lock holds the channel open for the duration of the
	// send, so Shutdown cannot close it out from under us.
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed {
		future.resolve(Outcome{Err: ErrShutdown})
		return future
	}
	select {
	case p.jobs <- poolJob{sender: sender, line: line, future: future}:
	case <-ctx.Done():
		future.resolve(Outcome{Err: ctx.Err()})
	}
	return future
}

// Shutdown implements Coordinator. In-flight dispatches finish;
// submissions arriving after the close resolve with ErrShutdown.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.closeMu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.closeMu.Unlock()

	finished := make(chan struct{})
	go func() {
		p.workers.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
