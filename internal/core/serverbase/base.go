// SPDX-License-Identifier: MPL-2.0

package serverbase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Base is embedded by servers to share lifecycle bookkeeping.
// An instance is single-use: once stopped or failed, create a new one.
type Base struct {
	state   atomic.Int32
	stateMu sync.Mutex

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startedCh chan struct{}
	errCh     chan error
	lastErr   error

	logger *log.Logger
	name   string
}

// NewBase creates a Base in StateCreated.
func NewBase(opts ...Option) *Base {
	b := &Base{
		startedCh: make(chan struct{}),
		errCh:     make(chan error, 1),
	}
	b.state.Store(int32(StateCreated))
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the current state.
func (b *Base) State() State { return State(b.state.Load()) }

// IsRunning reports whether the server is in StateRunning.
func (b *Base) IsRunning() bool { return b.State() == StateRunning }

// Err returns the channel receiving asynchronous server errors.
func (b *Base) Err() <-chan error { return b.errCh }

// LastError returns the error that moved the server to StateFailed.
func (b *Base) LastError() error {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	return b.lastErr
}

// TransitionToStarting moves Created to Starting. It fails when the server
// was already started or ctx is already done.
func (b *Base) TransitionToStarting(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		b.TransitionToFailed(fmt.Errorf("context cancelled before start: %w", err))
		return b.LastError()
	}

	if !b.state.CompareAndSwap(int32(StateCreated), int32(StateStarting)) {
		return fmt.Errorf("cannot start server in state %s", b.State())
	}

	b.ctx, b.cancel = context.WithCancel(context.Background())
	b.debug("starting")
	return nil
}

// TransitionToRunning moves Starting to Running and releases WaitForReady.
func (b *Base) TransitionToRunning() {
	if b.state.CompareAndSwap(int32(StateStarting), int32(StateRunning)) {
		close(b.startedCh)
		b.debug("running")
	}
}

// TransitionToFailed records err and moves to StateFailed.
func (b *Base) TransitionToFailed(err error) {
	b.stateMu.Lock()
	b.lastErr = err
	b.stateMu.Unlock()

	b.state.Store(int32(StateFailed))
	if b.cancel != nil {
		b.cancel()
	}
	b.SendError(err)
	b.debug("failed", "err", err)
}

// TransitionToStopping moves Starting or Running to Stopping and cancels the
// server context. It returns false when there is nothing to stop.
func (b *Base) TransitionToStopping() bool {
	for {
		cur := b.State()
		switch cur {
		case StateCreated:
			if b.state.CompareAndSwap(int32(StateCreated), int32(StateStopped)) {
				return false
			}
		case StateStarting, StateRunning:
			if b.state.CompareAndSwap(int32(cur), int32(StateStopping)) {
				if b.cancel != nil {
					b.cancel()
				}
				b.debug("stopping")
				return true
			}
		default:
			return false
		}
	}
}

// TransitionToStopped marks the server stopped.
func (b *Base) TransitionToStopped() {
	b.state.Store(int32(StateStopped))
	b.debug("stopped")
}

// Shutdown stops a starting or running server: it moves to Stopping, calls
// stop, waits for tracked goroutines and moves to Stopped. Calling it on a
// server that is not running is a no-op.
func (b *Base) Shutdown(ctx context.Context, stop func(context.Context) error) error {
	if !b.TransitionToStopping() {
		return nil
	}

	var err error
	if stop != nil {
		err = stop(ctx)
	}
	b.wg.Wait()
	b.TransitionToStopped()
	return err
}

// WaitForReady blocks until the server is running or ctx is done.
func (b *Base) WaitForReady(ctx context.Context) error {
	select {
	case <-b.startedCh:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for server ready: %w", ctx.Err())
	}
}

// Context returns the server context, nil before start. It is cancelled on
// stop or failure.
func (b *Base) Context() context.Context { return b.ctx }

// Go runs fn on a tracked goroutine with the server context.
func (b *Base) Go(fn func(ctx context.Context)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn(b.ctx)
	}()
}

// SendError publishes err on the Err channel, dropping it when full.
func (b *Base) SendError(err error) {
	select {
	case b.errCh <- err:
	default:
	}
}

// StartedChannel is closed when the server reaches StateRunning.
func (b *Base) StartedChannel() <-chan struct{} { return b.startedCh }

func (b *Base) debug(msg string, keyvals ...any) {
	if b.logger == nil {
		return
	}
	b.logger.Debug(b.name+" "+msg, keyvals...)
}
