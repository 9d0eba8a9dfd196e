// Package gate serializes access to the single SAP GUI session.
//
// SAP GUI exposes exactly one mutable session with no concurrency control
// of its own, so the whole process funnels every transaction script through
// one FIFO gate held from connect to the final status read.
package gate

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrBusy means the gate could not be acquired within the wait budget.
// Callers surface it as a distinct "try again" response instead of
// blocking indefinitely.
var ErrBusy = errors.New("session busy")

// Gate is a process-scoped mutual-exclusion gate. Waiters are admitted in
// arrival order.
type Gate struct {
	sem     *semaphore.Weighted
	timeout time.Duration
}

// New creates a gate with the given acquisition timeout. A zero timeout
// means wait only as long as the caller's context allows.
func New(timeout time.Duration) *Gate {
	return &Gate{sem: semaphore.NewWeighted(1), timeout: timeout}
}

// Acquire blocks until the gate is free, the timeout elapses, or ctx is
// cancelled. On success it returns a release func that must be called on
// every exit path.
func (g *Gate) Acquire(ctx context.Context) (release func(), err error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	if err := g.sem.Acquire(ctx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrBusy
		}
		return nil, err
	}
	return func() { g.sem.Release(1) }, nil
}
