package elog

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Gate admits at most one guarded action at a time. Acquisition honours the
// caller's context so a deadline can abort a waiting dispatch.
type Gate struct {
	name string
	sem  *semaphore.Weighted
	held atomic.Bool
}

// NewGate returns an unlocked gate. The name appears in trace lines and
// PrintFailure reports.
func NewGate(name string) *Gate {
	return &Gate{name: name, sem: semaphore.NewWeighted(1)}
}

// Name returns the gate name used in trace lines.
func (g *Gate) Name() string { return g.name }

// Held reports whether an action currently holds the gate.
func (g *Gate) Held() bool { return g.held.Load() }

// WithExclusiveAccess runs action while holding the gate. If the context ends
// before the gate is acquired, ctx.Err() is returned and action does not run.
// An error returned by action, or a panic inside it, is returned as a
// *PrintFailure. The gate is released on every path.
func (g *Gate) WithExclusiveAccess(ctx context.Context, action func() error) (err error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	g.held.Store(true)
	defer func() {
		if r := recover(); r != nil {
			err = &PrintFailure{Gate: g.name, Err: recovered(ErrGatePanic, r)}
		}
		g.held.Store(false)
		g.sem.Release(1)
	}()

	if aerr := action(); aerr != nil {
		return &PrintFailure{Gate: g.name, Err: aerr}
	}
	return nil
}
