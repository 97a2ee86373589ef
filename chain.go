package elog

import (
	"sync"
	"sync/atomic"
)

// Chain is the ordered, append-only list of interceptions a Pipeline runs for
// every event. The zero value is an empty chain ready for use.
type Chain struct {
	// Lock-free reads via atomic.Value; appends serialized via mu.
	// Stored value is []Interception and MUST be treated as immutable by readers.
	list atomic.Value
	mu   sync.Mutex
}

// NewChain returns a chain holding the given interceptions in order.
func NewChain(is ...Interception) *Chain {
	c := &Chain{}
	c.Setup(is...)
	return c
}

// Setup appends interceptions in call order. Nil entries are skipped. It is
// safe to call while events are being dispatched: in-flight dispatches keep
// the snapshot they started with, later ones see the appended entries.
func (c *Chain) Setup(is ...Interception) {
	if len(is) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.Snapshot()
	next := make([]Interception, len(cur), len(cur)+len(is))
	copy(next, cur)
	for _, i := range is {
		if i != nil {
			next = append(next, i)
		}
	}
	c.list.Store(next)
}

// Snapshot returns the current interceptions. The slice is shared and must not
// be modified.
func (c *Chain) Snapshot() []Interception {
	v := c.list.Load()
	if v == nil {
		return nil
	}
	return v.([]Interception)
}

// Len reports the number of registered interceptions.
func (c *Chain) Len() int { return len(c.Snapshot()) }
