package interceptor

import (
	"sync/atomic"

	"github.com/trickstertwo/elog"
)

// Counter counts events per level. It always continues.
type Counter struct {
	byLevel [elog.LevelAssert + 1]atomic.Uint64
}

func NewCounter() *Counter { return &Counter{} }

func (c *Counter) Name() string { return "Counter" }

func (c *Counter) OnInterception(level elog.Level, _ string, _ error) (elog.Progress, error) {
	if level >= elog.LevelVerbose && level <= elog.LevelAssert {
		c.byLevel[level].Add(1)
	}
	return elog.ProgressContinue, nil
}

// Count returns the number of events seen at level.
func (c *Counter) Count(level elog.Level) uint64 {
	if level < elog.LevelVerbose || level > elog.LevelAssert {
		return 0
	}
	return c.byLevel[level].Load()
}

// Total returns the number of events seen at any level.
func (c *Counter) Total() uint64 {
	var n uint64
	for i := range c.byLevel {
		n += c.byLevel[i].Load()
	}
	return n
}

// Snapshot returns per-level counts keyed by level.
func (c *Counter) Snapshot() map[elog.Level]uint64 {
	out := make(map[elog.Level]uint64, len(c.byLevel))
	for i := range c.byLevel {
		out[elog.Level(i)] = c.byLevel[i].Load()
	}
	return out
}

func (c *Counter) Reset() {
	for i := range c.byLevel {
		c.byLevel[i].Store(0)
	}
}
