package interceptor

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/trickstertwo/elog"
)

// dedupeCapacity bounds the remembered (level, message) pairs. The least
// recently seen pair is forgotten first.
const dedupeCapacity = 1024

type dedupeKey struct {
	level   elog.Level
	message string
}

// Deduper stops an event whose (level, message) pair was already let through
// within the window.
type Deduper struct {
	window time.Duration
	clock  Clock

	// mu makes the lookup and the update one step.
	mu   sync.Mutex
	seen *lru.Cache[dedupeKey, time.Time]
}

func Dedupe(window time.Duration, clock Clock) *Deduper {
	return newDeduper(window, clock, dedupeCapacity)
}

func newDeduper(window time.Duration, clock Clock, size int) *Deduper {
	seen, err := lru.New[dedupeKey, time.Time](size)
	if err != nil {
		// Only a non-positive size fails.
		panic(err)
	}
	return &Deduper{window: window, clock: clock, seen: seen}
}

func (d *Deduper) Name() string { return "Dedupe" }

func (d *Deduper) OnInterception(level elog.Level, message string, _ error) (elog.Progress, error) {
	t := now(d.clock)
	k := dedupeKey{level: level, message: message}

	d.mu.Lock()
	defer d.mu.Unlock()

	if at, ok := d.seen.Get(k); ok && t.Sub(at) < d.window {
		return elog.ProgressStop, nil
	}
	d.seen.Add(k, t)
	return elog.ProgressContinue, nil
}
