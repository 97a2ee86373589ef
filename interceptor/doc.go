// Package interceptor holds ready-made elog interceptions: level and rate
// filters, duplicate suppression, secret redaction, a crash reporter hook and
// a counter. Every interception is safe for concurrent use.
package interceptor

import (
	"time"

	"github.com/trickstertwo/xclock"
)

// Clock is the time source for windowed interceptions. Any xclock.Clock
// satisfies it; nil means xclock's process default.
type Clock interface {
	Now() time.Time
}

func now(c Clock) time.Time {
	if c == nil {
		return xclock.Now()
	}
	return c.Now()
}
