package slog

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/elog"
)

// Sink adapts elog to the Go slog API.
// It builds the tag attr directly and uses LogAttrs for low overhead.
type Sink struct {
	l      *slog.Logger
	lv     *slog.LevelVar // optional, enables SetMinLevel
	tagKey string
}

// toSlog maps elog levels onto slog's scale. VERBOSE sits one step below
// Debug and ASSERT one step above Error so both survive a round trip.
func toSlog(l elog.Level) slog.Level {
	switch {
	case l <= elog.LevelVerbose:
		return slog.LevelDebug - 4
	case l == elog.LevelDebug:
		return slog.LevelDebug
	case l == elog.LevelInfo:
		return slog.LevelInfo
	case l == elog.LevelWarn:
		return slog.LevelWarn
	case l == elog.LevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

func New(l *slog.Logger) *Sink {
	if l == nil {
		l = slog.Default()
	}
	return &Sink{l: l, tagKey: "tag"}
}

// NewWithLevelVar wires a slog.LevelVar so SetMinLevel can adjust the
// handler's filter at runtime.
func NewWithLevelVar(l *slog.Logger, lv *slog.LevelVar, tagKey string) *Sink {
	s := New(l)
	s.lv = lv
	if tagKey != "" {
		s.tagKey = tagKey
	}
	return s
}

func (s *Sink) Write(priority int, tag, text string) {
	s.l.LogAttrs(context.Background(), toSlog(elog.LevelFromPriority(priority)), text, slog.String(s.tagKey, tag))
}

// SetMinLevel is a no-op without a LevelVar.
func (s *Sink) SetMinLevel(l elog.Level) {
	if s.lv == nil {
		return
	}
	s.lv.Set(toSlog(l))
}

var _ elog.Sink = (*Sink)(nil)
