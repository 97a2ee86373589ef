package zerolog

import (
	"github.com/rs/zerolog"

	"github.com/trickstertwo/elog"
)

// Sink bridges elog to rs/zerolog with low overhead.
//
// Optimizations:
//   - Fast pre-check using GetLevel() to avoid allocating zerolog.Event when
//     the level is disabled.
//   - Uses Logger.WithLevel(...) to avoid a level switch at call sites.
type Sink struct {
	l      zerolog.Logger
	tagKey string
}

func New(l zerolog.Logger) *Sink {
	return &Sink{l: l, tagKey: "tag"}
}

// NewWithTagKey lets callers override the tag field key (default "tag").
func NewWithTagKey(l zerolog.Logger, tagKey string) *Sink {
	s := New(l)
	if tagKey != "" {
		s.tagKey = tagKey
	}
	return s
}

// Write emits a single line. ASSERT is treated as error level to avoid
// zerolog's Fatal/Panic side effects.
func (s *Sink) Write(priority int, tag, text string) {
	zlvl := mapLevel(elog.LevelFromPriority(priority))

	// Fast path: drop early if below logger's min level (no Event allocation).
	if zlvl < s.l.GetLevel() {
		return
	}
	s.l.WithLevel(zlvl).Str(s.tagKey, tag).Msg(text)
}

// SetMinLevel propagates a minimum level into zerolog. It is not safe to call
// concurrently with Write; call it before the sink is shared.
func (s *Sink) SetMinLevel(l elog.Level) {
	s.l = s.l.Level(mapLevel(l))
}

// mapLevel converts elog.Level to zerolog.Level.
func mapLevel(l elog.Level) zerolog.Level {
	switch {
	case l <= elog.LevelVerbose:
		return zerolog.TraceLevel
	case l <= elog.LevelDebug:
		return zerolog.DebugLevel
	case l <= elog.LevelInfo:
		return zerolog.InfoLevel
	case l <= elog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

var _ elog.Sink = (*Sink)(nil)
