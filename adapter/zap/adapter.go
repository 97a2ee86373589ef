package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/elog"
)

// Sink bridges elog to go.uber.org/zap with low overhead.
//
// Optimizations:
//   - Uses Logger.Check(level, text) to skip field construction when disabled.
//   - The tag is the only per-line field; everything else is baked into the
//     zap.Logger by the caller.
//
// Optional behavior:
//   - SetMinLevel leverages zap.AtomicLevel when provided at construction time.
//     Without an AtomicLevel, SetMinLevel is a no-op.
type Sink struct {
	l      *zap.Logger
	al     *zap.AtomicLevel // optional, enables SetMinLevel
	tagKey string           // tag field key; default "tag"
}

// New creates a sink for the provided zap logger.
func New(l *zap.Logger) *Sink {
	if l == nil {
		l = zap.NewNop()
	}
	return &Sink{l: l, tagKey: "tag"}
}

// NewWithAtomicLevel creates a sink and wires a zap.AtomicLevel so
// SetMinLevel can dynamically adjust the backend's filter.
func NewWithAtomicLevel(l *zap.Logger, al *zap.AtomicLevel) *Sink {
	s := New(l)
	s.al = al
	return s
}

// NewWithTagKey lets callers override the tag field key (default "tag").
func NewWithTagKey(l *zap.Logger, al *zap.AtomicLevel, tagKey string) *Sink {
	s := NewWithAtomicLevel(l, al)
	if tagKey != "" {
		s.tagKey = tagKey
	}
	return s
}

// Write emits a single line. ASSERT maps to Error to avoid DPanic/Fatal side
// effects in library code.
func (s *Sink) Write(priority int, tag, text string) {
	ce := s.l.Check(toZapLevel(elog.LevelFromPriority(priority)), text)
	if ce == nil {
		return
	}
	ce.Write(zap.String(s.tagKey, tag))
}

// SetMinLevel updates the backend filter when an AtomicLevel was supplied.
func (s *Sink) SetMinLevel(l elog.Level) {
	if s.al == nil {
		return
	}
	s.al.SetLevel(toZapLevel(l))
}

// Sync flushes buffered zap output.
func (s *Sink) Sync() error { return s.l.Sync() }

func toZapLevel(l elog.Level) zapcore.Level {
	switch {
	case l <= elog.LevelDebug:
		return zapcore.DebugLevel // zap has no verbose; map to debug
	case l == elog.LevelInfo:
		return zapcore.InfoLevel
	case l == elog.LevelWarn:
		return zapcore.WarnLevel
	default:
		// Avoid Fatal/DPanic to prevent exits in library code.
		return zapcore.ErrorLevel
	}
}

var _ elog.Sink = (*Sink)(nil)
