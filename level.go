package elog

import "strings"

// Level is the severity of an event. Values are dense and ordered so that
// comparisons like level >= LevelWarn behave as expected.
type Level int8

const (
	LevelVerbose Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelAssert
)

// priorityOffset aligns Level with logcat numbering (VERBOSE=2 .. ASSERT=7).
const priorityOffset = 2

// Priority is the platform value handed to a Sink. It is only meaningful at
// the sink boundary.
func (l Level) Priority() int { return int(l) + priorityOffset }

// LevelFromPriority maps a sink priority back to a Level. Out-of-range values
// are clamped to the nearest level.
func LevelFromPriority(p int) Level {
	switch l := p - priorityOffset; {
	case l < int(LevelVerbose):
		return LevelVerbose
	case l > int(LevelAssert):
		return LevelAssert
	default:
		return Level(l)
	}
}

func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "VERBOSE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelAssert:
		return "ASSERT"
	default:
		return "UNKNOWN"
	}
}

// Letter is the single-character logcat label (V, D, I, W, E, A).
func (l Level) Letter() byte {
	const letters = "VDIWEA"
	if l < LevelVerbose || l > LevelAssert {
		return '?'
	}
	return letters[l]
}

// ParseLevel accepts level names case-insensitively, plus the logcat letters
// and a few common aliases. Unknown input yields LevelVerbose and false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose", "v", "trace":
		return LevelVerbose, true
	case "debug", "d":
		return LevelDebug, true
	case "info", "i":
		return LevelInfo, true
	case "warn", "warning", "w":
		return LevelWarn, true
	case "error", "e":
		return LevelError, true
	case "assert", "a", "fatal":
		return LevelAssert, true
	default:
		return LevelVerbose, false
	}
}
