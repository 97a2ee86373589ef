package zerolog

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/elog"
)

// Env:
//
//	ELOG_LEVEL=verbose|debug|info|warn|error|assert : sink minimum level (default verbose)
//	ELOG_CONSOLE=1              : enable ConsoleWriter (pretty output)
//	ELOG_CONSOLE_TIMEFORMAT=... : optional console time layout (default RFC3339Nano)
//	ELOG_TIMESTAMP=0            : omit the timestamp field
func init() {
	elog.RegisterDefaultSinkFactory(func(w io.Writer) elog.Sink {
		if w == nil {
			w = os.Stdout
		}
		level := elog.LevelVerbose
		if l, ok := elog.ParseLevel(os.Getenv("ELOG_LEVEL")); ok {
			level = l
		}

		if os.Getenv("ELOG_CONSOLE") == "1" {
			cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339Nano}
			if tf := os.Getenv("ELOG_CONSOLE_TIMEFORMAT"); tf != "" {
				cw.TimeFormat = tf
			}
			w = cw
		}

		ctx := zerolog.New(w).With()
		if parseBool(os.Getenv("ELOG_TIMESTAMP"), true) {
			ctx = ctx.Timestamp()
		}
		s := New(ctx.Logger())
		s.SetMinLevel(level)
		return s
	})
}

func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return def
}
