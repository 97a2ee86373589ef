package config

import (
	"runtime"

	"github.com/trickstertwo/elog"
)

const (
	SinkConsole = "console"
	SinkZap     = "zap"
	SinkZerolog = "zerolog"
	SinkSlog    = "slog"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Pipeline: Pipeline{
			Workers:    runtime.GOMAXPROCS(0),
			DefaultTag: elog.DefaultTag,
		},
		Sink: Sink{
			Kind:  SinkConsole,
			Level: "verbose",
			Color: "auto",
		},
	}
}
