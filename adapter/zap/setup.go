package zap

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/elog"
)

// Config is an explicit, code-first configuration for zap + elog.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer        io.Writer // default: os.Stdout
	MinLevel      elog.Level
	Console       bool                  // pretty console-like output via zapcore.NewConsoleEncoder
	EncoderConfig zapcore.EncoderConfig // if zero, a sensible default is used
	Caller        bool                  // include caller in logs
	CallerSkip    int                   // frames to skip when resolving caller
	TagFieldName  string                // default "tag"

	ShowProgress  bool
	Interceptions []elog.Interception
}

// Use builds a zap-backed pipeline from Config, wires it as the global elog
// pipeline, and returns it.
func Use(cfg Config) *elog.Pipeline {
	sink := NewFromConfig(cfg)
	p, err := elog.NewBuilder().
		WithSink(sink).
		WithShowProgress(cfg.ShowProgress).
		AddInterception(cfg.Interceptions...).
		Build()
	if err != nil {
		// Build only fails with a nil sink which cannot happen here.
		panic(err)
	}
	elog.SetGlobal(p)
	return p
}

// NewFromConfig builds the zap logger described by cfg and wraps it.
func NewFromConfig(cfg Config) *Sink {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.Caller && cfg.CallerSkip <= 0 {
		cfg.CallerSkip = 2
	}

	encCfg := cfg.EncoderConfig
	if encCfg.LevelKey == "" && encCfg.MessageKey == "" && encCfg.EncodeTime == nil {
		encCfg = zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			MessageKey:     "message",
			CallerKey:      "caller",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	// Use AtomicLevel so Sink.SetMinLevel can adjust dynamically.
	al := zap.NewAtomicLevelAt(toZapLevel(cfg.MinLevel))
	core := zapcore.NewCore(enc, zapcore.AddSync(w), al)

	opts := []zap.Option{
		zap.AddStacktrace(zapcore.FatalLevel + 1), // effectively off for normal levels
	}
	if cfg.Caller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(cfg.CallerSkip))
	}

	return NewWithTagKey(zap.New(core, opts...), &al, cfg.TagFieldName)
}
