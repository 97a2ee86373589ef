package console

import (
	"io"

	"github.com/trickstertwo/elog"
)

// Config is an explicit, code-first configuration for the console sink.
// Use provides a single-call setup with no envs or side-imports.
type Config struct {
	Writer       io.Writer // default: os.Stdout
	MinLevel     elog.Level
	Color        ColorMode
	TimeFormat   string
	ErrorHandler ErrorHandler
	BufferSize   int

	ShowProgress  bool
	Interceptions []elog.Interception
}

// Use builds a console-backed pipeline from Config, sets it as the global
// pipeline, and returns it.
func Use(cfg Config) *elog.Pipeline {
	p, err := elog.NewBuilder().
		WithSink(NewFromConfig(cfg)).
		WithShowProgress(cfg.ShowProgress).
		AddInterception(cfg.Interceptions...).
		Build()
	if err != nil {
		panic(err)
	}
	elog.SetGlobal(p)
	return p
}

func NewFromConfig(cfg Config) *Sink {
	return New(cfg.Writer, Options{
		MinLevel:     cfg.MinLevel,
		Color:        cfg.Color,
		TimeFormat:   cfg.TimeFormat,
		ErrorHandler: cfg.ErrorHandler,
		BufferSize:   cfg.BufferSize,
	})
}
