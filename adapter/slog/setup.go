package slog

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/elog"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for slog + elog.
// One call to Use wires a slog-backed pipeline and sets it global.
type Config struct {
	Writer         io.Writer            // default: os.Stdout
	MinLevel       elog.Level           // handler filter, adjustable later via Sink.SetMinLevel
	Format         Format               // JSON (default) or Text
	HandlerOptions *slog.HandlerOptions // optional; Level is managed by Use via LevelVar
	TagFieldName   string               // default "tag"

	ShowProgress  bool
	Interceptions []elog.Interception
}

// Use builds a slog-backed pipeline from Config, sets it as global, and returns it.
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

// NewFromConfig builds the slog handler described by cfg and wraps it.
func NewFromConfig(cfg Config) *Sink {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	var opts slog.HandlerOptions
	if cfg.HandlerOptions != nil {
		opts = *cfg.HandlerOptions
	}

	// Use a LevelVar to allow dynamic SetMinLevel on the sink.
	lv := new(slog.LevelVar)
	lv.Set(toSlog(cfg.MinLevel))
	opts.Level = lv

	var h slog.Handler
	if cfg.Format == FormatText {
		h = slog.NewTextHandler(w, &opts)
	} else {
		h = slog.NewJSONHandler(w, &opts)
	}
	return NewWithLevelVar(slog.New(h), lv, cfg.TagFieldName)
}
