package zerolog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/elog"
)

// Config is an explicit, code-first configuration for zerolog + elog.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer            io.Writer // default: os.Stdout
	MinLevel          elog.Level
	Console           bool   // pretty console output instead of JSON
	ConsoleTimeFormat string // only used if Console==true; default time.RFC3339Nano
	NoColor           bool   // only used if Console==true
	Timestamp         bool   // add zerolog's own timestamp field
	TagFieldName      string // default "tag"

	ShowProgress  bool
	Interceptions []elog.Interception
}

// Use builds a zerolog-backed pipeline from Config, wires it as the global
// elog pipeline, and returns it.
func Use(cfg Config) *elog.Pipeline {
	p, err := elog.NewBuilder().
		WithSink(NewFromConfig(cfg)).
		WithShowProgress(cfg.ShowProgress).
		AddInterception(cfg.Interceptions...).
		Build()
	if err != nil {
		// In practice, Build only fails with a nil sink which cannot happen here.
		panic(err)
	}
	elog.SetGlobal(p)
	return p
}

// NewFromConfig builds the zerolog logger described by cfg and wraps it.
func NewFromConfig(cfg Config) *Sink {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: cfg.ConsoleTimeFormat}
		if cw.TimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		}
		w = cw
	}

	ctx := zerolog.New(w).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	s := NewWithTagKey(ctx.Logger(), cfg.TagFieldName)
	s.SetMinLevel(cfg.MinLevel)
	return s
}
