package main

import (
	"fmt"
	"io"
	"time"

	"github.com/trickstertwo/elog"
	consolesink "github.com/trickstertwo/elog/adapter/console"
	slogsink "github.com/trickstertwo/elog/adapter/slog"
	zapsink "github.com/trickstertwo/elog/adapter/zap"
	zerologsink "github.com/trickstertwo/elog/adapter/zerolog"
	"github.com/trickstertwo/elog/config"
	"github.com/trickstertwo/elog/interceptor"
)

// buildSink maps the sink section onto a backend writing to w.
func buildSink(cfg *config.Config, w io.Writer) (elog.Sink, error) {
	level := cfg.SinkLevel()
	switch cfg.Sink.Kind {
	case config.SinkConsole:
		mode, err := consolesink.ParseColorMode(cfg.Sink.Color)
		if err != nil {
			return nil, fmt.Errorf("sink.color: %w", err)
		}
		return consolesink.New(w, consolesink.Options{
			MinLevel:   level,
			Color:      mode,
			TimeFormat: cfg.Sink.TimeFormat,
		}), nil
	case config.SinkZap:
		return zapsink.NewFromConfig(zapsink.Config{Writer: w, MinLevel: level, Console: true}), nil
	case config.SinkZerolog:
		return zerologsink.NewFromConfig(zerologsink.Config{
			Writer:            w,
			MinLevel:          level,
			Console:           true,
			NoColor:           cfg.Sink.Color != "always",
			ConsoleTimeFormat: consoleTimeFormat(cfg.Sink.TimeFormat),
			Timestamp:         cfg.Sink.TimeFormat != "-",
		}), nil
	case config.SinkSlog:
		return slogsink.NewFromConfig(slogsink.Config{Writer: w, MinLevel: level, Format: slogsink.FormatText}), nil
	default:
		return nil, fmt.Errorf("unsupported sink kind %q", cfg.Sink.Kind)
	}
}

func consoleTimeFormat(f string) string {
	if f == "-" {
		return ""
	}
	return f
}

// buildInterceptions returns the built-in interceptions enabled by cfg, in a
// fixed order: level, redaction, dedupe, rate limit.
func buildInterceptions(cfg *config.Config) ([]elog.Interception, error) {
	ic := cfg.Interceptors
	var out []elog.Interception
	if ic.MinLevel != "" {
		l, _ := elog.ParseLevel(ic.MinLevel)
		out = append(out, interceptor.MinLevel(l))
	}
	if len(ic.Redact) > 0 {
		r, err := interceptor.Redact(ic.Redact...)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if ic.DedupeWindowMS > 0 {
		out = append(out, interceptor.Dedupe(time.Duration(ic.DedupeWindowMS)*time.Millisecond, nil))
	}
	if ic.RateBurst > 0 {
		out = append(out, interceptor.RateLimit(ic.RateBurst, time.Duration(ic.RatePerMS)*time.Millisecond, nil))
	}
	return out, nil
}

// buildPipeline wires cfg into a pipeline over sink. extra interceptions run
// after the configured ones.
func buildPipeline(cfg *config.Config, sink elog.Sink, extra ...elog.Interception) (*elog.Pipeline, error) {
	is, err := buildInterceptions(cfg)
	if err != nil {
		return nil, err
	}
	return elog.NewBuilder().
		WithSink(sink).
		WithShowProgress(cfg.Pipeline.ShowProgress).
		WithWorkers(cfg.Pipeline.Workers).
		WithQueueSize(cfg.Pipeline.QueueSize).
		WithTimeout(cfg.Timeout()).
		WithDefaultTag(cfg.Pipeline.DefaultTag).
		AddInterception(is...).
		AddInterception(extra...).
		Build()
}
