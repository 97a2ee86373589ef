package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/trickstertwo/elog"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateSink(); err != nil {
		return err
	}
	return c.validateInterceptors()
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.Workers < 0 {
		return errors.New("pipeline.workers must be zero or positive")
	}
	if c.Pipeline.QueueSize < 0 {
		return errors.New("pipeline.queue_size must be zero or positive")
	}
	if c.Pipeline.TimeoutMS < 0 {
		return errors.New("pipeline.timeout_ms must be zero or positive")
	}
	return nil
}

func (c *Config) validateSink() error {
	switch c.Sink.Kind {
	case SinkConsole, SinkZap, SinkZerolog, SinkSlog:
	default:
		return fmt.Errorf("sink.kind %q must be one of console, zap, zerolog, slog", c.Sink.Kind)
	}
	if _, ok := elog.ParseLevel(c.Sink.Level); !ok {
		return fmt.Errorf("sink.level %q is not a level", c.Sink.Level)
	}
	switch c.Sink.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("sink.color %q must be auto, always or never", c.Sink.Color)
	}
	return nil
}

func (c *Config) validateInterceptors() error {
	ic := c.Interceptors
	if ic.MinLevel != "" {
		if _, ok := elog.ParseLevel(ic.MinLevel); !ok {
			return fmt.Errorf("interceptors.min_level %q is not a level", ic.MinLevel)
		}
	}
	if ic.RateBurst < 0 || ic.RatePerMS < 0 {
		return errors.New("interceptors.rate_burst and rate_per_ms must be zero or positive")
	}
	if ic.RateBurst > 0 && ic.RatePerMS == 0 {
		return errors.New("interceptors.rate_per_ms must be set when rate_burst is set")
	}
	if ic.DedupeWindowMS < 0 {
		return errors.New("interceptors.dedupe_window_ms must be zero or positive")
	}
	for i, p := range ic.Redact {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("interceptors.redact[%d]: %w", i, err)
		}
	}
	return nil
}
