package config

import (
	"strings"

	"github.com/trickstertwo/elog"
)

func (c *Config) normalize() {
	c.Pipeline.DefaultTag = strings.TrimSpace(c.Pipeline.DefaultTag)
	if c.Pipeline.DefaultTag == "" {
		c.Pipeline.DefaultTag = elog.DefaultTag
	}

	c.Sink.Kind = strings.ToLower(strings.TrimSpace(c.Sink.Kind))
	if c.Sink.Kind == "" {
		c.Sink.Kind = SinkConsole
	}
	c.Sink.Level = canonicalLevel(c.Sink.Level, "verbose")
	c.Sink.Color = strings.ToLower(strings.TrimSpace(c.Sink.Color))
	if c.Sink.Color == "" {
		c.Sink.Color = "auto"
	}

	c.Interceptors.MinLevel = canonicalLevel(c.Interceptors.MinLevel, "")

	patterns := c.Interceptors.Redact[:0]
	for _, p := range c.Interceptors.Redact {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	c.Interceptors.Redact = patterns
}

// canonicalLevel lower-cases known level names and aliases to their canonical
// spelling. Unknown values are kept for Validate to report.
func canonicalLevel(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if l, ok := elog.ParseLevel(s); ok {
		return strings.ToLower(l.String())
	}
	return s
}
