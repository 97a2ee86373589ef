package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// applyEnv overlays ELOG_* variables on the loaded values.
func (c *Config) applyEnv() error {
	if v, ok := lookup("ELOG_SHOW_PROGRESS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ELOG_SHOW_PROGRESS: %w", err)
		}
		c.Pipeline.ShowProgress = b
	}
	if v, ok := lookup("ELOG_LEVEL"); ok {
		c.Sink.Level = v
	}
	if v, ok := lookup("ELOG_SINK"); ok {
		c.Sink.Kind = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
