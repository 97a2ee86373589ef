package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/trickstertwo/elog"
)

//go:embed sample_config.toml
var sampleConfig string

// Pipeline contains dispatch settings.
type Pipeline struct {
	ShowProgress bool   `toml:"show_progress" yaml:"show_progress"`
	Workers      int    `toml:"workers" yaml:"workers"`
	QueueSize    int    `toml:"queue_size" yaml:"queue_size"`
	TimeoutMS    int    `toml:"timeout_ms" yaml:"timeout_ms"`
	DefaultTag   string `toml:"default_tag" yaml:"default_tag"`
}

// Sink selects and tunes the output backend.
type Sink struct {
	Kind       string `toml:"kind" yaml:"kind"`   // console|zap|zerolog|slog
	Level      string `toml:"level" yaml:"level"` // minimum level written by the backend
	Color      string `toml:"color" yaml:"color"` // auto|always|never, console only
	TimeFormat string `toml:"time_format" yaml:"time_format"`
}

// Interceptors configures the built-in interceptions. Zero values disable
// the corresponding interception.
type Interceptors struct {
	MinLevel       string   `toml:"min_level" yaml:"min_level"`
	RateBurst      int      `toml:"rate_burst" yaml:"rate_burst"`
	RatePerMS      int      `toml:"rate_per_ms" yaml:"rate_per_ms"`
	DedupeWindowMS int      `toml:"dedupe_window_ms" yaml:"dedupe_window_ms"`
	Redact         []string `toml:"redact" yaml:"redact"`
}

// Config encapsulates all configuration values for an elog pipeline.
type Config struct {
	Pipeline     Pipeline     `toml:"pipeline" yaml:"pipeline"`
	Sink         Sink         `toml:"sink" yaml:"sink"`
	Interceptors Interceptors `toml:"interceptors" yaml:"interceptors"`
}

// Load parses, normalizes and validates the file at path. An empty path
// yields the defaults with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config %q not found (create with 'elog config init'): %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return toml.Unmarshal(data, cfg)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Encode writes c as TOML, or as YAML when format is "yaml" or "yml".
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "", "toml":
		if err := toml.NewEncoder(w).Encode(c); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Timeout is the per-emit deadline; zero disables it.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Pipeline.TimeoutMS) * time.Millisecond
}

// SinkLevel returns the parsed sink level. Validate guarantees it parses.
func (c *Config) SinkLevel() elog.Level {
	l, _ := elog.ParseLevel(c.Sink.Level)
	return l
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
