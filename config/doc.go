// Package config loads, normalizes, and validates elog pipeline settings.
//
// Files are TOML or YAML, chosen by extension. Environment variables
// (ELOG_SHOW_PROGRESS, ELOG_LEVEL, ELOG_SINK) override file values so a
// deployed binary can turn analytics on without editing its config.
//
// Always obtain settings through Load so callers receive canonical sink
// kinds, parsed levels and clear validation errors.
package config
