package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvData          = "TASKMATE_DATA"
	EnvName          = "TASKMATE_NAME"
	EnvUI            = "TASKMATE_UI"
	EnvLogLevel      = "TASKMATE_LOG_LEVEL"
	EnvLogFormat     = "TASKMATE_LOG_FORMAT"
	EnvLogTimestamps = "TASKMATE_LOG_TIMESTAMPS"
	EnvLogDir        = "TASKMATE_LOG_DIR"
)

// loadFromEnv overrides config from environment variables. Empty values are
// ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	if v := os.Getenv(EnvData); v != "" {
		setSource(&cfg.DataFile, v, sources, "data_file", SourceEnv)
	}
	if v := os.Getenv(EnvName); v != "" {
		setSource(&cfg.Name, v, sources, "name", SourceEnv)
	}
	if v := os.Getenv(EnvUI); v != "" {
		setSource(&cfg.UI, v, sources, "ui", SourceEnv)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		setSource(&cfg.LogLevel, v, sources, "log_level", SourceEnv)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		setSource(&cfg.LogFormat, v, sources, "log_format", SourceEnv)
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		setSource(&cfg.LogTimestamps, boolFromString(v), sources, "log_timestamps", SourceEnv)
	}
	if v := os.Getenv(EnvLogDir); v != "" {
		setSource(&cfg.LogDir, v, sources, "log_dir", SourceEnv)
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
