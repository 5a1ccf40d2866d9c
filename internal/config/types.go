package config

import "github.com/nibzard/taskmate-go/internal/datadir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// UI modes.
const (
	UIConsole = "console"
	UITUI     = "tui"
)

// Default values.
const (
	DefaultName      = "Taskmate"
	DefaultUI        = UIConsole
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for taskmate.
type Config struct {
	// Task file; relative paths are resolved against the working directory.
	DataFile string `toml:"data_file"`

	// Assistant name used in the greeting.
	Name string `toml:"name"`

	// Front end started by the default command: console or tui.
	UI string `toml:"ui"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	// LogDir enables per-session log files when set.
	LogDir string `toml:"log_dir"`

	// Working directory (computed)
	ProjectRoot string `toml:"-"`
}

// Field is one configurable value keyed by its config file name.
type Field struct {
	Key   string
	Value any
}

// Fields returns every configurable value in config file order.
func (c *Config) Fields() []Field {
	return []Field{
		{"data_file", c.DataFile},
		{"name", c.Name},
		{"ui", c.UI},
		{"log_level", c.LogLevel},
		{"log_format", c.LogFormat},
		{"log_timestamps", c.LogTimestamps},
		{"log_dir", c.LogDir},
	}
}

// configFields returns the configurable field names for source tracking.
func configFields() []string {
	fields := (&Config{}).Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Key
	}
	return names
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = datadir.DefaultDataPath()
	cfg.Name = DefaultName
	cfg.UI = DefaultUI
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogDir = ""
}

func setSource[T any](field *T, value T, sources map[string]ConfigSource, name string, source ConfigSource) {
	*field = value
	if sources != nil {
		sources[name] = source
	}
}
