package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/taskmate-go/internal/datadir"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskmate/taskmate.toml or OS-specific config dir)
// 3. Project config file (taskmate.toml or .taskmate.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// Flags are parsed from args with fs; positional arguments remain in fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}
	var files []string

	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		files = append(files, userConfigFile)
	}

	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		files = append(files, projectConfigFile)
	}

	loadFromEnv(cfg, sources)

	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
		Files:   files,
	}, nil
}

// loadConfigFile validates the TOML file at path and applies the keys it
// defines to cfg.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := ValidateFile(path, data); err != nil {
		return err
	}

	var fileCfg Config
	md, err := toml.Decode(string(data), &fileCfg)
	if err != nil {
		return err
	}

	if md.IsDefined("data_file") {
		setSource(&cfg.DataFile, fileCfg.DataFile, sources, "data_file", source)
	}
	if md.IsDefined("name") {
		setSource(&cfg.Name, fileCfg.Name, sources, "name", source)
	}
	if md.IsDefined("ui") {
		setSource(&cfg.UI, fileCfg.UI, sources, "ui", source)
	}
	if md.IsDefined("log_level") {
		setSource(&cfg.LogLevel, fileCfg.LogLevel, sources, "log_level", source)
	}
	if md.IsDefined("log_format") {
		setSource(&cfg.LogFormat, fileCfg.LogFormat, sources, "log_format", source)
	}
	if md.IsDefined("log_timestamps") {
		setSource(&cfg.LogTimestamps, fileCfg.LogTimestamps, sources, "log_timestamps", source)
	}
	if md.IsDefined("log_dir") {
		setSource(&cfg.LogDir, fileCfg.LogDir, sources, "log_dir", source)
	}
	return nil
}

// finalizeConfig computes derived values and validates the merged result.
func finalizeConfig(cfg *Config) error {
	if err := validateResolved(cfg); err != nil {
		return err
	}

	cfg.LogDir = ExpandPath(cfg.LogDir)

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	cfg.DataFile = datadir.Resolve(cfg.ProjectRoot, ExpandPath(cfg.DataFile))
	return nil
}
