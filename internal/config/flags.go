package config

import "flag"

// parseFlags defines the global flags on fs, parses args and applies the
// flags that were explicitly set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskmate", flag.ContinueOnError)
	}

	dataFile := fs.String("data", cfg.DataFile, "Path to the task file")
	name := fs.String("name", cfg.Name, "Assistant name shown in the greeting")
	ui := fs.String("ui", cfg.UI, "Front end for the default command (console, tui)")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	logTimestamps := fs.Bool("log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	logDir := fs.String("log-dir", cfg.LogDir, "Write a log file per session under this directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			setSource(&cfg.DataFile, *dataFile, sources, "data_file", SourceFlag)
		case "name":
			setSource(&cfg.Name, *name, sources, "name", SourceFlag)
		case "ui":
			setSource(&cfg.UI, *ui, sources, "ui", SourceFlag)
		case "log-level":
			setSource(&cfg.LogLevel, *logLevel, sources, "log_level", SourceFlag)
		case "log-format":
			setSource(&cfg.LogFormat, *logFormat, sources, "log_format", SourceFlag)
		case "log-timestamps":
			setSource(&cfg.LogTimestamps, *logTimestamps, sources, "log_timestamps", SourceFlag)
		case "log-dir":
			setSource(&cfg.LogDir, *logDir, sources, "log_dir", SourceFlag)
		}
	})
	return nil
}
