package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Taskmate configuration file
# Values can be overridden by environment variables (TASKMATE_*) or CLI flags

# Task file (relative to the working directory; supports ~ expansion)
data_file = "data/tasks.txt"

# Assistant name used in the greeting
name = "Taskmate"

# Front end for the default command: "console" or "tui"
ui = "console"

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false

# Write one log file per session under this directory
# log_dir = "~/.taskmate/logs"
`
}
