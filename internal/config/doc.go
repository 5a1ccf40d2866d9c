// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskmate/taskmate.toml or OS-specific config directory)
// 3. Project config file (taskmate.toml or .taskmate.toml in the working directory)
// 4. Environment variables (TASKMATE_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// Config files are checked against an embedded JSON Schema before they are
// decoded; unknown keys and out-of-range values are rejected.
//
// User-level config locations:
// - ~/.taskmate/taskmate.toml (preferred)
// - Windows: %APPDATA%\taskmate\taskmate.toml
// - macOS: ~/Library/Application Support/taskmate/taskmate.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskmate/taskmate.toml or ~/.config/taskmate/taskmate.toml
package config
