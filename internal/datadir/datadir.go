// Package datadir provides the default locations of taskmate's files.
package datadir

import "path/filepath"

const (
	// Dir is the directory holding the task file, relative to the working directory.
	Dir = "data"

	// DefaultDataFile is the task file name inside Dir.
	DefaultDataFile = "tasks.txt"

	// UserDir is the per-user state directory under the home directory.
	UserDir = ".taskmate"

	// ConfigFile is the config file name used in UserDir and the OS config directory.
	ConfigFile = "taskmate.toml"

	// DefaultLogDir is where session logs go when log_dir is not set.
	DefaultLogDir = "~/" + UserDir + "/logs"
)

// ProjectConfigFiles lists the project-level config file names in lookup order.
var ProjectConfigFiles = []string{ConfigFile, "." + ConfigFile}

// DefaultDataPath is the task file path relative to the working directory.
func DefaultDataPath() string {
	return filepath.Join(Dir, DefaultDataFile)
}

// DataPath returns the default task file path within a work directory.
func DataPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return DefaultDataPath()
	}
	return filepath.Join(workDir, Dir, DefaultDataFile)
}

// Resolve makes path absolute against workDir. An empty path resolves to
// the default task file.
func Resolve(workDir, path string) string {
	if path == "" {
		return DataPath(workDir)
	}
	if filepath.IsAbs(path) || workDir == "" {
		return path
	}
	return filepath.Join(workDir, path)
}
