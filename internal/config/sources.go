package config

import (
	"os"
	"path/filepath"

	"github.com/nibzard/taskmate-go/internal/datadir"
)

// findProjectConfigFile returns the first project config file in the
// working directory.
func findProjectConfigFile() string {
	return firstFile(datadir.ProjectConfigFiles)
}

// findUserConfigFile returns ~/.taskmate/taskmate.toml if present, else
// taskmate/taskmate.toml under the OS user config directory.
func findUserConfigFile() string {
	return firstFile(userConfigCandidates())
}

func userConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, datadir.UserDir, datadir.ConfigFile))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "taskmate", datadir.ConfigFile))
	}
	return paths
}

func firstFile(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// GetConfigFile returns the highest-priority config file that was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
