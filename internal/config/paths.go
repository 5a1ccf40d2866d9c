package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

var windowsEnvVar = regexp.MustCompile(`%([^%]+)%`)

// ExpandPath expands environment variables and a leading ~ in p. On Windows
// %VAR% references and a ~\ prefix are expanded too; unknown %VAR% stay as is.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}

	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = windowsEnvVar.ReplaceAllStringFunc(p, func(ref string) string {
			if val, ok := os.LookupEnv(strings.Trim(ref, "%")); ok {
				return val
			}
			return ref
		})
	}

	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && !isHomeSeparator(rest[0])) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

func isHomeSeparator(c byte) bool {
	return c == '/' || (runtime.GOOS == "windows" && c == '\\')
}
