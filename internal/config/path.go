package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves the shortcuts a shell would normally handle
// before a path reaches us: $VAR / ${VAR} references and a leading
// tilde. Relative paths stay relative, like any other CLI tool.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	path = os.ExpandEnv(path)

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
