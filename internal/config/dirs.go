// Package config holds the filesystem conventions: the XDG application
// directories and user path expansion.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the application name used for XDG directory paths.
const AppName = "canieat"

// DefaultConfigDir returns the XDG config directory for the application
// (~/.config/canieat on Linux).
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultConfigFile returns the default config file location.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LexiconDir returns the directory scanned for user keyword pack files.
func LexiconDir() string {
	return filepath.Join(DefaultConfigDir(), "lexicons")
}

// DataDir returns the XDG data directory, used for captured photos when
// no gallery directory is configured (~/.local/share/canieat on Linux).
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
