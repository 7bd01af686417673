// Package paths centralizes file names, environment variables and default
// locations used by tilegen.
package paths

import (
	"os"
	"path/filepath"
)

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

const (
	BinaryName = "tilegen"
	// ConfigFile is looked up in the working directory when ConfigEnv is unset.
	ConfigFile = "tilegen.toml"
	ConfigEnv  = "TILEGEN_CONFIG"
	// DefaultOutputDir is where the map generator reads its tiles from.
	DefaultOutputDir = "example/tiles"
)

// ///////////////////////////////////////////////
// Resolution
// ///////////////////////////////////////////////

// ConfigPath returns the config file location: $TILEGEN_CONFIG if set,
// otherwise tilegen.toml in the working directory.
func ConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	return ConfigFile
}

// OutputDir resolves dir against base when dir is relative.
func OutputDir(base, dir string) string {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if filepath.IsAbs(dir) || base == "" {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}
