// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "DCMESH_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "dcmesh.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "dcmesh"
)

// FindConfigPath searches for config file in priority order:
// 1. $DCMESH_CONFIG (explicit path)
// 2. ./dcmesh.yaml (working directory)
// 3. $XDG_CONFIG_HOME/dcmesh/config.yaml
// 4. ~/.config/dcmesh/config.yaml
//
// Returns empty string if no config file found
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
