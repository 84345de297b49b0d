package config

import (
	"os"
	"path/filepath"
)

// HomeEnv names the environment variable that overrides the wlmerge home directory.
const HomeEnv = "WLMERGE_HOME"

// dirName is the per-project settings directory.
const dirName = ".wlmerge"

// GetHome returns the wlmerge home directory
// Priority order:
//  1. WLMERGE_HOME environment variable (if set)
//  2. .wlmerge in the current working directory
//
// The directory is not created.
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, dirName), nil
}

// DefaultConfigPath returns config.yaml inside the wlmerge home directory.
func DefaultConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}
