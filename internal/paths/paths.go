// Package paths resolves the default taskdeck directories.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// StateDirEnv overrides the state directory when set.
const StateDirEnv = "TASKDECK_STATE_DIR"

// ConfigPathEnv overrides the config file path when set.
const ConfigPathEnv = "TASKDECK_CONFIG"

// DefaultStateDir returns the directory holding persisted task data.
func DefaultStateDir() (string, error) {
	if dir := os.Getenv(StateDirEnv); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".local", "state", "taskdeck"), nil
}

// DefaultConfigPath returns the path to the taskdeck config file.
func DefaultConfigPath() (string, error) {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".config", "taskdeck", "config.toml"), nil
}
