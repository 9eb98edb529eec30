package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/winapps-org/winapps-setup/internal/messages"
)

// EnvConfigPath overrides the user config location.
const EnvConfigPath = "WINAPPS_SETUP_CONFIG"

// DefaultPath returns ~/.config/winapps-setup/config.toml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigHomeDirFmt, err)
	}
	return filepath.Join(home, ".config", "winapps-setup", "config.toml"), nil
}

// ResolvePath returns the config path from the environment or the default.
// explicit reports whether the path was set through EnvConfigPath.
func ResolvePath(getenv func(string) string) (path string, explicit bool, err error) {
	if value := getenv(EnvConfigPath); value != "" {
		expanded, err := homedir.Expand(value)
		if err != nil {
			return "", true, fmt.Errorf(messages.ConfigExpandPathFmt, value, err)
		}
		return expanded, true, nil
	}
	path, err = DefaultPath()
	return path, false, err
}
