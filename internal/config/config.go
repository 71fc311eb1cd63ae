// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppDirName is the per-user directory under the home directory.
	AppDirName = ".artman"
	// UserConfigFileName is the user config file name inside AppDirName.
	UserConfigFileName = "config.yaml"
)

// ErrInvalidUserConfig is the sentinel error wrapped by InvalidUserConfigError.
var ErrInvalidUserConfig = errors.New("invalid user config")

// InvalidUserConfigError is returned when the user config file exists but
// cannot be read or parsed. It wraps the underlying error;
// errors.Is(err, ErrInvalidUserConfig) also holds.
type InvalidUserConfigError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *InvalidUserConfigError) Error() string {
	return fmt.Sprintf("invalid user config %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the underlying error so callers can
// branch with errors.Is on either.
func (e *InvalidUserConfigError) Unwrap() []error {
	return []error{ErrInvalidUserConfig, e.Err}
}

// DefaultUserConfigPath returns ~/.artman/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, AppDirName, UserConfigFileName), nil
}

// Load reads the user config file at path (or the default path when path is
// empty) and returns it together with the resolved file path. A missing file
// yields the default config and no error; a present but unreadable or
// malformed file is an InvalidUserConfigError.
func Load(path string) (*UserConfig, string, error) {
	var err error
	if path == "" {
		path, err = DefaultUserConfigPath()
	} else {
		path, err = expandHome(path)
	}
	if err != nil {
		return nil, "", err
	}

	if !fileExists(path) {
		return DefaultUserConfig(), path, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := DefaultUserConfig()
	v.SetDefault("local.toolkit", defaults.Local.Toolkit)
	v.SetDefault("github.username", defaults.GitHub.Username)
	v.SetDefault("github.token", defaults.GitHub.Token)

	if err := v.ReadInConfig(); err != nil {
		return nil, "", &InvalidUserConfigError{Path: path, Err: err}
	}

	var cfg UserConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", &InvalidUserConfigError{Path: path, Err: err}
	}

	if cfg.Local.Toolkit != "" {
		toolkit, err := expandHome(cfg.Local.Toolkit)
		if err != nil {
			return nil, "", err
		}
		cfg.Local.Toolkit = toolkit
	}

	return &cfg, path, nil
}

// expandHome resolves a leading "~" against the current user's home
// directory. Paths without the prefix pass through unchanged.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
