// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultUserConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultUserConfig()

	if cfg.Local.Toolkit != "" {
		t.Errorf("expected default toolkit to be empty, got %q", cfg.Local.Toolkit)
	}
	if cfg.GitHub.Username != "" {
		t.Errorf("expected default github username to be empty, got %q", cfg.GitHub.Username)
	}
	if cfg.GitHub.Token != "" {
		t.Errorf("expected default github token to be empty, got %q", cfg.GitHub.Token)
	}
}

func TestDefaultUserConfigPath(t *testing.T) {
	t.Parallel()

	path, err := DefaultUserConfigPath()
	if err != nil {
		t.Fatalf("DefaultUserConfigPath() returned error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".artman", "config.yaml")
	if path != expected {
		t.Errorf("DefaultUserConfigPath() = %s, want %s", path, expected)
	}
}

func TestLoad_ReturnsDefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(missing)
	if err != nil {
		t.Fatalf("Load() returned error for missing file: %v", err)
	}
	if resolved != missing {
		t.Errorf("resolved path = %s, want %s", resolved, missing)
	}
	if cfg.Local.Toolkit != "" {
		t.Errorf("expected empty toolkit, got %q", cfg.Local.Toolkit)
	}
	if cfg.GitHub.Username != "" {
		t.Errorf("expected empty username, got %q", cfg.GitHub.Username)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `local:
  toolkit: /opt/toolkit
github:
  username: octocat
  token: ghp_secret
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write user config: %v", err)
	}

	cfg, resolved, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %s, want %s", resolved, path)
	}
	if cfg.Local.Toolkit != "/opt/toolkit" {
		t.Errorf("Local.Toolkit = %q, want /opt/toolkit", cfg.Local.Toolkit)
	}
	if cfg.GitHub.Username != "octocat" {
		t.Errorf("GitHub.Username = %q, want octocat", cfg.GitHub.Username)
	}
	if cfg.GitHub.Token != "ghp_secret" {
		t.Errorf("GitHub.Token = %q, want ghp_secret", cfg.GitHub.Token)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `github:
  username: octocat
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write user config: %v", err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.GitHub.Username != "octocat" {
		t.Errorf("GitHub.Username = %q, want octocat", cfg.GitHub.Username)
	}
	if cfg.Local.Toolkit != "" {
		t.Errorf("unset Local.Toolkit = %q, want empty", cfg.Local.Toolkit)
	}
	if cfg.GitHub.Token != "" {
		t.Errorf("unset GitHub.Token = %q, want empty", cfg.GitHub.Token)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "local: [this is: not a mapping\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write user config: %v", err)
	}

	_, _, err := Load(path)
	if err == nil {
		t.Fatal("Load() returned no error for malformed file")
	}
	if !errors.Is(err, ErrInvalidUserConfig) {
		t.Errorf("error should wrap ErrInvalidUserConfig, got: %v", err)
	}

	var invalid *InvalidUserConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("error should be *InvalidUserConfigError, got: %T", err)
	}
	if invalid.Path != path {
		t.Errorf("InvalidUserConfigError.Path = %q, want %q", invalid.Path, path)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should contain the path, got: %s", err.Error())
	}
}

func TestLoad_ExpandsToolkitHome(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `local:
  toolkit: ~/toolkit
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write user config: %v", err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, "toolkit")
	if cfg.Local.Toolkit != expected {
		t.Errorf("Local.Toolkit = %q, want %q", cfg.Local.Toolkit, expected)
	}
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home directory: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"~", home},
		{"~/.artman/config.yaml", filepath.Join(home, ".artman", "config.yaml")},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
		{"~user/path", "~user/path"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, err := expandHome(tt.path)
			if err != nil {
				t.Fatalf("expandHome(%q) returned error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("expandHome(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
