// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"artman-cli/internal/issue"
	"artman-cli/pkg/cueutil"
)

//go:embed artifact_schema.cue
var artifactSchema []byte

var (
	// ErrConfigNotFound is the sentinel error wrapped by ConfigNotFoundError.
	ErrConfigNotFound = errors.New("artifact config not found")
	// ErrArtifactNotFound is the sentinel error wrapped by ArtifactNotFoundError.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid artifact config")
)

type (
	// ConfigNotFoundError is returned when the artifact config file does not
	// exist at the resolved path. It wraps ErrConfigNotFound for errors.Is().
	ConfigNotFoundError struct {
		Path string
	}

	// ArtifactNotFoundError is returned when the config file has no artifact
	// with the requested name. It wraps ErrArtifactNotFound for errors.Is().
	ArtifactNotFoundError struct {
		Name string
		Path string
	}

	// InvalidConfigError is returned when the config file exists but fails
	// schema or semantic validation. It wraps the underlying validation
	// error; errors.Is(err, ErrInvalidConfig) also holds.
	InvalidConfigError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("artifact config file %q does not exist", e.Path)
}

// Unwrap returns ErrConfigNotFound for errors.Is() compatibility.
func (e *ConfigNotFoundError) Unwrap() error { return ErrConfigNotFound }

// Error implements the error interface.
func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("artifact %q not found in %s", e.Name, e.Path)
}

// Unwrap returns ErrArtifactNotFound for errors.Is() compatibility.
func (e *ArtifactNotFoundError) Unwrap() error { return ErrArtifactNotFound }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid artifact config %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the underlying validation error so
// callers can branch with errors.Is on either.
func (e *InvalidConfigError) Unwrap() []error {
	return []error{ErrInvalidConfig, e.Err}
}

// Load reads and validates the artifact config file at path. The file must
// exist; a missing file is a ConfigNotFoundError so callers can distinguish
// "not there" from "there but broken".
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{Path: path}
		}
		return nil, issue.NewErrorContext().
			WithOperation("read artifact config").
			WithResource(path).
			WithSuggestion("Check the file permissions").
			Wrap(err).
			BuildError()
	}

	result, err := cueutil.ParseAndDecodeYAML[Config](
		artifactSchema, data, "#Config",
		cueutil.WithFilename(filepath.Base(path)),
	)
	if err != nil {
		return nil, &InvalidConfigError{Path: path, Err: err}
	}

	cfg := result.Value
	if err := cfg.validate(); err != nil {
		return nil, &InvalidConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// validate applies the semantic checks the schema cannot express.
func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Artifacts))
	for i := range c.Artifacts {
		a := &c.Artifacts[i]
		if seen[a.Name] {
			return fmt.Errorf("duplicate artifact name %q", a.Name)
		}
		seen[a.Name] = true
		if valid, errs := a.IsValid(); !valid {
			return errs[0]
		}
	}
	return nil
}

// Lookup returns the artifact with the given name. The path is only used for
// error reporting.
func (c *Config) Lookup(name, path string) (*Artifact, error) {
	for i := range c.Artifacts {
		if c.Artifacts[i].Name == name {
			return &c.Artifacts[i], nil
		}
	}
	return nil, &ArtifactNotFoundError{Name: name, Path: path}
}
