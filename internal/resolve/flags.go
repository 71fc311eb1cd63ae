// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"fmt"
	"os"
	"path/filepath"

	"artman-cli/internal/pipeline"
)

// DefaultConfig is the artifact config filename used when --config is not
// given, resolved relative to the root dir.
const DefaultConfig = "artman.yaml"

// Flags carries the command-line input for one generation run. The zero
// value is not usable; the CLI layer fills in flag defaults before handing
// it over.
type Flags struct {
	// Config is the artifact config path. Relative paths resolve against
	// RootDir once Normalize has run.
	Config string
	// OutputDir receives generated files.
	OutputDir string
	// RootDir is the input tree with protos and service configs. Empty
	// means the current working directory.
	RootDir string
	// UserConfig is the per-user config path; empty means the default.
	UserConfig string
	// Local runs the pipeline on this host instead of inside a container.
	Local bool
	// Image is the container image for containerized runs.
	Image string
	// GeneratorArgs is passed through to the code generator verbatim.
	GeneratorArgs string
	// Verbose enables debug logging.
	Verbose bool

	// ArtifactName is the artifact to generate, from the positional
	// argument of the generate command.
	ArtifactName string
	// Aspect optionally overrides the configured output aspect. Matched
	// case-insensitively against ALL, CODE and PACKAGE.
	Aspect string
}

// Normalize resolves the path flags to absolute form. A set RootDir anchors
// a relative Config; otherwise both resolve against the current working
// directory. Normalize is idempotent.
func (f *Flags) Normalize() error {
	if f.Config == "" {
		f.Config = DefaultConfig
	}
	if f.OutputDir == "" {
		f.OutputDir = pipeline.DefaultOutputDir
	}

	if f.RootDir != "" {
		abs, err := filepath.Abs(f.RootDir)
		if err != nil {
			return fmt.Errorf("failed to resolve --root-dir: %w", err)
		}
		f.RootDir = abs
		if !filepath.IsAbs(f.Config) {
			f.Config = filepath.Join(f.RootDir, f.Config)
		}
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		f.RootDir = cwd
		if !filepath.IsAbs(f.Config) {
			f.Config = filepath.Join(cwd, f.Config)
		}
	}

	abs, err := filepath.Abs(f.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve --output-dir: %w", err)
	}
	f.OutputDir = abs

	return nil
}
