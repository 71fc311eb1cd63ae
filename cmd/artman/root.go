// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"artman-cli/internal/issue"
	"artman-cli/internal/pipeline"
	"artman-cli/internal/resolve"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// flags collects the shared generation flags. The generate subcommand
	// fills in the artifact name and aspect before running.
	flags resolve.Flags

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "artman",
		Short: "Artifact generation orchestrator for Google API client libraries",
		Long: TitleStyle.Render("artman") + SubtitleStyle.Render(" - artifact generation orchestrator") + `

artman turns a declarative artifact description (language, artifact type,
output aspect) into a concrete generation pipeline and runs it. By default
the run happens inside the artman docker image, which ships every
generation toolchain; --local runs it directly on this host instead.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render("artman generate java_gapic") + `                Generate inside the container
  ` + CmdStyle.Render("artman --local generate ruby_gapic") + `        Generate on this host
  ` + CmdStyle.Render("artman --config api/artman.yaml generate go_gapic --aspect CODE"),
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.Config, "config", resolve.DefaultConfig, "artifact config path, absolute or relative to --root-dir")
	rootCmd.PersistentFlags().StringVar(&flags.OutputDir, "output-dir", pipeline.DefaultOutputDir, "directory for generated files")
	rootCmd.PersistentFlags().StringVar(&flags.RootDir, "root-dir", "", "input directory with protos and service configs (default is the working directory)")
	rootCmd.PersistentFlags().StringVar(&flags.UserConfig, "user-config", "", "user config file (default is ~/.artman/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flags.Local, "local", false, "run the pipeline on this host instead of inside the artman image")
	rootCmd.PersistentFlags().StringVar(&flags.Image, "image", defaultImage(), "container image for containerized runs")
	rootCmd.PersistentFlags().StringVar(&flags.GeneratorArgs, "generator-args", "", "extra arguments passed through to the code generator")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// defaultImage derives the container image reference from the build version.
// Development builds track the floating latest tag.
func defaultImage() string {
	if Version == "dev" {
		return "googleapis/artman:latest"
	}
	return "googleapis/artman:" + Version
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
