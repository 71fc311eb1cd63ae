// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"artman-cli/internal/artifact"
	"artman-cli/internal/config"
	"artman-cli/internal/docker"
	"artman-cli/internal/engine"
	"artman-cli/internal/issue"
	"artman-cli/internal/pipeline"
	"artman-cli/internal/resolve"
	"artman-cli/internal/runtime"
	"artman-cli/internal/workspace"
)

// generateCmd resolves one artifact into a pipeline run.
var generateCmd = &cobra.Command{
	Use:   "generate <artifact_name>",
	Short: "Generate an artifact described in the artifact config",
	Long: `Generate one artifact described in the artifact config.

The artifact name selects an entry under 'artifacts:' in the config file
(--config, default artman.yaml). The entry's type and language pick the
generation pipeline; --aspect narrows the output to code only or package
only.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags.ArtifactName = args[0]
		return runGenerate(cmd.Context(), &flags, os.Args[1:])
	},
}

func init() {
	generateCmd.Flags().StringVar(&flags.Aspect, "aspect", "", "override the configured output aspect (ALL, CODE or PACKAGE)")
}

// runGenerate runs the generation and converts any failure into an ExitError
// carrying the exit code for its failure class, rendering remediation first.
func runGenerate(ctx context.Context, f *resolve.Flags, cliArgs []string) error {
	logger := newRunLogger(f.Verbose)
	mode := runtime.Route(f.Local)

	if err := generate(ctx, logger, f, cliArgs, mode); err != nil {
		renderServiceError(os.Stderr, classifyGenerateError(err, f.Verbose))
		return &ExitError{Code: runtime.Classify(err, mode), Err: err}
	}
	return nil
}

// generate is the full run: load the user config, adjust the input tree,
// resolve the descriptor, then dispatch to the selected execution mode.
// Resolution always happens on the host, so config errors surface before a
// container is started.
func generate(ctx context.Context, logger *log.Logger, f *resolve.Flags, cliArgs []string, mode runtime.Mode) error {
	userCfg, userCfgPath, err := config.Load(f.UserConfig)
	if err != nil {
		return err
	}
	logger.Debug("User config loaded", "path", userCfgPath)

	if err := f.Normalize(); err != nil {
		return err
	}

	adjuster := &workspace.Adjuster{Logger: logger}
	if err := adjuster.EnsureCommonProtos(f.RootDir); err != nil {
		return err
	}

	resolver := &resolve.Resolver{UserConfig: userCfg, Logger: logger}
	desc, err := resolver.Resolve(f)
	if err != nil {
		return err
	}

	if mode == runtime.ModeLocal {
		runner := runtime.NewLocalRunner(
			runtime.WithFlowEngine(engine.New(engine.WithVerbose(f.Verbose))),
			runtime.WithLocalLogger(logger),
		)
		return runner.Run(ctx, desc, f.OutputDir)
	}

	logger.Debug("Running artman command in a Docker instance.")
	return runContainer(ctx, logger, &docker.BuildInput{
		RootDir:    f.RootDir,
		OutputDir:  f.OutputDir,
		ConfigPath: f.Config,
		Image:      f.Image,
		Args:       cliArgs,
	})
}

// runContainer is swappable for tests.
var runContainer = func(ctx context.Context, logger *log.Logger, in *docker.BuildInput) error {
	runner := runtime.NewContainerRunner(
		runtime.WithContainerEngine(docker.NewEngine(docker.WithLogger(logger))),
		runtime.WithContainerLogger(logger),
	)
	return runner.Run(ctx, in)
}

// newRunLogger builds the logger every component of the run shares.
func newRunLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "artman",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// classifyGenerateError maps run failures to issue catalog IDs and returns a
// styled message for CLI rendering. It preserves actionable error details.
func classifyGenerateError(err error, verbose bool) *ServiceError {
	var issueID issue.Id

	switch {
	case errors.Is(err, artifact.ErrConfigNotFound):
		issueID = issue.ConfigNotFoundId
	case errors.Is(err, artifact.ErrInvalidConfig),
		errors.Is(err, artifact.ErrArtifactNotFound),
		errors.Is(err, artifact.ErrInvalidArtifact),
		errors.Is(err, artifact.ErrInvalidAspect),
		errors.Is(err, config.ErrInvalidUserConfig):
		issueID = issue.ArtifactConfigInvalidId
	case errors.Is(err, pipeline.ErrUnknownArtifactType):
		issueID = issue.UnknownArtifactTypeId
	case errors.Is(err, docker.ErrPrerequisites):
		issueID = dockerPrereqIssueID(err)
	case errors.Is(err, docker.ErrContainerRun):
		issueID = issue.ContainerRunFailedId
	case errors.Is(err, engine.ErrPipelineFailed), errors.Is(err, engine.ErrFlowNotRegistered):
		issueID = issue.PipelineFailedId
	}

	return newServiceError(err, issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose)))
}

// dockerPrereqIssueID separates "docker itself is missing" from "the image
// could not be fetched": a prerequisite failure with an underlying cause
// means the daemon answered and the pull failed.
func dockerPrereqIssueID(err error) issue.Id {
	var prereqErr *docker.PrerequisiteError
	if errors.As(err, &prereqErr) && prereqErr.Cause != nil {
		return issue.DockerImageUnavailableId
	}
	return issue.DockerEngineNotFoundId
}
