// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"

	"artman-cli/internal/artifact"
	"artman-cli/internal/config"
	"artman-cli/internal/docker"
	"artman-cli/internal/engine"
	"artman-cli/internal/pipeline"
)

// Classify maps a run error to its process exit code. Sentinel matches win
// over the mode; an error with no recognized sentinel falls back to the
// failure class of the mode it happened in.
func Classify(err error, mode Mode) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, artifact.ErrConfigNotFound),
		errors.Is(err, artifact.ErrInvalidConfig),
		errors.Is(err, artifact.ErrArtifactNotFound),
		errors.Is(err, artifact.ErrInvalidArtifact),
		errors.Is(err, artifact.ErrInvalidAspect),
		errors.Is(err, config.ErrInvalidUserConfig),
		errors.Is(err, pipeline.ErrUnknownArtifactType):
		return ExitConfigFailure
	case errors.Is(err, docker.ErrPrerequisites),
		errors.Is(err, docker.ErrContainerRun):
		return ExitContainerFailure
	case errors.Is(err, engine.ErrPipelineFailed),
		errors.Is(err, engine.ErrFlowNotRegistered):
		return ExitPipelineFailure
	case mode == ModeContainer:
		return ExitContainerFailure
	default:
		return ExitPipelineFailure
	}
}
