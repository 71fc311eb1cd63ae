// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"artman-cli/internal/docker"
)

// ContainerOption configures a ContainerRunner.
type ContainerOption func(*ContainerRunner)

// ContainerRunner replays the host command line inside the artman docker
// image. The inner invocation runs with --local forced on, so the container
// side never recurses back here.
type ContainerRunner struct {
	engine   *docker.Engine
	identity func() (uid, gid int)
	logger   *log.Logger
}

// NewContainerRunner returns a runner backed by a default docker engine and
// the current process identity.
func NewContainerRunner(opts ...ContainerOption) *ContainerRunner {
	r := &ContainerRunner{
		engine: docker.NewEngine(),
		identity: func() (int, int) {
			return os.Getuid(), os.Getgid()
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithContainerEngine replaces the docker engine.
func WithContainerEngine(eng *docker.Engine) ContainerOption {
	return func(r *ContainerRunner) { r.engine = eng }
}

// WithIdentity overrides the host identity passed into the container for
// the ownership handback.
func WithIdentity(identity func() (uid, gid int)) ContainerOption {
	return func(r *ContainerRunner) { r.identity = identity }
}

// WithContainerLogger sets the runner logger.
func WithContainerLogger(logger *log.Logger) ContainerOption {
	return func(r *ContainerRunner) { r.logger = logger }
}

// Run checks the docker prerequisites, builds the container invocation and
// executes it, relaying the container output through the logger. The
// matching interactive debug command is logged at debug level in every
// outcome, so a failing run can be re-entered by hand.
func (r *ContainerRunner) Run(ctx context.Context, in *docker.BuildInput) error {
	if err := r.engine.CheckPrerequisites(ctx, in.Image); err != nil {
		return err
	}

	build := *in
	build.UID, build.GID = r.identity()
	inv, err := docker.BuildInvocation(&build)
	if err != nil {
		return fmt.Errorf("failed to build container invocation: %w", err)
	}

	defer func() {
		if debugCmd, err := inv.DebugCommand(); err == nil {
			r.log().Debug(fmt.Sprintf("For further inspection inside docker container, run `%s`", debugCmd))
		}
	}()

	output, err := r.engine.Run(ctx, inv.RunArgs)
	if err != nil {
		if len(output) > 0 {
			r.log().Error(strings.TrimRight(string(output), "\n"))
		}
		r.log().Error(`Artman execution failed. For additional logging, re-run the command with the "--verbose" flag`)
		return err
	}
	if len(output) > 0 {
		r.log().Info(strings.TrimRight(string(output), "\n"))
	}
	return nil
}

func (r *ContainerRunner) log() *log.Logger {
	if r.logger != nil {
		return r.logger
	}
	return log.Default()
}
