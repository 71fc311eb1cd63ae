// SPDX-License-Identifier: MPL-2.0

package docker

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrContainerRun is the sentinel error wrapped by ExecutionError.
var ErrContainerRun = errors.New("container run failed")

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// EngineOption configures an Engine.
	EngineOption func(*Engine)

	// Engine wraps the Docker CLI.
	Engine struct {
		binaryPath  string
		execCommand ExecCommandFunc
		logger      *log.Logger
	}

	// ExecutionError is returned when the container process exits nonzero.
	// It carries the combined output so the caller can surface the inner
	// run's logs. It wraps ErrContainerRun for errors.Is().
	ExecutionError struct {
		ExitCode int
		Output   []byte
	}
)

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("container run exited with status %d", e.ExitCode)
}

// Unwrap returns ErrContainerRun for errors.Is() compatibility.
func (e *ExecutionError) Unwrap() error { return ErrContainerRun }

// NewEngine creates a Docker engine, resolving the docker binary from PATH.
func NewEngine(opts ...EngineOption) *Engine {
	path, _ := exec.LookPath("docker")
	e := &Engine{
		binaryPath:  path,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithBinaryPath overrides the resolved docker binary path.
func WithBinaryPath(path string) EngineOption {
	return func(e *Engine) { e.binaryPath = path }
}

// WithExecCommand overrides command creation, for tests.
func WithExecCommand(fn ExecCommandFunc) EngineOption {
	return func(e *Engine) { e.execCommand = fn }
}

// WithLogger sets the engine logger.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// BinaryPath returns the resolved docker binary path, or "" when docker is
// not installed.
func (e *Engine) BinaryPath() string {
	return e.binaryPath
}

// Available reports whether the docker daemon answers.
func (e *Engine) Available(ctx context.Context) bool {
	if e.binaryPath == "" {
		return false
	}
	cmd := e.execCommand(ctx, e.binaryPath, "version", "--format", "{{.Server.Version}}")
	return cmd.Run() == nil
}

// ImageExists reports whether the image is present locally.
func (e *Engine) ImageExists(ctx context.Context, image string) bool {
	cmd := e.execCommand(ctx, e.binaryPath, "image", "inspect", image)
	return cmd.Run() == nil
}

// Pull fetches the image from its registry.
func (e *Engine) Pull(ctx context.Context, image string) error {
	cmd := e.execCommand(ctx, e.binaryPath, "pull", image)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w\n%s", image, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Run executes `docker <args...>` and returns the combined output. A nonzero
// exit becomes an ExecutionError carrying the output; other failures (binary
// missing, context canceled) are returned as-is.
func (e *Engine) Run(ctx context.Context, args []string) ([]byte, error) {
	cmd := e.execCommand(ctx, e.binaryPath, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, &ExecutionError{ExitCode: exitErr.ExitCode(), Output: out}
		}
		return out, fmt.Errorf("failed to run docker: %w", err)
	}
	return out, nil
}

func (e *Engine) log() *log.Logger {
	if e.logger != nil {
		return e.logger
	}
	return log.Default()
}
