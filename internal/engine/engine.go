// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goyek/goyek/v3"
	"github.com/goyek/goyek/v3/middleware"

	"artman-cli/internal/pipeline"
)

// ErrPipelineFailed is the sentinel error wrapped by ExecutionError.
var ErrPipelineFailed = errors.New("pipeline execution failed")

type (
	// Option configures an Engine.
	Option func(*Engine)

	// Engine runs pipeline descriptors through their registered flows.
	Engine struct {
		registry *Registry
		output   io.Writer
		verbose  bool
	}

	// ExecutionError is returned when a pipeline flow fails. It wraps
	// ErrPipelineFailed for errors.Is() and the underlying flow error for
	// errors.As().
	ExecutionError struct {
		Pipeline string
		Err      error
	}
)

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("pipeline %s failed: %v", e.Pipeline, e.Err)
}

// Unwrap returns the wrapped errors for errors.Is()/errors.As()
// compatibility.
func (e *ExecutionError) Unwrap() []error {
	return []error{ErrPipelineFailed, e.Err}
}

// New creates an engine with the default pipeline registry. Flow output goes
// to stderr unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: NewRegistry(),
		output:   os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRegistry overrides the pipeline registry.
func WithRegistry(registry *Registry) Option {
	return func(e *Engine) { e.registry = registry }
}

// WithOutput sets the writer receiving flow and stage output.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.output = w }
}

// WithVerbose keeps the output of non-failed stages. By default only failed
// stages report their output.
func WithVerbose(verbose bool) Option {
	return func(e *Engine) { e.verbose = verbose }
}

// Registry returns the engine's pipeline registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Execute runs the flow registered for the descriptor's pipeline and blocks
// until it finishes. Stage tasks run serially. A failed flow is returned as
// an ExecutionError; the caller decides process exit semantics.
func (e *Engine) Execute(ctx context.Context, desc *pipeline.Descriptor) error {
	builder, ok := e.registry.Lookup(desc.Pipeline)
	if !ok {
		return &UnregisteredPipelineError{Pipeline: desc.Pipeline}
	}

	flow := &goyek.Flow{}
	flow.SetOutput(e.output)
	flow.Use(middleware.ReportStatus)
	if !e.verbose {
		flow.Use(middleware.SilentNonFailed)
	}

	main := builder(flow, desc.Args)
	if err := flow.Execute(ctx, []string{main.Name()}); err != nil {
		return &ExecutionError{Pipeline: desc.Pipeline, Err: err}
	}
	return nil
}
