// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/goyek/goyek/v3"

	"artman-cli/internal/pipeline"
)

// ErrFlowNotRegistered is the sentinel error wrapped by
// UnregisteredPipelineError.
var ErrFlowNotRegistered = errors.New("no flow registered for pipeline")

type (
	// FlowBuilder defines a pipeline's stage tasks on the given flow and
	// returns the main task to execute.
	FlowBuilder func(flow *goyek.Flow, args pipeline.Args) *goyek.DefinedTask

	// Registry maps pipeline names to flow builders.
	Registry struct {
		builders map[string]FlowBuilder
	}

	// UnregisteredPipelineError is returned when a descriptor names a
	// pipeline with no registered flow builder. The selector only produces
	// registered names, so hitting this indicates a wiring defect.
	UnregisteredPipelineError struct {
		Pipeline string
	}
)

// Error implements the error interface.
func (e *UnregisteredPipelineError) Error() string {
	return fmt.Sprintf("no flow registered for pipeline %q", e.Pipeline)
}

// Unwrap returns ErrFlowNotRegistered for errors.Is() compatibility.
func (e *UnregisteredPipelineError) Unwrap() error { return ErrFlowNotRegistered }

// NewRegistry returns a registry with the seven generation pipelines
// registered.
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]FlowBuilder)}
	r.Register(pipeline.GapicOnlyClient, GapicOnlyClientFlow)
	r.Register(pipeline.GapicClient, GapicClientFlow)
	r.Register(pipeline.DiscoGapicClient, DiscoGapicClientFlow)
	r.Register(pipeline.GrpcClient, GrpcClientFlow)
	r.Register(pipeline.GapicConfig, GapicConfigFlow)
	r.Register(pipeline.DiscoGapicConfig, DiscoGapicConfigFlow)
	r.Register(pipeline.ProtoClient, ProtoClientFlow)
	return r
}

// Register binds a flow builder to a pipeline name, replacing any existing
// binding.
func (r *Registry) Register(name string, builder FlowBuilder) {
	r.builders[name] = builder
}

// Lookup returns the builder registered for the pipeline name.
func (r *Registry) Lookup(name string) (FlowBuilder, bool) {
	builder, ok := r.builders[name]
	return builder, ok
}

// Names returns the registered pipeline names, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.builders))
}
