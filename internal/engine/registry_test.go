// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"reflect"
	"testing"

	"github.com/goyek/goyek/v3"

	"artman-cli/internal/pipeline"
)

// TestNewRegistry_CoversAllPipelines verifies every pipeline the selector
// can produce has a registered flow builder.
func TestNewRegistry_CoversAllPipelines(t *testing.T) {
	t.Parallel()

	want := []string{
		pipeline.DiscoGapicClient,
		pipeline.DiscoGapicConfig,
		pipeline.GapicClient,
		pipeline.GapicConfig,
		pipeline.GapicOnlyClient,
		pipeline.GrpcClient,
		pipeline.ProtoClient,
	}
	if got := NewRegistry().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	if _, ok := r.Lookup(pipeline.GapicClient); !ok {
		t.Errorf("expected builder for %s", pipeline.GapicClient)
	}
	if _, ok := r.Lookup("NoSuchPipeline"); ok {
		t.Error("expected no builder for unknown pipeline")
	}
}

// TestRegistry_Register verifies the registry is usable as an extension
// point for additional pipelines.
func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("EchoPipeline", func(flow *goyek.Flow, _ pipeline.Args) *goyek.DefinedTask {
		return flow.Define(goyek.Task{Name: "EchoPipeline", Usage: "test pipeline"})
	})

	if _, ok := r.Lookup("EchoPipeline"); !ok {
		t.Fatal("expected custom pipeline to be registered")
	}
	if got := len(r.Names()); got != 8 {
		t.Errorf("expected 8 registered pipelines, got %d", got)
	}
}

// TestFlowBuilders_StageChain verifies each builder defines the serial
// stage chain for its pipeline.
func TestFlowBuilders_StageChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		builder  FlowBuilder
		pipeline string
		stages   []string
	}{
		{
			name:     "gapic only client",
			builder:  GapicOnlyClientFlow,
			pipeline: pipeline.GapicOnlyClient,
			stages:   []string{"package", "generate", "prepare", "validate"},
		},
		{
			name:     "gapic client",
			builder:  GapicClientFlow,
			pipeline: pipeline.GapicClient,
			stages:   []string{"package", "generate", "prepare", "validate"},
		},
		{
			name:     "discogapic client",
			builder:  DiscoGapicClientFlow,
			pipeline: pipeline.DiscoGapicClient,
			stages:   []string{"package", "generate", "prepare", "validate"},
		},
		{
			name:     "grpc client",
			builder:  GrpcClientFlow,
			pipeline: pipeline.GrpcClient,
			stages:   []string{"package", "generate", "prepare", "validate"},
		},
		{
			name:     "gapic config",
			builder:  GapicConfigFlow,
			pipeline: pipeline.GapicConfig,
			stages:   []string{"generate", "prepare", "validate"},
		},
		{
			name:     "discogapic config",
			builder:  DiscoGapicConfigFlow,
			pipeline: pipeline.DiscoGapicConfig,
			stages:   []string{"generate", "prepare", "validate"},
		},
		{
			name:     "proto client",
			builder:  ProtoClientFlow,
			pipeline: pipeline.ProtoClient,
			stages:   []string{"package", "generate", "prepare", "validate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flow := &goyek.Flow{}
			main := tt.builder(flow, pipeline.Args{})

			if main.Name() != tt.pipeline {
				t.Errorf("main task name = %q, want %q", main.Name(), tt.pipeline)
			}

			task := main
			for _, want := range tt.stages {
				deps := task.Deps()
				if len(deps) != 1 {
					t.Fatalf("task %q has %d deps, want 1", task.Name(), len(deps))
				}
				task = deps[0]
				if task.Name() != want {
					t.Errorf("stage = %q, want %q", task.Name(), want)
				}
			}
			if deps := task.Deps(); len(deps) != 0 {
				t.Errorf("first stage %q should have no deps, got %d", task.Name(), len(deps))
			}
		})
	}
}
