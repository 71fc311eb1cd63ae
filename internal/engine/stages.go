// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goyek/goyek/v3"
	"github.com/goyek/x/cmd"
	"mvdan.cc/sh/v3/syntax"

	"artman-cli/internal/artifact"
	"artman-cli/internal/pipeline"
)

// stageSpec describes the shape of one pipeline's flow.
type stageSpec struct {
	// name is the main task name, the pipeline identifier.
	name  string
	usage string
	// required lists args that must be present and non-empty.
	required []string
	// codeDirKey names the arg holding the generated code directory.
	// Empty for config-generation flows, which write next to their input.
	codeDirKey string
	// gradleTask is the toolkit entry point for the generate stage.
	gradleTask string
	// packaged flows end with a packaging stage gated by the aspect arg.
	packaged bool
}

// GapicOnlyClientFlow defines the stages for GapicOnlyClientPipeline.
func GapicOnlyClientFlow(flow *goyek.Flow, args pipeline.Args) *goyek.DefinedTask {
	return defineStages(flow, args, stageSpec{
		name:       pipeline.GapicOnlyClient,
		usage:      "generate the GAPIC layer for an existing client",
		required:   []string{"api_name", "language", "output_dir"},
		codeDirKey: "gapic_code_dir",
		gradleTask: "runCodeGen",
		packaged:   true,
	})
}

// GapicClientFlow defines the stages for GapicClientPipeline.
func GapicClientFlow(flow *goyek.Flow, args pipeline.Args) *goyek.DefinedTask {
	return defineStages(flow, args, stageSpec{
		name:       pipeline.GapicClient,
		usage:      "generate a full client library",
		required:   []string{"api_name", "language", "output_dir"},
		codeDirKey: "gapic_code_dir",
		gradleTask: "runCodeGen",
		packaged:   true,
	})
}

// DiscoGapicClientFlow defines the stages for DiscoGapicClientPipeline.
func DiscoGapicClientFlow(flow *goyek.Flow, args pipeline.Args) *goyek.DefinedTask {
	return defineStages(flow, args, stageSpec{
		name:       pipeline.DiscoGapicClient,
		usage:      "generate a client library from a discovery document",
		required:   []string{"api_name", "language", "output_dir", "discovery_doc"},
		codeDirKey: "gapic_code_dir",
		gradleTask: "runCodeGen",
		packaged:   true,
	})
}

// GrpcClientFlow defines the stages for GrpcClientPipeline.
func GrpcClientFlow(flow *goyek.Flow, args pipeline.Args) *goyek.DefinedTask {
	return defineStages(flow, args, stageSpec{
		name:       pipeline.GrpcClient,
		usage:      "generate the GRPC and proto layers",
		required:   []string{"api_name", "language", "output_dir"},
		codeDirKey: "grpc_code_dir",
		gradleTask: "runCodeGen",
		packaged:   true,
	})
}

// GapicConfigFlow defines the stages for GapicConfigPipeline.
func GapicConfigFlow(flow *goyek.Flow, args pipeline.Args) *goyek.DefinedTask {
	return defineStages(flow, args, stageSpec{
		name:       pipeline.GapicConfig,
		usage:      "generate the GAPIC config yaml into the input tree",
		required:   []string{"api_name", "gapic_yaml"},
		gradleTask: "runConfigGen",
	})
}

// DiscoGapicConfigFlow defines the stages for DiscoGapicConfigPipeline.
func DiscoGapicConfigFlow(flow *goyek.Flow, args pipeline.Args) *goyek.DefinedTask {
	return defineStages(flow, args, stageSpec{
		name:       pipeline.DiscoGapicConfig,
		usage:      "generate the GAPIC config yaml from a discovery document",
		required:   []string{"api_name", "output_dir", "discovery_doc"},
		gradleTask: "runDiscoConfigGen",
	})
}

// ProtoClientFlow defines the stages for ProtoClientPipeline.
func ProtoClientFlow(flow *goyek.Flow, args pipeline.Args) *goyek.DefinedTask {
	return defineStages(flow, args, stageSpec{
		name:       pipeline.ProtoClient,
		usage:      "generate the proto layer",
		required:   []string{"api_name", "language", "output_dir"},
		codeDirKey: "proto_code_dir",
		gradleTask: "runCodeGen",
		packaged:   true,
	})
}

// defineStages builds the serial stage chain for one pipeline and returns
// its main task. Tasks are declared non-parallel, so the flow runs strictly
// validate, prepare, generate, package.
func defineStages(flow *goyek.Flow, args pipeline.Args, spec stageSpec) *goyek.DefinedTask {
	validate := flow.Define(goyek.Task{
		Name:  "validate",
		Usage: "check required pipeline arguments",
		Action: func(a *goyek.A) {
			requireArgs(a, args, spec.required...)
		},
	})

	prepare := flow.Define(goyek.Task{
		Name:  "prepare",
		Usage: "create output directories",
		Deps:  goyek.Deps{validate},
		Action: func(a *goyek.A) {
			prepareDirs(a, args, spec.codeDirKey)
		},
	})

	generate := flow.Define(goyek.Task{
		Name:  "generate",
		Usage: "invoke the toolkit generator",
		Deps:  goyek.Deps{prepare},
		Action: func(a *goyek.A) {
			if spec.packaged && aspectArg(args) == artifact.AspectPackage {
				a.Skip("aspect PACKAGE requested; code generation skipped")
			}
			runGenerator(a, args, spec.gradleTask)
		},
	})

	last := generate
	if spec.packaged {
		last = flow.Define(goyek.Task{
			Name:  "package",
			Usage: "stage the generated artifact",
			Deps:  goyek.Deps{generate},
			Action: func(a *goyek.A) {
				if aspectArg(args) == artifact.AspectCode {
					a.Skip("aspect CODE requested; packaging skipped")
				}
				packageArtifact(a, args, spec.codeDirKey)
			},
		})
	}

	return flow.Define(goyek.Task{
		Name:  spec.name,
		Usage: spec.usage,
		Deps:  goyek.Deps{last},
	})
}

// stringArg returns the string value for key, or "" when absent or not a
// string.
func stringArg(args pipeline.Args, key string) string {
	s, _ := args[key].(string)
	return s
}

func aspectArg(args pipeline.Args) artifact.Aspect {
	return artifact.Aspect(stringArg(args, "aspect"))
}

func requireArgs(a *goyek.A, args pipeline.Args, keys ...string) {
	a.Helper()
	for _, key := range keys {
		if stringArg(args, key) == "" {
			a.Errorf("missing required pipeline argument %q", key)
		}
	}
}

func prepareDirs(a *goyek.A, args pipeline.Args, codeDirKey string) {
	a.Helper()
	if out := stringArg(args, "output_dir"); out != "" {
		if err := os.MkdirAll(out, 0o755); err != nil {
			a.Fatalf("failed to create output directory: %v", err)
		}
		a.Logf("output directory ready at %s", out)
	}
	if codeDirKey != "" {
		if dir := stringArg(args, codeDirKey); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				a.Fatalf("failed to create code directory: %v", err)
			}
		}
	}
}

// runGenerator shells out to the toolkit's gradle entry point. The toolkit
// is an optional external installation, so its absence skips the stage
// instead of failing the flow.
func runGenerator(a *goyek.A, args pipeline.Args, gradleTask string) {
	a.Helper()
	toolkit := stringArg(args, "toolkit_path")
	if toolkit == "" {
		a.Skip("toolkit path not configured; generator invocation skipped")
	}
	if info, err := os.Stat(toolkit); err != nil || !info.IsDir() {
		a.Skipf("toolkit not found at %s; generator invocation skipped", toolkit)
	}

	line := fmt.Sprintf("%s -p %s %s", filepath.Join(toolkit, "gradlew"), toolkit, gradleTask)
	if extra := stringArg(args, "generator_args"); extra != "" {
		quoted, err := syntax.Quote("-Pclargs="+extra, syntax.LangBash)
		if err != nil {
			a.Errorf("generator args not quotable: %v", err)
			return
		}
		line += " " + quoted
	}

	var opts []cmd.Option
	if root := stringArg(args, "root_dir"); root != "" {
		opts = append(opts, cmd.Dir(root))
	}
	cmd.Exec(a, line, opts...)
}

func packageArtifact(a *goyek.A, args pipeline.Args, codeDirKey string) {
	a.Helper()
	dir := stringArg(args, codeDirKey)
	if dir == "" {
		a.Skip("no code directory configured; packaging skipped")
	}
	if _, err := os.Stat(dir); err != nil {
		a.Skipf("nothing to package at %s", dir)
	}
	a.Logf("artifact staged at %s", dir)
}
