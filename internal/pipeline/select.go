// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"artman-cli/internal/artifact"

	"github.com/charmbracelet/log"
)

const (
	// GapicOnlyClient generates only the GAPIC layer.
	GapicOnlyClient = "GapicOnlyClientPipeline"
	// GapicClient generates a full client library.
	GapicClient = "GapicClientPipeline"
	// DiscoGapicClient generates a client library from a discovery document.
	DiscoGapicClient = "DiscoGapicClientPipeline"
	// GrpcClient generates the GRPC and proto layers.
	GrpcClient = "GrpcClientPipeline"
	// GapicConfig generates the GAPIC config yaml.
	GapicConfig = "GapicConfigPipeline"
	// DiscoGapicConfig generates the GAPIC config yaml from a discovery
	// document.
	DiscoGapicConfig = "DiscoGapicConfigPipeline"
	// ProtoClient generates the proto layer.
	ProtoClient = "ProtoClientPipeline"

	// DefaultOutputDir is where generated files land unless --output-dir
	// says otherwise.
	DefaultOutputDir = "./artman-genfiles"
)

// ErrUnknownArtifactType is the sentinel error wrapped by
// UnknownArtifactTypeError.
var ErrUnknownArtifactType = errors.New("unrecognized artifact type")

// UnknownArtifactTypeError is returned when no pipeline exists for an
// artifact type. It wraps ErrUnknownArtifactType for errors.Is().
type UnknownArtifactTypeError struct {
	Type artifact.Type
}

// Error implements the error interface.
func (e *UnknownArtifactTypeError) Error() string {
	return fmt.Sprintf("unrecognized artifact type %q: no pipeline can generate it", string(e.Type))
}

// Unwrap returns ErrUnknownArtifactType for errors.Is() compatibility.
func (e *UnknownArtifactTypeError) Unwrap() error { return ErrUnknownArtifactType }

// Selection is the outcome of pipeline selection: the pipeline name plus the
// type-specific arguments it contributes. Extra is merged over the base
// argument map by the resolver.
type Selection struct {
	Pipeline string
	Extra    Args
}

// Selector maps an artifact to its generation pipeline.
type Selector struct {
	// Logger receives the output-dir warning for config generation runs.
	// Defaults to the package logger.
	Logger *log.Logger

	// Scratch allocates a throwaway directory for pipelines whose real
	// output is written into the input tree. Defaults to os.MkdirTemp.
	Scratch func() (string, error)
}

// Select returns the pipeline selection for the artifact. Dispatch is keyed
// on the artifact type alone; outputDir is only consulted to warn when a
// config generation run would silently ignore it.
func (s *Selector) Select(art *artifact.Artifact, outputDir string) (*Selection, error) {
	switch art.Type {
	case artifact.TypeGapicOnly:
		return &Selection{Pipeline: GapicOnlyClient, Extra: s.languageArg(art)}, nil

	case artifact.TypeGapic:
		return &Selection{Pipeline: GapicClient, Extra: s.languageArg(art)}, nil

	case artifact.TypeDiscoGapic:
		extra := s.languageArg(art)
		extra["discovery_doc"] = art.DiscoveryDoc
		return &Selection{Pipeline: DiscoGapicClient, Extra: extra}, nil

	case artifact.TypeGrpc:
		return &Selection{Pipeline: GrpcClient, Extra: s.languageArg(art)}, nil

	case artifact.TypeGapicConfig:
		return &Selection{Pipeline: GapicConfig, Extra: Args{}}, nil

	case artifact.TypeDiscoGapicConfig:
		scratch, err := s.scratchDir()
		if err != nil {
			return nil, fmt.Errorf("failed to create scratch output dir: %w", err)
		}
		if !isDefaultOutputDir(outputDir) {
			s.logger().Warn("`output_dir` is ignored in DiscoGapicConfigGen. " +
				"Yamls are saved at the path specified by `gapic_yaml`.")
		}
		return &Selection{
			Pipeline: DiscoGapicConfig,
			Extra: Args{
				"discovery_doc": art.DiscoveryDoc,
				"output_dir":    scratch,
			},
		}, nil

	case artifact.TypeProtobuf:
		return &Selection{Pipeline: ProtoClient, Extra: s.languageArg(art)}, nil
	}

	return nil, &UnknownArtifactTypeError{Type: art.Type}
}

func (s *Selector) languageArg(art *artifact.Artifact) Args {
	return Args{"language": art.Language.Lower()}
}

func (s *Selector) scratchDir() (string, error) {
	if s.Scratch != nil {
		return s.Scratch()
	}
	return os.MkdirTemp("", "artman-config-")
}

func (s *Selector) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// isDefaultOutputDir compares outputDir to DefaultOutputDir after resolving
// both to absolute paths, so "./artman-genfiles" and "artman-genfiles" agree.
func isDefaultOutputDir(outputDir string) bool {
	a, errA := filepath.Abs(outputDir)
	b, errB := filepath.Abs(DefaultOutputDir)
	if errA != nil || errB != nil {
		return outputDir == DefaultOutputDir
	}
	return a == b
}
