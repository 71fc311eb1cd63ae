// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// TypeGapicOnly generates only the GAPIC layer of a client library.
	TypeGapicOnly Type = "GAPIC_ONLY"
	// TypeGapic generates a full client library (GAPIC + GRPC + proto layers).
	TypeGapic Type = "GAPIC"
	// TypeDiscoGapic generates a client library from a discovery document.
	TypeDiscoGapic Type = "DISCOGAPIC"
	// TypeGrpc generates the GRPC and proto layers only.
	TypeGrpc Type = "GRPC"
	// TypeGapicConfig generates the GAPIC config yaml into the input tree.
	TypeGapicConfig Type = "GAPIC_CONFIG"
	// TypeDiscoGapicConfig generates the GAPIC config yaml from a discovery
	// document into the input tree.
	TypeDiscoGapicConfig Type = "DISCOGAPIC_CONFIG"
	// TypeProtobuf generates the proto layer only.
	TypeProtobuf Type = "PROTOBUF"

	// LanguageJava targets Java.
	LanguageJava Language = "JAVA"
	// LanguagePython targets Python.
	LanguagePython Language = "PYTHON"
	// LanguageGo targets Go.
	LanguageGo Language = "GO"
	// LanguageRuby targets Ruby.
	LanguageRuby Language = "RUBY"
	// LanguagePhp targets PHP.
	LanguagePhp Language = "PHP"
	// LanguageCsharp targets C#.
	LanguageCsharp Language = "CSHARP"
	// LanguageNodejs targets Node.js.
	LanguageNodejs Language = "NODEJS"

	// AspectAll generates code and packaging output.
	AspectAll Aspect = "ALL"
	// AspectCode generates code output only.
	AspectCode Aspect = "CODE"
	// AspectPackage generates packaging output only.
	AspectPackage Aspect = "PACKAGE"

	// TargetGithub publishes to a GitHub repository.
	TargetGithub TargetType = "GITHUB"
	// TargetLocal publishes to a local repository directory.
	TargetLocal TargetType = "LOCAL"
)

var (
	// ErrInvalidType is the sentinel error wrapped by InvalidTypeError.
	ErrInvalidType = errors.New("invalid artifact type")
	// ErrInvalidLanguage is the sentinel error wrapped by InvalidLanguageError.
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrInvalidAspect is the sentinel error wrapped by InvalidAspectError.
	ErrInvalidAspect = errors.New("invalid aspect")
	// ErrInvalidArtifact is the sentinel error wrapped by InvalidArtifactError.
	ErrInvalidArtifact = errors.New("invalid artifact")
)

type (
	// Type is the closed artifact-type enumeration. It is the single dispatch
	// key for pipeline selection; no other field participates in dispatch.
	Type string

	// InvalidTypeError is returned when a Type value is not recognized.
	// It wraps ErrInvalidType for errors.Is() compatibility.
	InvalidTypeError struct {
		Value Type
	}

	// Language is the closed target-language enumeration. Config files carry
	// the uppercase form; pipeline arguments carry the lowercase form.
	Language string

	// InvalidLanguageError is returned when a Language value is not recognized.
	// It wraps ErrInvalidLanguage for errors.Is() compatibility.
	InvalidLanguageError struct {
		Value Language
	}

	// Aspect selects which portion of an artifact's output to produce.
	Aspect string

	// InvalidAspectError is returned when an Aspect value is not recognized.
	// It wraps ErrInvalidAspect for errors.Is() compatibility.
	InvalidAspectError struct {
		Value Aspect
	}

	// TargetType is the publish-target kind.
	TargetType string

	// InvalidArtifactError is returned when an Artifact has invalid fields.
	// It wraps ErrInvalidArtifact for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidArtifactError struct {
		Name        string
		FieldErrors []error
	}

	// PublishTarget names a destination for packaged output. A LOCAL target's
	// location becomes the pipeline's local repository directory.
	PublishTarget struct {
		// Name identifies the target (e.g. "staging").
		Name string `json:"name"`
		// Type is the target kind (GITHUB or LOCAL).
		Type TargetType `json:"type"`
		// Location is a repository URL (GITHUB) or directory path (LOCAL).
		Location string `json:"location"`
	}

	// Common holds the config values shared by every artifact in a file.
	Common struct {
		// APIName is the short API name (e.g. "pubsub").
		APIName string `json:"api_name"`
		// APIVersion is the API version (e.g. "v1").
		APIVersion string `json:"api_version,omitempty"`
		// OrganizationName groups published packages (e.g. "google-cloud").
		OrganizationName string `json:"organization_name,omitempty"`
		// ServiceYAML is the service config path, relative to the root dir.
		ServiceYAML string `json:"service_yaml,omitempty"`
		// GapicYAML is the GAPIC config path, relative to the root dir.
		GapicYAML string `json:"gapic_yaml,omitempty"`
		// SrcProtoPaths are proto source directories, relative to the root dir.
		SrcProtoPaths []string `json:"src_proto_paths,omitempty"`
		// ImportProtoPaths are extra proto include directories.
		ImportProtoPaths []string `json:"import_proto_paths,omitempty"`
		// ProtoDeps are names of proto dependency packages.
		ProtoDeps []string `json:"proto_deps,omitempty"`
		// TestProtoDeps are proto dependencies used only by generated tests.
		TestProtoDeps []string `json:"test_proto_deps,omitempty"`
	}

	// Artifact is one declaratively configured generation target.
	Artifact struct {
		// Name keys the artifact within its config file.
		Name string `json:"name"`
		// Type selects the generation pipeline.
		Type Type `json:"type"`
		// Language is the target language; unused by the config pipelines.
		Language Language `json:"language,omitempty"`
		// Aspect narrows the output; flag override wins, default ALL.
		Aspect Aspect `json:"aspect,omitempty"`
		// ReleaseLevel is published package maturity (GA, BETA, ALPHA).
		ReleaseLevel string `json:"release_level,omitempty"`
		// DiscoveryDoc is the discovery document path; required by the
		// DISCOGAPIC family.
		DiscoveryDoc string `json:"discovery_doc,omitempty"`
		// PublishTargets name destinations for packaged output.
		PublishTargets []PublishTarget `json:"publish_targets,omitempty"`
	}

	// Config is one parsed artifact config file.
	Config struct {
		// Common is shared across all artifacts in the file.
		Common Common `json:"common"`
		// Artifacts are the generation targets keyed by Name.
		Artifacts []Artifact `json:"artifacts"`
	}
)

// IsValid returns whether the Type is a member of the closed enumeration,
// and a list of validation errors if it is not.
func (t Type) IsValid() (bool, []error) {
	switch t {
	case TypeGapicOnly, TypeGapic, TypeDiscoGapic, TypeGrpc,
		TypeGapicConfig, TypeDiscoGapicConfig, TypeProtobuf:
		return true, nil
	}
	return false, []error{&InvalidTypeError{Value: t}}
}

// NeedsLanguage reports whether artifacts of this type require a target
// language. The two config-generation types do not.
func (t Type) NeedsLanguage() bool {
	return t != TypeGapicConfig && t != TypeDiscoGapicConfig
}

// NeedsDiscoveryDoc reports whether artifacts of this type require a
// discovery document.
func (t Type) NeedsDiscoveryDoc() bool {
	return t == TypeDiscoGapic || t == TypeDiscoGapicConfig
}

// Error implements the error interface.
func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid artifact type %q (valid: GAPIC_ONLY, GAPIC, DISCOGAPIC, GRPC, GAPIC_CONFIG, DISCOGAPIC_CONFIG, PROTOBUF)", string(e.Value))
}

// Unwrap returns ErrInvalidType for errors.Is() compatibility.
func (e *InvalidTypeError) Unwrap() error { return ErrInvalidType }

// IsValid returns whether the Language is a member of the closed enumeration,
// and a list of validation errors if it is not.
func (l Language) IsValid() (bool, []error) {
	switch l {
	case LanguageJava, LanguagePython, LanguageGo, LanguageRuby,
		LanguagePhp, LanguageCsharp, LanguageNodejs:
		return true, nil
	}
	return false, []error{&InvalidLanguageError{Value: l}}
}

// Lower returns the lowercase form used in pipeline arguments.
func (l Language) Lower() string {
	return strings.ToLower(string(l))
}

// Error implements the error interface.
func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("invalid language %q (valid: JAVA, PYTHON, GO, RUBY, PHP, CSHARP, NODEJS)", string(e.Value))
}

// Unwrap returns ErrInvalidLanguage for errors.Is() compatibility.
func (e *InvalidLanguageError) Unwrap() error { return ErrInvalidLanguage }

// IsValid returns whether the Aspect is a member of the closed enumeration,
// and a list of validation errors if it is not.
func (a Aspect) IsValid() (bool, []error) {
	switch a {
	case AspectAll, AspectCode, AspectPackage:
		return true, nil
	}
	return false, []error{&InvalidAspectError{Value: a}}
}

// Error implements the error interface.
func (e *InvalidAspectError) Error() string {
	return fmt.Sprintf("invalid aspect %q (valid: ALL, CODE, PACKAGE)", string(e.Value))
}

// Unwrap returns ErrInvalidAspect for errors.Is() compatibility.
func (e *InvalidAspectError) Unwrap() error { return ErrInvalidAspect }

// IsValid returns whether the Artifact has valid fields, collecting every
// field-level error rather than stopping at the first.
func (a *Artifact) IsValid() (bool, []error) {
	var errs []error

	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, errors.New("artifact name must not be empty"))
	}
	if valid, fieldErrs := a.Type.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	} else {
		if a.Type.NeedsLanguage() {
			if valid, fieldErrs := a.Language.IsValid(); !valid {
				errs = append(errs, fieldErrs...)
			}
		} else if a.Language != "" {
			if valid, fieldErrs := a.Language.IsValid(); !valid {
				errs = append(errs, fieldErrs...)
			}
		}
		if a.Type.NeedsDiscoveryDoc() && strings.TrimSpace(a.DiscoveryDoc) == "" {
			errs = append(errs, fmt.Errorf("artifact type %s requires discovery_doc", a.Type))
		}
	}
	if a.Aspect != "" {
		if valid, fieldErrs := a.Aspect.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}

	if len(errs) > 0 {
		return false, []error{&InvalidArtifactError{Name: a.Name, FieldErrors: errs}}
	}
	return true, nil
}

// EffectiveAspect resolves the aspect for a run: the flag override wins over
// the configured aspect, and the default is ALL.
func (a *Artifact) EffectiveAspect(override Aspect) (Aspect, error) {
	if override != "" {
		if valid, errs := override.IsValid(); !valid {
			return "", errs[0]
		}
		return override, nil
	}
	if a.Aspect != "" {
		return a.Aspect, nil
	}
	return AspectAll, nil
}

// LocalRepoDir returns the location of the artifact's LOCAL publish target,
// or "" if it has none.
func (a *Artifact) LocalRepoDir() string {
	for _, t := range a.PublishTargets {
		if t.Type == TargetLocal {
			return t.Location
		}
	}
	return ""
}

// Error implements the error interface.
func (e *InvalidArtifactError) Error() string {
	return fmt.Sprintf("invalid artifact %q: %d field error(s)", e.Name, len(e.FieldErrors))
}

// Unwrap returns ErrInvalidArtifact for errors.Is() compatibility.
func (e *InvalidArtifactError) Unwrap() error { return ErrInvalidArtifact }
