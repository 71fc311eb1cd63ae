// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"maps"
	"slices"
	"strings"

	"artman-cli/internal/artifact"
	"artman-cli/internal/config"
	"artman-cli/internal/pipeline"

	"github.com/charmbracelet/log"
)

// Resolver turns flags, user config and the artifact config file into a
// pipeline descriptor.
type Resolver struct {
	// UserConfig supplies the toolkit path and publishing credentials.
	// Defaults to the zero-value config.
	UserConfig *config.UserConfig

	// Logger receives the resolution trace. Defaults to the package logger.
	Logger *log.Logger

	// Selector maps the artifact type to a pipeline. Defaults to a selector
	// sharing this resolver's logger.
	Selector *pipeline.Selector
}

// Resolve normalizes the flags, loads and validates the artifact config,
// selects the pipeline, and merges the three layers into the final argument
// map. Flag-derived arguments override config-derived ones.
//
// The final arguments are logged at info level with secret values redacted;
// the returned descriptor keeps the real values.
func (r *Resolver) Resolve(flags *Flags) (*pipeline.Descriptor, error) {
	if err := flags.Normalize(); err != nil {
		return nil, err
	}

	cfg, err := artifact.Load(flags.Config)
	if err != nil {
		return nil, err
	}
	art, err := cfg.Lookup(flags.ArtifactName, flags.Config)
	if err != nil {
		return nil, err
	}

	aspect, err := art.EffectiveAspect(artifact.Aspect(strings.ToUpper(flags.Aspect)))
	if err != nil {
		return nil, err
	}

	userConfig := r.userConfig()
	baseArgs := pipeline.Args{
		"root_dir":       flags.RootDir,
		"toolkit_path":   userConfig.Local.Toolkit,
		"generator_args": flags.GeneratorArgs,
		"artifact_type":  string(art.Type),
		"aspect":         string(aspect),
	}
	if hasGithubTarget(art) {
		if userConfig.GitHub.Username != "" {
			baseArgs["github_username"] = userConfig.GitHub.Username
		}
		if userConfig.GitHub.Token != "" {
			baseArgs["github_token"] = userConfig.GitHub.Token
		}
	}

	legacy := artifact.Flatten(cfg, art, flags.RootDir, flags.OutputDir)
	r.logLegacySections(legacy)

	if art.Language != artifact.LanguageRuby {
		r.logger().Warn("Artman is deprecated for all languages other than Ruby")
	}

	sel, err := r.selector().Select(art, flags.OutputDir)
	if err != nil {
		return nil, err
	}

	final := pipeline.Args(artifact.ResolveSpec(legacy, art.Language.Lower()))
	maps.Copy(final, baseArgs)
	maps.Copy(final, sel.Extra)

	r.logFinalArgs(final)

	return &pipeline.Descriptor{Pipeline: sel.Pipeline, Args: final}, nil
}

// logLegacySections traces the flattened config at debug level, one section
// at a time in sorted order.
func (r *Resolver) logLegacySections(sections artifact.LegacySections) {
	var sb strings.Builder
	for _, name := range slices.Sorted(maps.Keys(sections)) {
		sb.WriteString(name)
		sb.WriteString(":\n")
		rendered, err := pipeline.Args(sections[name]).Render()
		if err != nil {
			r.logger().Debug("failed to render legacy config section", "section", name, "err", err)
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	r.logger().Debug("Legacy config after conversion:\n" + strings.TrimRight(sb.String(), "\n"))
}

// logFinalArgs prints the merged arguments at info level. Output always goes
// through Redact first so credentials never reach the log.
func (r *Resolver) logFinalArgs(args pipeline.Args) {
	rendered, err := args.Redact().Render()
	if err != nil {
		r.logger().Debug("failed to render final args", "err", err)
		return
	}
	r.logger().Info("Final args:")
	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		r.logger().Info("  " + line)
	}
}

func hasGithubTarget(art *artifact.Artifact) bool {
	for _, t := range art.PublishTargets {
		if t.Type == artifact.TargetGithub {
			return true
		}
	}
	return false
}

func (r *Resolver) userConfig() *config.UserConfig {
	if r.UserConfig != nil {
		return r.UserConfig
	}
	return config.DefaultUserConfig()
}

func (r *Resolver) selector() *pipeline.Selector {
	if r.Selector != nil {
		return r.Selector
	}
	return &pipeline.Selector{Logger: r.Logger}
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
