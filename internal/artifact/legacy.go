// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"maps"
	"path/filepath"
)

// LegacySections is the flattened legacy config shape consumed by pipelines:
// a "common" section plus one section per language carrying language-specific
// values. ResolveSpec collapses the sections into the flat map pipelines read.
type LegacySections map[string]map[string]any

// LegacyCommonSection is the key of the language-independent section.
const LegacyCommonSection = "common"

// Flatten converts the structured config for one artifact into the legacy
// sectioned shape. All relative paths are resolved against rootDir so the
// result is position-independent; generated-code directories are laid out
// under outputDir.
func Flatten(cfg *Config, art *Artifact, rootDir, outputDir string) LegacySections {
	c := cfg.Common

	common := map[string]any{
		"api_name":   c.APIName,
		"output_dir": outputDir,
	}
	if c.APIVersion != "" {
		common["api_version"] = c.APIVersion
	}
	if c.OrganizationName != "" {
		common["organization_name"] = c.OrganizationName
	}
	if c.ServiceYAML != "" {
		common["service_yaml"] = absJoin(rootDir, c.ServiceYAML)
	}
	// Always present: the ownership pass keys off this value even when empty.
	common["gapic_yaml"] = ""
	if c.GapicYAML != "" {
		common["gapic_yaml"] = absJoin(rootDir, c.GapicYAML)
	}
	if len(c.SrcProtoPaths) > 0 {
		common["src_proto_path"] = absJoinAll(rootDir, c.SrcProtoPaths)
	}
	if len(c.ImportProtoPaths) > 0 {
		common["import_proto_path"] = absJoinAll(rootDir, c.ImportProtoPaths)
	}
	if len(c.ProtoDeps) > 0 {
		common["proto_deps"] = append([]string(nil), c.ProtoDeps...)
	}
	if len(c.TestProtoDeps) > 0 {
		common["test_proto_deps"] = append([]string(nil), c.TestProtoDeps...)
	}
	if art.ReleaseLevel != "" {
		common["release_level"] = art.ReleaseLevel
	}
	if dir := art.LocalRepoDir(); dir != "" {
		common["local_repo_dir"] = absJoin(rootDir, dir)
	}

	sections := LegacySections{LegacyCommonSection: common}

	if art.Language != "" {
		lang := art.Language.Lower()
		sections[lang] = map[string]any{
			"gapic_code_dir": codeDir(outputDir, lang, "gapic", &c),
			"grpc_code_dir":  codeDir(outputDir, lang, "grpc", &c),
			"proto_code_dir": codeDir(outputDir, lang, "proto", &c),
		}
	}

	return sections
}

// ResolveSpec collapses the sectioned legacy shape into the flat argument map
// for one language: the common section overlaid by the language section.
// An empty language yields the common section alone.
func ResolveSpec(sections LegacySections, language string) map[string]any {
	resolved := make(map[string]any)
	if common, ok := sections[LegacyCommonSection]; ok {
		maps.Copy(resolved, common)
	}
	if language != "" {
		if overrides, ok := sections[language]; ok {
			maps.Copy(resolved, overrides)
		}
	}
	return resolved
}

func codeDir(outputDir, lang, layer string, c *Common) string {
	name := c.APIName
	if c.APIVersion != "" {
		name = fmt.Sprintf("%s-%s", c.APIName, c.APIVersion)
	}
	return filepath.Join(outputDir, lang, fmt.Sprintf("%s-%s", layer, name))
}

func absJoin(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(rootDir, path)
}

func absJoinAll(rootDir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = absJoin(rootDir, p)
	}
	return out
}
