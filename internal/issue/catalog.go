// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
)

// Id identifies a known failure mode in the catalog.
type Id int

const (
	ConfigNotFoundId Id = iota + 1
	ArtifactConfigInvalidId
	UnknownArtifactTypeId
	PipelineFailedId
	DockerEngineNotFoundId
	DockerImageUnavailableId
	ContainerRunFailedId
)

type (
	// MarkdownMsg is remediation text in markdown, rendered with glamour.
	MarkdownMsg string

	// HttpLink is an external or documentation URL shown under "See also".
	HttpLink string

	// Issue is one catalog entry: remediation text plus reference links.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink // never empty: every failure mode has docs
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue's markdown for the terminal using the given
// glamour style path (e.g. "dark").
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- " + string(link) + "\n"
		}
		for _, link := range i.extLinks {
			md += "- " + string(link) + "\n"
		}
	}
	return render(md, stylePath)
}

// render is swappable for tests.
var render = glamour.Render

var (
	configNotFoundIssue = &Issue{
		id: ConfigNotFoundId,
		mdMsg: `
# Artifact config file not found

The path passed via ` + "`--config`" + ` (default ` + "`artman.yaml`" + `) does not exist.
When ` + "`--root-dir`" + ` is set, a relative config path is resolved against it.

## Things you can try
- Run from the directory containing your ` + "`artman.yaml`" + `
- Pass the location explicitly:
~~~
$ artman --config /path/to/artman.yaml generate my_artifact
~~~
- If you use --root-dir, check that the config path is relative to it`,
		docLinks: []HttpLink{"https://github.com/googleapis/artman#configuration"},
	}

	artifactConfigInvalidIssue = &Issue{
		id: ArtifactConfigInvalidId,
		mdMsg: `
# Artifact config is invalid

The config file was found but the requested artifact could not be used:
either no artifact with that name exists, or the file fails schema
validation.

## Things you can try
- List the artifact names under ` + "`artifacts:`" + ` in the config file and check
  the spelling of the name you passed to ` + "`generate`" + `
- Check each artifact has a valid ` + "`type`" + ` (GAPIC_ONLY, GAPIC, DISCOGAPIC,
  GRPC, GAPIC_CONFIG, DISCOGAPIC_CONFIG, PROTOBUF)

## Minimal example
~~~yaml
common:
  api_name: library
  api_version: v1
  organization_name: google-cloud
artifacts:
  - name: ruby_gapic
    type: GAPIC
    language: RUBY
~~~`,
		docLinks: []HttpLink{"https://github.com/googleapis/artman#configuration"},
	}

	unknownArtifactTypeIssue = &Issue{
		id: UnknownArtifactTypeId,
		mdMsg: `
# Unknown artifact type

The artifact type passed schema validation but no pipeline is mapped to it.
This indicates a schema/dispatch mismatch in the tool itself rather than a
problem with your config.

## Things you can try
- Re-run with a known type (GAPIC_ONLY, GAPIC, DISCOGAPIC, GRPC,
  GAPIC_CONFIG, DISCOGAPIC_CONFIG, PROTOBUF)
- File a bug with your config file attached`,
		docLinks: []HttpLink{"https://github.com/googleapis/artman/issues"},
	}

	pipelineFailedIssue = &Issue{
		id: PipelineFailedId,
		mdMsg: `
# Pipeline execution failed

A stage of the selected generation pipeline reported an error.

## Things you can try
- Re-run with ` + "`--verbose`" + ` for full stage output
- Check the toolkit override under ` + "`local.toolkit`" + ` in
  ` + "`~/.artman/config.yaml`" + ` points at a complete installation
- When running with ` + "`--local`" + `, every generation binary must be installed
  on your machine; the container image ships them all`,
		docLinks: []HttpLink{"https://github.com/googleapis/artman#running-artman"},
	}

	dockerEngineNotFoundIssue = &Issue{
		id: DockerEngineNotFoundId,
		mdMsg: `
# Docker is not available

Containerized execution (the default) needs a working docker installation.

## Things you can try
- Install docker and make sure the daemon is running:
~~~
$ docker version
~~~
- Or run on the host instead (requires all generation binaries installed):
~~~
$ artman --local generate <artifact_name>
~~~`,
		docLinks: []HttpLink{"https://docs.docker.com/engine/install/"},
	}

	dockerImageUnavailableIssue = &Issue{
		id: DockerImageUnavailableId,
		mdMsg: `
# Container image unavailable

The image could not be found locally and pulling it failed.

## Things you can try
- Pull the image manually to see the full registry error:
~~~
$ docker pull googleapis/artman:<version>
~~~
- Pass a different image with ` + "`--image`" + `
- Check network access to the registry`,
		docLinks: []HttpLink{"https://hub.docker.com/r/googleapis/artman"},
	}

	containerRunFailedIssue = &Issue{
		id: ContainerRunFailedId,
		mdMsg: `
# Containerized run failed

The artman process inside the container exited with an error.

## Things you can try
- Re-run with ` + "`--verbose`" + ` for additional logging
- The equivalent debug invocation is logged at debug verbosity; running it
  drops you into a shell inside the container after the failure
- Check that the root, output, and config directories exist on the host
  (they are mounted into the container at identical paths)`,
		docLinks: []HttpLink{"https://github.com/googleapis/artman#docker"},
	}

	catalog = map[Id]*Issue{
		ConfigNotFoundId:         configNotFoundIssue,
		ArtifactConfigInvalidId:  artifactConfigInvalidIssue,
		UnknownArtifactTypeId:    unknownArtifactTypeIssue,
		PipelineFailedId:         pipelineFailedIssue,
		DockerEngineNotFoundId:   dockerEngineNotFoundIssue,
		DockerImageUnavailableId: dockerImageUnavailableIssue,
		ContainerRunFailedId:     containerRunFailedIssue,
	}
)

// Get returns the catalog entry for id, or nil if none is registered.
func Get(id Id) *Issue {
	return catalog[id]
}
