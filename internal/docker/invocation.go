// SPDX-License-Identifier: MPL-2.0

package docker

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"artman-cli/internal/ownership"
	"artman-cli/internal/workspace"

	"mvdan.cc/sh/v3/syntax"
)

// ContainerName names the artman container so a stuck run is easy to find
// and kill.
const ContainerName = "artman-docker"

type (
	// BuildInput is everything the invocation builder needs. Paths must
	// already be absolute; the builder mounts them verbatim.
	BuildInput struct {
		// RootDir is the input tree, mounted at the same path and used as
		// the container working directory.
		RootDir string
		// OutputDir receives generated files, mounted at the same path.
		OutputDir string
		// ConfigPath is the artifact config file; its directory is mounted
		// so the inner run can read it at the identical path.
		ConfigPath string
		// Image is the artman container image.
		Image string
		// Args is the original command line (everything after the program
		// name) to replay inside the container.
		Args []string
		// UID and GID identify the invoking host user for the ownership
		// handback.
		UID int
		GID int
	}

	// Invocation is a built docker run command. RunArgs and DebugArgs are
	// arguments to the docker binary (without the binary itself).
	Invocation struct {
		// RunArgs executes the generation non-interactively.
		RunArgs []string
		// DebugArgs drops into a shell after the generation, for
		// inspecting the container state.
		DebugArgs []string
	}
)

// BuildInvocation constructs the docker run command that re-enters artman
// inside the container. The inner command line replays the host arguments
// with --local forced on (the container is the execution host) and
// --root-dir made explicit, so flag defaults resolve identically inside.
func BuildInvocation(in *BuildInput) (*Invocation, error) {
	inner := in.Args
	if !hasFlag(inner, "--root-dir") {
		inner = append([]string{"--root-dir", in.RootDir}, inner...)
	}
	innerStr, err := shellJoin(inner)
	if err != nil {
		return nil, fmt.Errorf("failed to quote inner command: %w", err)
	}

	base := []string{
		"run", "--name", ContainerName, "--rm", "-i", "-t",
		"-e", fmt.Sprintf("%s=%d", ownership.EnvHostUserID, in.UID),
		"-e", fmt.Sprintf("%s=%d", ownership.EnvHostGroupID, in.GID),
		"-e", workspace.DockerMarkerEnv + "=True",
		"-v", in.RootDir + ":" + in.RootDir,
		"-v", in.OutputDir + ":" + in.OutputDir,
		"-v", filepath.Dir(in.ConfigPath) + ":" + filepath.Dir(in.ConfigPath),
		"-w", in.RootDir,
		in.Image, "/bin/bash", "-c",
	}

	runArgs := append(slices.Clone(base), "artman --local "+innerStr)

	debugInner := innerStr
	if !hasFlag(inner, "--local") {
		debugInner = "--local " + debugInner
	}
	debugArgs := append(slices.Clone(base), "artman "+debugInner+"; bash")

	return &Invocation{RunArgs: runArgs, DebugArgs: debugArgs}, nil
}

// DebugCommand renders the debug invocation as a copy-pasteable shell line.
func (inv *Invocation) DebugCommand() (string, error) {
	joined, err := shellJoin(inv.DebugArgs)
	if err != nil {
		return "", fmt.Errorf("failed to quote debug command: %w", err)
	}
	return "docker " + joined, nil
}

// shellJoin quotes each argument for bash and joins them with spaces.
func shellJoin(args []string) (string, error) {
	quoted := make([]string, len(args))
	for i, arg := range args {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("argument %q not quotable: %w", arg, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}

// hasFlag reports whether args carries the flag, in either "--flag value"
// or "--flag=value" form.
func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag || strings.HasPrefix(arg, flag+"=") {
			return true
		}
	}
	return false
}
