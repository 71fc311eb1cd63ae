// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"artman-cli/internal/docker"
)

// dockerRecorder fakes the docker binary through the test helper process,
// the same way the docker package tests do.
type dockerRecorder struct {
	invocations [][]string
	stdout      string
	stderr      string
	failOn      []string
}

func (m *dockerRecorder) commandFunc(t *testing.T) docker.ExecCommandFunc {
	t.Helper()
	return func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		m.invocations = append(m.invocations, slices.Clone(arg))

		exitCode := 0
		if len(arg) > 0 && slices.Contains(m.failOn, arg[0]) {
			exitCode = 1
		}

		helperArgs := append([]string{"-test.run=TestHelperProcess", "--", name}, arg...)
		cmd := exec.CommandContext(ctx, os.Args[0], helperArgs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"GO_HELPER_EXIT_CODE="+strconv.Itoa(exitCode),
			"GO_HELPER_STDOUT="+m.stdout,
			"GO_HELPER_STDERR="+m.stderr,
		)
		return cmd
	}
}

func (m *dockerRecorder) lastArgs(t *testing.T) []string {
	t.Helper()
	if len(m.invocations) == 0 {
		t.Fatal("no docker invocations recorded")
	}
	return m.invocations[len(m.invocations)-1]
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if out := os.Getenv("GO_HELPER_STDOUT"); out != "" {
		fmt.Fprint(os.Stdout, out)
	}
	if errOut := os.Getenv("GO_HELPER_STDERR"); errOut != "" {
		fmt.Fprint(os.Stderr, errOut)
	}
	code, err := strconv.Atoi(os.Getenv("GO_HELPER_EXIT_CODE"))
	if err != nil {
		code = 0
	}
	os.Exit(code)
}

func testBuildInput() *docker.BuildInput {
	return &docker.BuildInput{
		RootDir:    "/work/googleapis",
		OutputDir:  "/work/out",
		ConfigPath: "/work/cfg/artman.yaml",
		Image:      "googleapis/artman:0.16.2",
		Args:       []string{"--config", "/work/cfg/artman.yaml", "generate", "java_gapic"},
	}
}

func newTestContainerRunner(t *testing.T, rec *dockerRecorder, logBuf *bytes.Buffer) *ContainerRunner {
	t.Helper()

	logger := log.New(logBuf)
	logger.SetLevel(log.DebugLevel)
	eng := docker.NewEngine(
		docker.WithBinaryPath("/usr/bin/docker"),
		docker.WithExecCommand(rec.commandFunc(t)),
	)
	return NewContainerRunner(
		WithContainerEngine(eng),
		WithIdentity(func() (int, int) { return 1501, 1502 }),
		WithContainerLogger(logger),
	)
}

func TestContainerRunner_Run_Success(t *testing.T) {
	rec := &dockerRecorder{stdout: "Generating client library for pubsub\n"}
	var logBuf bytes.Buffer
	runner := newTestContainerRunner(t, rec, &logBuf)

	if err := runner.Run(context.Background(), testBuildInput()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// version check, image inspect, then the run itself.
	if len(rec.invocations) != 3 {
		t.Fatalf("got %d docker invocations, want 3: %v", len(rec.invocations), rec.invocations)
	}
	runArgs := rec.lastArgs(t)
	if runArgs[0] != "run" {
		t.Fatalf("last invocation = %v, want docker run", runArgs)
	}
	if !slices.Contains(runArgs, "HOST_USER_ID=1501") || !slices.Contains(runArgs, "HOST_GROUP_ID=1502") {
		t.Errorf("host identity not exported: %v", runArgs)
	}
	if !slices.Contains(runArgs, "googleapis/artman:0.16.2") {
		t.Errorf("image missing from run args: %v", runArgs)
	}

	logs := logBuf.String()
	if !strings.Contains(logs, "Generating client library for pubsub") {
		t.Errorf("container output not relayed; log output:\n%s", logs)
	}
	if !strings.Contains(logs, "For further inspection inside docker container, run `docker run --name artman-docker") {
		t.Errorf("debug command not logged; log output:\n%s", logs)
	}
}

func TestContainerRunner_Run_ForcesLocalInside(t *testing.T) {
	rec := &dockerRecorder{}
	var logBuf bytes.Buffer
	runner := newTestContainerRunner(t, rec, &logBuf)

	if err := runner.Run(context.Background(), testBuildInput()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	runArgs := rec.lastArgs(t)
	inner := runArgs[len(runArgs)-1]
	if !strings.HasPrefix(inner, "artman --local ") {
		t.Errorf("inner command %q does not force --local", inner)
	}
	if !strings.Contains(inner, "--root-dir /work/googleapis") {
		t.Errorf("inner command %q does not pin --root-dir", inner)
	}
}

func TestContainerRunner_Run_Failure(t *testing.T) {
	rec := &dockerRecorder{failOn: []string{"run"}, stderr: "inner run exploded\n"}
	var logBuf bytes.Buffer
	runner := newTestContainerRunner(t, rec, &logBuf)

	err := runner.Run(context.Background(), testBuildInput())
	if !errors.Is(err, docker.ErrContainerRun) {
		t.Fatalf("Run() error = %v, want ErrContainerRun", err)
	}
	if got := Classify(err, ModeContainer); got != ExitContainerFailure {
		t.Errorf("Classify() = %v, want %v", got, ExitContainerFailure)
	}

	logs := logBuf.String()
	if !strings.Contains(logs, "inner run exploded") {
		t.Errorf("container output not relayed on failure; log output:\n%s", logs)
	}
	if !strings.Contains(logs, `Artman execution failed. For additional logging, re-run the command with the "--verbose" flag`) {
		t.Errorf("remediation hint not logged; log output:\n%s", logs)
	}
	if !strings.Contains(logs, "For further inspection inside docker container") {
		t.Errorf("debug command not logged on failure; log output:\n%s", logs)
	}
}

func TestContainerRunner_Run_PullsMissingImage(t *testing.T) {
	rec := &dockerRecorder{failOn: []string{"image"}}
	var logBuf bytes.Buffer
	runner := newTestContainerRunner(t, rec, &logBuf)

	if err := runner.Run(context.Background(), testBuildInput()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// version check, failed image inspect, pull, run.
	if len(rec.invocations) != 4 {
		t.Fatalf("got %d docker invocations, want 4: %v", len(rec.invocations), rec.invocations)
	}
	if rec.invocations[2][0] != "pull" {
		t.Errorf("third invocation = %v, want docker pull", rec.invocations[2])
	}
}

func TestContainerRunner_PrerequisiteFailure(t *testing.T) {
	rec := &dockerRecorder{}
	var logBuf bytes.Buffer
	logger := log.New(&logBuf)
	logger.SetLevel(log.DebugLevel)

	eng := docker.NewEngine(
		docker.WithBinaryPath(""),
		docker.WithExecCommand(rec.commandFunc(t)),
	)
	runner := NewContainerRunner(WithContainerEngine(eng), WithContainerLogger(logger))

	err := runner.Run(context.Background(), testBuildInput())
	if !errors.Is(err, docker.ErrPrerequisites) {
		t.Fatalf("Run() error = %v, want ErrPrerequisites", err)
	}
	if got := Classify(err, ModeContainer); got != ExitContainerFailure {
		t.Errorf("Classify() = %v, want %v", got, ExitContainerFailure)
	}
	if len(rec.invocations) != 0 {
		t.Errorf("docker invoked despite missing binary: %v", rec.invocations)
	}
	if strings.Contains(logBuf.String(), "For further inspection") {
		t.Error("debug command logged before an invocation was built")
	}
}
