// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"strconv"
)

// Process exit codes. The failure classes are numerically distinct so that
// calling scripts can branch on the cause without parsing log output.
const (
	// ExitSuccess is the status of a completed run.
	ExitSuccess ExitCode = 0

	// ExitPipelineFailure reports a pipeline that started and failed: a
	// stage errored, the generator returned non-zero, or no flow was
	// registered for the selected pipeline.
	ExitPipelineFailure ExitCode = 32

	// ExitContainerFailure reports a containerized run that could not
	// start or did not finish: docker binary missing, daemon unreachable,
	// image unavailable, or a non-zero container exit.
	ExitContainerFailure ExitCode = 64

	// ExitConfigFailure reports rejected input: unreadable or invalid
	// artifact config, unknown artifact, bad aspect, or a broken user
	// config file.
	ExitConfigFailure ExitCode = 96
)

// ErrInvalidExitCode indicates an exit code outside the range a process can
// actually report.
var ErrInvalidExitCode = errors.New("invalid exit code")

// InvalidExitCodeError provides details about an invalid exit code.
type InvalidExitCodeError struct {
	Value int
}

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d: must be between 0 and 255", e.Value)
}

func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// ExitCode is a process exit status.
type ExitCode int

// IsValid reports whether the code fits in a process exit status, with the
// violations when it does not.
func (c ExitCode) IsValid() (bool, []error) {
	var errs []error
	if c < 0 || c > 255 {
		errs = append(errs, &InvalidExitCodeError{Value: int(c)})
	}
	return len(errs) == 0, errs
}

// IsSuccess reports whether the code signals a completed run.
func (c ExitCode) IsSuccess() bool {
	return c == ExitSuccess
}

func (c ExitCode) String() string {
	return strconv.Itoa(int(c))
}
