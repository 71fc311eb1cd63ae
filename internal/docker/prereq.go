// SPDX-License-Identifier: MPL-2.0

package docker

import (
	"context"
	"errors"
	"fmt"
)

// ErrPrerequisites is the sentinel error wrapped by PrerequisiteError.
var ErrPrerequisites = errors.New("docker prerequisites not met")

// PrerequisiteError is returned when a containerized run cannot start. It
// wraps ErrPrerequisites for errors.Is(); Cause is set when an underlying
// operation (like an image pull) failed.
type PrerequisiteError struct {
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *PrerequisiteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

// Unwrap returns ErrPrerequisites for errors.Is() compatibility.
func (e *PrerequisiteError) Unwrap() error { return ErrPrerequisites }

// CheckPrerequisites verifies that a containerized run can start: the docker
// binary exists, the daemon answers, and the image is available locally,
// pulling it on first use.
func (e *Engine) CheckPrerequisites(ctx context.Context, image string) error {
	if e.binaryPath == "" {
		return &PrerequisiteError{Reason: "docker binary not found in PATH"}
	}
	if !e.Available(ctx) {
		return &PrerequisiteError{Reason: "docker daemon is not reachable"}
	}
	if !e.ImageExists(ctx, image) {
		e.log().Info("Pulling image for containerized run.", "image", image)
		if err := e.Pull(ctx, image); err != nil {
			return &PrerequisiteError{
				Reason: fmt.Sprintf("image %s is not available", image),
				Cause:  err,
			}
		}
	}
	return nil
}
