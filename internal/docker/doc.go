// SPDX-License-Identifier: MPL-2.0

// Package docker drives containerized runs through the Docker CLI: checking
// prerequisites, building the docker run invocation that re-enters artman
// inside the image, and executing it.
//
// The invocation builder is pure and fully testable; only Engine touches the
// docker binary, and its command construction is injectable.
package docker
