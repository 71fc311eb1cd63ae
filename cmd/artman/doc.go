// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for artman.
//
// This package implements the Cobra command hierarchy: the root command with
// the shared generation flags, the generate subcommand that resolves and
// dispatches a run, and the exit/service error types that map run failures
// to distinct process exit codes and remediation output.
package cmd
