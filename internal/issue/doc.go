// SPDX-License-Identifier: MPL-2.0

// Package issue carries user-facing error context: actionable errors with
// operation/resource/suggestion fields, and a catalog of known failure modes
// with markdown remediation text rendered for the terminal.
//
// Components return ActionableError values (usually wrapping a typed error
// from the failing layer); the CLI layer looks up the matching catalog entry
// and renders it below the error message.
package issue
