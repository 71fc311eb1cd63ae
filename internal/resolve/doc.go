// SPDX-License-Identifier: MPL-2.0

// Package resolve merges the three configuration layers into one executable
// pipeline descriptor. Precedence, lowest to highest:
//
//  1. the artifact config file (via the legacy section flattening)
//  2. the per-user config (toolkit path, GitHub credentials)
//  3. command-line flags and the selector's type-specific arguments
//
// Resolution is side-effect free apart from logging and scratch-directory
// allocation; nothing here executes a pipeline.
package resolve
