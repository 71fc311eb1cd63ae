// SPDX-License-Identifier: MPL-2.0

// Package engine executes pipeline descriptors as goyek flows. Each pipeline
// name maps to a registered flow builder that defines serial stage tasks
// (validate, prepare, generate, package); the engine builds a fresh flow per
// run and executes it with non-parallel scheduling.
//
// The registry is the extension point for real codegen stages. The shipped
// builders cover the orchestration-visible work: argument validation, output
// directory preparation, toolkit presence checks, and generator invocation.
package engine
