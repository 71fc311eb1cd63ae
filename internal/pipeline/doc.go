// SPDX-License-Identifier: MPL-2.0

// Package pipeline defines the pipeline argument map, the descriptor handed
// to the execution layer, and the selector that maps an artifact type to its
// generation pipeline.
//
// Selection is a pure function of the artifact type. Every other field of the
// artifact feeds the argument map instead; keeping dispatch single-keyed is
// what makes the selector table exhaustive and testable.
package pipeline
