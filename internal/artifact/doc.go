// SPDX-License-Identifier: MPL-2.0

// Package artifact models the declarative artifact configuration (artman.yaml):
// the closed artifact-type/language/aspect enumerations, the config file
// schema with CUE validation, and the conversion to the flattened legacy
// argument shape consumed by pipelines.
package artifact
