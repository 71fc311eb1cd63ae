// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the 3-step CUE parsing pattern used by the
// artifact and user configuration loaders:
//
//  1. Compile the embedded schema
//  2. Compile (or extract, for YAML input) the user data and unify it with
//     the schema
//  3. Validate and decode to a Go struct
//
// # Usage
//
//	//go:embed artifact_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecodeYAML[Config](
//	    schemaBytes,
//	    fileBytes,
//	    "#Config",
//	    cueutil.WithFilename("artman.yaml"),
//	)
//	if err != nil {
//	    return nil, err // Error includes the CUE path for debugging
//	}
//	return result.Value, nil
package cueutil
