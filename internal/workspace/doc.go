// SPDX-License-Identifier: MPL-2.0

// Package workspace prepares the input tree for a generation run. Its main
// job is the in-container adjustment: when artman runs inside its own
// container image, shared proto packages missing from the user's input tree
// are filled in from the image's versioned googleapis checkout.
package workspace
