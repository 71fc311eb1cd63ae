// SPDX-License-Identifier: MPL-2.0

// Package runtime routes a resolved run to its execution mode and owns the
// process exit contract.
//
// Two runners exist. LocalRunner executes the pipeline flow in-process and
// always hands output ownership back to the invoking user, even when the
// flow fails. ContainerRunner re-invokes the command line inside the artman
// docker image and relays the container output. The mode is chosen by the
// --local flag alone; nothing is inferred from the environment.
//
// Exit codes separate the three failure classes (pipeline, container,
// config) so calling scripts can branch on the cause.
package runtime
