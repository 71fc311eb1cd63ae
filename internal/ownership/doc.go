// SPDX-License-Identifier: MPL-2.0

// Package ownership restores host-user ownership of files written by a
// containerized run. Inside the container artman executes as root, so
// everything it writes would otherwise be uneditable by the invoking user;
// the container run passes the host uid/gid through the environment and the
// reconciler chowns the output back.
//
// Reconciliation is best-effort: individual failures are logged and skipped,
// and it runs even when the pipeline itself failed so partial output stays
// editable.
package ownership
