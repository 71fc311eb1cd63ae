// SPDX-License-Identifier: MPL-2.0

package ownership

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"artman-cli/internal/pipeline"

	"github.com/charmbracelet/log"
)

const (
	// EnvHostUserID carries the invoking user's uid into the container.
	EnvHostUserID = "HOST_USER_ID"
	// EnvHostGroupID carries the invoking user's gid into the container.
	EnvHostGroupID = "HOST_GROUP_ID"
)

// Identity is the host user to hand ownership back to.
type Identity struct {
	UID int
	GID int
}

// IsSet reports whether the identity denotes a real host user. Zero values
// mean the run is not containerized (or is already root), and reconciliation
// must not touch anything.
func (id Identity) IsSet() bool {
	return id.UID != 0 && id.GID != 0
}

// IdentityFromEnv reads the host identity from the environment. Absent or
// unparsable values count as unset. lookup defaults to os.LookupEnv.
func IdentityFromEnv(lookup func(string) (string, bool)) Identity {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return Identity{
		UID: intFromEnv(lookup, EnvHostUserID),
		GID: intFromEnv(lookup, EnvHostGroupID),
	}
}

func intFromEnv(lookup func(string) (string, bool), key string) int {
	v, ok := lookup(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Reconciler chowns run output back to the host user.
type Reconciler struct {
	// Logger receives per-path warnings. Defaults to the package logger.
	Logger *log.Logger

	// Chown overrides os.Chown. Tests inject a recorder here.
	Chown func(path string, uid, gid int) error
}

// Reconcile restores ownership of everything the run may have written: the
// output directory tree, the local repo directory named in the arguments,
// and, for the two config generation pipelines, the gapic yaml written into
// the input tree. Missing paths are skipped; failures are logged, never
// returned, so a deferred call cannot mask the run's own error.
func (r *Reconciler) Reconcile(outputDir, pipelineName string, args pipeline.Args, id Identity) {
	if !id.IsSet() {
		return
	}

	if pathExists(outputDir) {
		r.chownTree(outputDir, id)
	}

	if dir, ok := args["local_repo_dir"].(string); ok && dir != "" && pathExists(dir) {
		r.chownTree(dir, id)
	}

	// The config pipelines write their yaml into the input tree, not the
	// output directory, so it needs an explicit chown.
	if pipelineName == pipeline.GapicConfig || pipelineName == pipeline.DiscoGapicConfig {
		if gapicYAML, ok := args["gapic_yaml"].(string); ok && gapicYAML != "" && pathExists(gapicYAML) {
			r.chown(gapicYAML, id)
		}
	}
}

// chownTree changes ownership of root and everything below it. A failing
// path is logged and skipped; the walk always completes.
func (r *Reconciler) chownTree(root string, id Identity) {
	_ = filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			r.logger().Warn("failed to visit path during ownership fixup", "path", path, "err", err)
			return nil
		}
		r.chown(path, id)
		return nil
	})
}

func (r *Reconciler) chown(path string, id Identity) {
	chown := r.Chown
	if chown == nil {
		chown = os.Chown
	}
	if err := chown(path, id.UID, id.GID); err != nil {
		r.logger().Warn("failed to restore ownership", "path", path, "err", err)
	}
}

func (r *Reconciler) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
