// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"artman-cli/internal/engine"
	"artman-cli/internal/ownership"
	"artman-cli/internal/pipeline"
)

// LocalOption configures a LocalRunner.
type LocalOption func(*LocalRunner)

// LocalRunner executes a resolved pipeline in the current process. Inside
// the artman container this is the runner that does the actual work.
type LocalRunner struct {
	engine     *engine.Engine
	reconciler *ownership.Reconciler
	lookupEnv  func(string) (string, bool)
	logger     *log.Logger
}

// NewLocalRunner returns a runner backed by a default flow engine.
func NewLocalRunner(opts ...LocalOption) *LocalRunner {
	r := &LocalRunner{
		engine:     engine.New(),
		reconciler: &ownership.Reconciler{},
		lookupEnv:  os.LookupEnv,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithFlowEngine replaces the flow engine.
func WithFlowEngine(eng *engine.Engine) LocalOption {
	return func(r *LocalRunner) { r.engine = eng }
}

// WithReconciler replaces the ownership reconciler.
func WithReconciler(rec *ownership.Reconciler) LocalOption {
	return func(r *LocalRunner) { r.reconciler = rec }
}

// WithEnvLookup replaces the environment lookup that detects the handback
// identity.
func WithEnvLookup(lookup func(string) (string, bool)) LocalOption {
	return func(r *LocalRunner) { r.lookupEnv = lookup }
}

// WithLocalLogger sets the runner logger.
func WithLocalLogger(logger *log.Logger) LocalOption {
	return func(r *LocalRunner) { r.logger = logger }
}

// Run executes the descriptor's flow. Ownership of everything the run wrote
// is handed back to the invoking user on the way out, on success and
// failure alike, so files created as root inside the container never leak
// to the host.
func (r *LocalRunner) Run(ctx context.Context, desc *pipeline.Descriptor, outputDir string) error {
	id := ownership.IdentityFromEnv(r.lookupEnv)
	defer r.reconciler.Reconcile(outputDir, desc.Pipeline, desc.Args, id)

	if err := r.engine.Execute(ctx, desc); err != nil {
		r.log().Error("Pipeline execution failed", "pipeline", desc.Pipeline, "error", err)
		return err
	}
	return nil
}

func (r *LocalRunner) log() *log.Logger {
	if r.logger != nil {
		return r.logger
	}
	return log.Default()
}
