package driver

import (
	"io/fs"
	"os"

	"github.com/avolkov/metagrid/internal/config"
	"github.com/avolkov/metagrid/internal/pipeline"
	"github.com/avolkov/metagrid/internal/scheduler"
)

// Mode carries the independent flags that shape a single run.
type Mode struct {
	// DryRun builds and reports the submission request without contacting
	// the scheduler.
	DryRun bool

	// Resume returns a skipped result when the target stage's outputs are
	// already complete instead of resubmitting, and logs prerequisites
	// found complete instead of passing them silently.
	Resume bool

	// ValidateOnly validates the configuration and stops; no stage is
	// examined and no job is submitted.
	ValidateOnly bool

	// Parallel submits the stage as an array job with one task per sample.
	// When false a single task processes every sample in sequence.
	Parallel bool
}

// Result is the outcome of one driver invocation.
type Result struct {
	// RunID uniquely identifies this invocation in the logs.
	RunID string

	Stage pipeline.Stage

	// Request is the submission request that was built, populated for both
	// dry and real runs; nil when nothing was built (validate-only, skip).
	Request *scheduler.Request

	// JobID is the scheduler's identifier for the accepted job; empty when
	// nothing was submitted.
	JobID scheduler.JobID

	// Skipped is true when resume mode found the stage already complete.
	Skipped bool

	// DryRun is true when the request was built but deliberately not
	// submitted.
	DryRun bool
}

// Driver sequences pipeline stages on the batch scheduler.
type Driver struct {
	cfg    *config.Config
	sched  scheduler.Scheduler
	workFS fs.FS
}

// New creates a Driver over cfg that submits through sched. Stage outputs
// are probed through workFS; pass nil to probe the real filesystem rooted
// at the configured work directory.
func New(cfg *config.Config, sched scheduler.Scheduler, workFS fs.FS) *Driver {
	if workFS == nil {
		workFS = os.DirFS(cfg.Pipeline.WorkDir)
	}
	return &Driver{cfg: cfg, sched: sched, workFS: workFS}
}
