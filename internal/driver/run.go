package driver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkov/metagrid/internal/ctxlog"
	"github.com/avolkov/metagrid/internal/fsutil"
	"github.com/avolkov/metagrid/internal/pipeline"
	"github.com/avolkov/metagrid/internal/scheduler"
)

// Run executes one invocation for the named stage. Exactly one submission
// is attempted per call, and only after every gate passes: the stage name
// must be known, the sample list non-empty, every prerequisite stage
// complete for every sample, and the job script present. Each gate fails
// with its own error type so callers can tell the cases apart.
func (d *Driver) Run(ctx context.Context, stageName string, mode Mode) (*Result, error) {
	runID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)

	if mode.ValidateOnly {
		if err := d.cfg.Validate(ctx); err != nil {
			return nil, err
		}
		logger.Info("Configuration is valid.", "config", d.cfg.Path)
		return &Result{RunID: runID}, nil
	}

	stage, err := pipeline.ParseStage(stageName)
	if err != nil {
		return nil, err
	}
	logger = logger.With("stage", stage.String())
	ctx = ctxlog.WithLogger(ctx, logger)

	samples, err := pipeline.LoadSamples(d.cfg.Pipeline.SamplesFile)
	if err != nil {
		return nil, &SampleListError{Path: d.cfg.Pipeline.SamplesFile, Err: err}
	}
	logger.Debug("Sample list loaded.", "count", len(samples))

	// Prerequisites are enforced in every mode; resume only makes the
	// already-satisfied ones visible in the log.
	for _, prereq := range stage.Definition().Prerequisites {
		outputs := d.cfg.Settings(prereq).Outputs
		if pipeline.Complete(d.workFS, outputs, samples) {
			if mode.Resume {
				logger.Info("Prerequisite already satisfied.", "prerequisite", prereq.String())
			}
			continue
		}
		missing := pipeline.Missing(d.workFS, outputs, samples)
		return nil, &DependencyNotMetError{Stage: stage, Prerequisite: prereq, Missing: missing}
	}

	if mode.Resume {
		if pipeline.Complete(d.workFS, d.cfg.Settings(stage).Outputs, samples) {
			logger.Info("Stage outputs already complete, skipping submission.")
			return &Result{RunID: runID, Stage: stage, Skipped: true}, nil
		}
	}

	req := scheduler.BuildRequest(stage, d.cfg, d.cfg.Settings(stage), len(samples), mode.Parallel)

	if mode.DryRun {
		logger.Info("🧪 Dry run, nothing submitted.", "sbatch_args", req.Args())
		return &Result{RunID: runID, Stage: stage, Request: req, DryRun: true}, nil
	}

	if !fsutil.FileExists(req.Script) {
		return nil, &ScriptNotFoundError{Stage: stage, Path: req.Script}
	}

	if err := d.cfg.EnsureLayout(); err != nil {
		return nil, fmt.Errorf("failed to create pipeline directories: %w", err)
	}

	logger.Info("🚀 Submitting stage to scheduler.", "script", req.Script, "array_size", req.ArraySize)
	jobID, err := d.sched.Submit(ctx, req)
	if err != nil {
		return nil, &SubmissionError{Stage: stage, Err: err}
	}
	logger.Info("✅ Job accepted by scheduler.", "job_id", string(jobID))
	return &Result{RunID: runID, Stage: stage, Request: req, JobID: jobID}, nil
}
