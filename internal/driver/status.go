package driver

import (
	"context"

	"github.com/avolkov/metagrid/internal/ctxlog"
	"github.com/avolkov/metagrid/internal/pipeline"
)

// StageStatus summarizes one stage's completion for the loaded sample set.
type StageStatus struct {
	Stage    pipeline.Stage
	Complete bool

	// Missing lists the samples with at least one expected output absent.
	Missing []string

	// Total is the size of the loaded sample set.
	Total int
}

// Status recomputes per-stage completion from the filesystem for every
// pipeline stage, in execution order.
func (d *Driver) Status(ctx context.Context) ([]StageStatus, error) {
	logger := ctxlog.FromContext(ctx)

	samples, err := pipeline.LoadSamples(d.cfg.Pipeline.SamplesFile)
	if err != nil {
		return nil, &SampleListError{Path: d.cfg.Pipeline.SamplesFile, Err: err}
	}

	statuses := make([]StageStatus, 0, len(pipeline.Stages()))
	for _, stage := range pipeline.Stages() {
		missing := pipeline.Missing(d.workFS, d.cfg.Settings(stage).Outputs, samples)
		statuses = append(statuses, StageStatus{
			Stage:    stage,
			Complete: len(missing) == 0,
			Missing:  missing,
			Total:    len(samples),
		})
	}
	logger.Debug("Stage status computed.", "samples", len(samples))
	return statuses, nil
}
