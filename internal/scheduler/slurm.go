package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/avolkov/metagrid/internal/ctxlog"
)

// Slurm submits requests through the sbatch command line.
type Slurm struct {
	sbatchPath string
}

// NewSlurm creates a Slurm scheduler that invokes the given sbatch
// executable, resolved via PATH when not absolute.
func NewSlurm(sbatchPath string) *Slurm {
	return &Slurm{sbatchPath: sbatchPath}
}

// Submit runs sbatch with the request's arguments and parses the job ID
// from its --parsable output. On failure the scheduler's stderr is folded
// into the returned error verbatim, since that is where sbatch explains
// itself.
func (s *Slurm) Submit(ctx context.Context, req *Request) (JobID, error) {
	args := req.Args()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Invoking sbatch.", "path", s.sbatchPath, "args", args)

	cmd := exec.CommandContext(ctx, s.sbatchPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("sbatch failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("sbatch failed: %w", err)
	}

	// --parsable prints "<jobid>" or "<jobid>;<cluster>".
	id, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), ";")
	if id == "" {
		return "", fmt.Errorf("sbatch accepted the job but printed no job ID")
	}
	logger.Debug("Job submitted.", "job_id", id)
	return JobID(id), nil
}
