package scheduler

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/avolkov/metagrid/internal/config"
	"github.com/avolkov/metagrid/internal/pipeline"
)

// Request is one fully specified submission: the job script plus every
// scheduler directive the driver controls. Optional fields left empty are
// omitted from the rendered command line.
type Request struct {
	JobName  string
	Script   string
	CPUs     int
	Memory   string
	WallTime string

	// Partition and Account are cluster-specific and optional.
	Partition string
	Account   string

	// LogDir receives the job's stdout/stderr files when set.
	LogDir string

	// ArraySize above zero makes the job an array with tasks 1..ArraySize,
	// at most MaxConcurrent of them running at once.
	ArraySize     int
	MaxConcurrent int

	// Env is exported into the job's environment.
	Env map[string]string
}

// BuildRequest assembles the submission request for one run of stage,
// merging the cluster-wide settings from cfg with the stage's resolved
// resource settings. In parallel mode the request is an array job with one
// task per sample, throttled to the stage's concurrency cap; otherwise a
// single task walks the whole sample list in sequence and both array
// fields stay unset. Building a request has no side effects; nothing is
// submitted until a Scheduler accepts it.
func BuildRequest(stage pipeline.Stage, cfg *config.Config, settings config.Settings, sampleCount int, parallel bool) *Request {
	req := &Request{
		JobName:   "metagrid-" + stage.String(),
		Script:    cfg.ScriptPath(stage),
		CPUs:      settings.CPUs,
		Memory:    settings.Memory,
		WallTime:  settings.WallTime,
		Partition: cfg.Scheduler.Partition,
		Account:   cfg.Scheduler.Account,
		LogDir:    cfg.Pipeline.LogDir,
		Env: map[string]string{
			"METAGRID_SAMPLES_FILE": cfg.Pipeline.SamplesFile,
			"METAGRID_WORK_DIR":     cfg.Pipeline.WorkDir,
			"METAGRID_STAGE":        stage.String(),
		},
	}
	if parallel {
		req.ArraySize = sampleCount
		req.MaxConcurrent = settings.MaxConcurrent
	}
	return req
}

// Args renders the request as sbatch command-line arguments, ending with
// the job script. Environment exports are sorted so the rendering is
// deterministic.
func (r *Request) Args() []string {
	args := []string{
		"--parsable",
		"--job-name", r.JobName,
		"--cpus-per-task", strconv.Itoa(r.CPUs),
		"--mem", r.Memory,
		"--time", r.WallTime,
	}
	if r.Partition != "" {
		args = append(args, "--partition", r.Partition)
	}
	if r.Account != "" {
		args = append(args, "--account", r.Account)
	}
	if r.ArraySize > 0 {
		args = append(args, "--array", fmt.Sprintf("1-%d%%%d", r.ArraySize, r.MaxConcurrent))
	}
	if r.LogDir != "" {
		// %A/%a expand per array task; %j is the plain job ID.
		pattern := r.JobName + "_%j.out"
		if r.ArraySize > 0 {
			pattern = r.JobName + "_%A_%a.out"
		}
		args = append(args, "--output", filepath.Join(r.LogDir, pattern))
	}
	if len(r.Env) > 0 {
		keys := make([]string, 0, len(r.Env))
		for k := range r.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		exports := make([]string, 0, len(keys)+1)
		exports = append(exports, "ALL")
		for _, k := range keys {
			exports = append(exports, k+"="+r.Env[k])
		}
		args = append(args, "--export", strings.Join(exports, ","))
	}
	return append(args, r.Script)
}
