// Package testutil provides shared fixtures for driver and CLI tests: a
// temporary pipeline workspace with a configuration file, sample list and
// job scripts, plus helpers to fabricate stage outputs and record
// submissions.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/metagrid/internal/ctxlog"
	"github.com/avolkov/metagrid/internal/pipeline"
	"github.com/avolkov/metagrid/internal/scheduler"
)

// QuietContext returns a context carrying a logger that discards
// everything, keeping test output clean.
func QuietContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

// Workspace is a self-contained pipeline workspace under a temporary
// directory.
type Workspace struct {
	Dir         string
	ConfigPath  string
	SamplesPath string
	ScriptsDir  string
	WorkDir     string
}

// NewWorkspace lays out a complete workspace under t.TempDir(): a
// configuration file, a sample list with the given identifiers, a scripts
// directory holding a stub script per stage, and an empty work directory.
// extraHCL is appended verbatim to the generated configuration, so tests
// can add scheduler settings or stage overrides.
func NewWorkspace(t *testing.T, samples []string, extraHCL string) *Workspace {
	t.Helper()

	dir := t.TempDir()
	w := &Workspace{
		Dir:         dir,
		ConfigPath:  filepath.Join(dir, "metagrid.hcl"),
		SamplesPath: filepath.Join(dir, "samples.txt"),
		ScriptsDir:  filepath.Join(dir, "scripts"),
		WorkDir:     filepath.Join(dir, "work"),
	}

	// 1. The configuration, with paths relative to its own directory.
	cfg := `
pipeline {
  samples_file = "samples.txt"
  work_dir     = "work"
  scripts_dir  = "scripts"
}
` + extraHCL
	require.NoError(t, os.WriteFile(w.ConfigPath, []byte(cfg), 0o644))

	// 2. The sample list.
	require.NoError(t, os.WriteFile(w.SamplesPath, []byte(strings.Join(samples, "\n")+"\n"), 0o644))

	// 3. One stub job script per stage.
	require.NoError(t, os.MkdirAll(w.ScriptsDir, 0o755))
	for _, stage := range pipeline.Stages() {
		script := filepath.Join(w.ScriptsDir, stage.Definition().Script)
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\n"), 0o755))
	}

	// 4. An empty work directory.
	require.NoError(t, os.MkdirAll(w.WorkDir, 0o755))

	return w
}

// WriteOutputs fabricates every default expected output of stage for the
// given samples under the work directory, as if the stage's job had run.
func (w *Workspace) WriteOutputs(t *testing.T, stage pipeline.Stage, samples ...string) {
	t.Helper()
	for _, sample := range samples {
		for _, tmpl := range stage.Definition().Outputs {
			w.WriteWorkFile(t, pipeline.ExpandOutput(tmpl, sample))
		}
	}
}

// WriteWorkFile creates one file at the given path relative to the work
// directory, creating parent directories as needed.
func (w *Workspace) WriteWorkFile(t *testing.T, rel string) {
	t.Helper()
	path := filepath.Join(w.WorkDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data\n"), 0o644))
}

// RemoveScript deletes a stage's job script from the workspace.
func (w *Workspace) RemoveScript(t *testing.T, stage pipeline.Stage) {
	t.Helper()
	require.NoError(t, os.Remove(filepath.Join(w.ScriptsDir, stage.Definition().Script)))
}

// FakeScheduler records submissions instead of contacting a real scheduler.
type FakeScheduler struct {
	Requests []*scheduler.Request
	NextID   scheduler.JobID
	Err      error
}

// Submit implements scheduler.Scheduler.
func (f *FakeScheduler) Submit(ctx context.Context, req *scheduler.Request) (scheduler.JobID, error) {
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return "", f.Err
	}
	if f.NextID == "" {
		return "12345", nil
	}
	return f.NextID, nil
}
