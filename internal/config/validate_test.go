package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/metagrid/internal/pipeline"
)

// writeValidWorkspace lays out a config file, sample list and stub scripts
// that pass every validation check, and returns the config path plus the
// workspace directory for tests that want to break things selectively.
func writeValidWorkspace(t *testing.T, extraHCL string) (string, string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "metagrid.hcl")
	content := `
pipeline {
  samples_file = "samples.txt"
  work_dir     = "work"
  scripts_dir  = "scripts"
}
` + extraHCL
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "samples.txt"), []byte("SRR001\nSRR002\n"), 0o644))

	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))
	for _, stage := range pipeline.Stages() {
		script := filepath.Join(scripts, stage.Definition().Script)
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\n"), 0o755))
	}
	return cfgPath, dir
}

func TestValidate_PassesOnCompleteWorkspace(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeValidWorkspace(t, "")
	cfg, err := Load(context.Background(), cfgPath)
	require.NoError(t, err)

	require.NoError(t, cfg.Validate(context.Background()))
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeValidWorkspace(t, `
stage "trimming" {
  memory   = "lots"
  walltime = "tomorrow"
}

stage "download" {
  cpus = -1
}
`)
	// Break the sample list and one script as well.
	require.NoError(t, os.Remove(filepath.Join(dir, "samples.txt")))
	require.NoError(t, os.Remove(filepath.Join(dir, "scripts", "04_host_removal.sbatch")))

	cfg, err := Load(context.Background(), cfgPath)
	require.NoError(t, err)

	err = cfg.Validate(context.Background())

	require.Error(t, err)
	msg := err.Error()
	require.Contains(t, msg, "samples_file")
	require.Contains(t, msg, `memory "lots"`)
	require.Contains(t, msg, `walltime "tomorrow"`)
	require.Contains(t, msg, "cpus must be positive")
	require.Contains(t, msg, "04_host_removal.sbatch")
}

func TestValidate_AcceptsDayPrefixedWallTime(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeValidWorkspace(t, `
stage "functional-profiling" {
  walltime = "2-00:00:00"
}
`)
	cfg, err := Load(context.Background(), cfgPath)
	require.NoError(t, err)

	require.NoError(t, cfg.Validate(context.Background()))
}

func TestValidate_RejectsEmptyOutputsOverride(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeValidWorkspace(t, `
stage "quality-control" {
  outputs = []
}
`)
	cfg, err := Load(context.Background(), cfgPath)
	require.NoError(t, err)

	err = cfg.Validate(context.Background())

	require.Error(t, err)
	require.Contains(t, err.Error(), "outputs must list at least one path pattern")
}

func TestEnsureLayout_CreatesStageDirectories(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeValidWorkspace(t, "")
	cfg, err := Load(context.Background(), cfgPath)
	require.NoError(t, err)

	require.NoError(t, cfg.EnsureLayout())

	for _, sub := range []string{"raw", "qc", "trimmed", "clean", "taxonomy", "function", "logs"} {
		info, err := os.Stat(filepath.Join(dir, "work", sub))
		require.NoError(t, err, "directory %s should exist", sub)
		require.True(t, info.IsDir())
	}

	// Idempotent on an existing layout.
	require.NoError(t, cfg.EnsureLayout())
}

func TestEnsureLayout_FollowsOutputOverrides(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeValidWorkspace(t, `
stage "download" {
  outputs = ["fetched/{sample}.fastq.gz"]
}
`)
	cfg, err := Load(context.Background(), cfgPath)
	require.NoError(t, err)

	require.NoError(t, cfg.EnsureLayout())

	info, err := os.Stat(filepath.Join(dir, "work", "fetched"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.NoDirExists(t, filepath.Join(dir, "work", "raw"))
}
