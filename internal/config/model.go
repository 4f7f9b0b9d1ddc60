package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/avolkov/metagrid/internal/pipeline"
)

// Config is the decoded driver configuration.
type Config struct {
	Pipeline  Pipeline
	Scheduler Scheduler
	Overrides map[pipeline.Stage]*Override

	// Path is the configuration file this model was loaded from. Relative
	// paths inside the file are resolved against its directory.
	Path string
}

// Pipeline locates the pipeline inputs and outputs on the shared filesystem.
type Pipeline struct {
	// SamplesFile is the sample identifier list, one sample per line.
	SamplesFile string

	// WorkDir is the root under which every stage writes its outputs.
	WorkDir string

	// ScriptsDir holds the per-stage sbatch job scripts.
	ScriptsDir string

	// LogDir receives the scheduler's stdout/stderr files. Defaults to
	// WorkDir/logs.
	LogDir string
}

// Scheduler carries cluster-specific submission settings. All fields are
// optional; empty values are omitted from the submission.
type Scheduler struct {
	Partition string
	Account   string

	// SbatchPath is the submit executable to invoke. Defaults to "sbatch"
	// resolved via PATH.
	SbatchPath string
}

// Override is a per-stage override from a stage block. Nil fields fall
// back to the stage defaults.
type Override struct {
	CPUs          *int
	Memory        *string
	WallTime      *string
	MaxConcurrent *int
	Script        *string

	// Outputs replaces the stage's expected output patterns wholesale when
	// non-nil. Patterns are relative to the work directory and substitute
	// "{sample}" per sample.
	Outputs []string
}

// Settings is the fully resolved configuration for one stage: the static
// stage defaults overlaid with any configured override.
type Settings struct {
	CPUs          int
	Memory        string
	WallTime      string
	MaxConcurrent int
	Script        string
	Outputs       []string
}

// Settings resolves the effective settings for stage.
func (c *Config) Settings(stage pipeline.Stage) Settings {
	def := stage.Definition()
	s := Settings{
		CPUs:          def.CPUs,
		Memory:        def.Memory,
		WallTime:      def.WallTime,
		MaxConcurrent: def.MaxConcurrent,
		Script:        def.Script,
		Outputs:       def.Outputs,
	}
	ov := c.Overrides[stage]
	if ov == nil {
		return s
	}
	if ov.CPUs != nil {
		s.CPUs = *ov.CPUs
	}
	if ov.Memory != nil {
		s.Memory = *ov.Memory
	}
	if ov.WallTime != nil {
		s.WallTime = *ov.WallTime
	}
	if ov.MaxConcurrent != nil {
		s.MaxConcurrent = *ov.MaxConcurrent
	}
	if ov.Script != nil {
		s.Script = *ov.Script
	}
	if ov.Outputs != nil {
		s.Outputs = ov.Outputs
	}
	return s
}

// ScriptPath returns the absolute path of the job script for stage.
func (c *Config) ScriptPath(stage pipeline.Stage) string {
	return filepath.Join(c.Pipeline.ScriptsDir, c.Settings(stage).Script)
}

// EnsureLayout creates the work directory, the output directory of every
// resolved stage output pattern, and the log directory. Directories whose
// name depends on the sample identifier are left for the job scripts to
// create; existing directories are left untouched.
func (c *Config) EnsureLayout() error {
	dirs := []string{c.Pipeline.WorkDir}
	for _, stage := range pipeline.Stages() {
		for _, out := range c.Settings(stage).Outputs {
			dir := filepath.Dir(out)
			if dir == "." || strings.Contains(dir, "{sample}") {
				continue
			}
			dirs = append(dirs, filepath.Join(c.Pipeline.WorkDir, dir))
		}
	}
	dirs = append(dirs, c.Pipeline.LogDir)
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
