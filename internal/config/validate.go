package config

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/docker/go-units"

	"github.com/avolkov/metagrid/internal/ctxlog"
	"github.com/avolkov/metagrid/internal/fsutil"
	"github.com/avolkov/metagrid/internal/pipeline"
)

// wallTimeRe accepts the scheduler's HH:MM:SS and D-HH:MM:SS time formats.
var wallTimeRe = regexp.MustCompile(`^(?:\d+-)?\d{1,3}:\d{2}:\d{2}$`)

// Validate runs the semantic checks on an already decoded configuration:
// the sample list and every stage script must exist, and every resolved
// resource value must be well-formed. All problems are collected and
// returned as one joined error so a single run reports everything that
// needs fixing; a nil return means the configuration is usable.
func (c *Config) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var problems []error
	check := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if _, err := pipeline.LoadSamples(c.Pipeline.SamplesFile); err != nil {
		check("samples_file: %v", err)
	}
	if !fsutil.DirExists(c.Pipeline.ScriptsDir) {
		check("scripts_dir: %s is not a directory", c.Pipeline.ScriptsDir)
	}

	for _, stage := range pipeline.Stages() {
		s := c.Settings(stage)
		if s.CPUs <= 0 {
			check("stage %s: cpus must be positive, got %d", stage, s.CPUs)
		}
		if s.MaxConcurrent <= 0 {
			check("stage %s: max_concurrent must be positive, got %d", stage, s.MaxConcurrent)
		}
		if _, err := units.RAMInBytes(s.Memory); err != nil {
			check("stage %s: memory %q: %v", stage, s.Memory, err)
		}
		if !wallTimeRe.MatchString(s.WallTime) {
			check("stage %s: walltime %q is not in HH:MM:SS or D-HH:MM:SS form", stage, s.WallTime)
		}
		if len(s.Outputs) == 0 {
			check("stage %s: outputs must list at least one path pattern", stage)
		}
		if script := c.ScriptPath(stage); !fsutil.FileExists(script) {
			check("stage %s: script %s does not exist", stage, script)
		}
	}

	if len(problems) > 0 {
		logger.Debug("Configuration validation failed.", "problems", len(problems))
		return errors.Join(problems...)
	}
	logger.Debug("Configuration validation passed.")
	return nil
}
