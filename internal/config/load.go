package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/avolkov/metagrid/internal/ctxlog"
	"github.com/avolkov/metagrid/internal/pipeline"
)

// fileRoot mirrors the top-level blocks of a configuration file.
type fileRoot struct {
	Pipeline  *pipelineBlock  `hcl:"pipeline,block"`
	Scheduler *schedulerBlock `hcl:"scheduler,block"`
	Stages    []*stageBlock   `hcl:"stage,block"`
}

type pipelineBlock struct {
	SamplesFile string  `hcl:"samples_file"`
	WorkDir     string  `hcl:"work_dir"`
	ScriptsDir  string  `hcl:"scripts_dir"`
	LogDir      *string `hcl:"log_dir,optional"`
}

type schedulerBlock struct {
	Partition  *string `hcl:"partition,optional"`
	Account    *string `hcl:"account,optional"`
	SbatchPath *string `hcl:"sbatch_path,optional"`
}

type stageBlock struct {
	Name          string   `hcl:"name,label"`
	CPUs          *int     `hcl:"cpus,optional"`
	Memory        *string  `hcl:"memory,optional"`
	WallTime      *string  `hcl:"walltime,optional"`
	MaxConcurrent *int     `hcl:"max_concurrent,optional"`
	Script        *string  `hcl:"script,optional"`
	Outputs       []string `hcl:"outputs,optional"`
}

// Load parses and decodes the HCL configuration file at path. Attribute
// values may reference process environment variables through the env
// object, e.g. work_dir = "${env.SCRATCH}/metagenomics". Relative paths are
// resolved against the directory containing the file.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	cfg, err := translate(path, &root)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded.",
		"path", path,
		"work_dir", cfg.Pipeline.WorkDir,
		"stage_overrides", len(cfg.Overrides),
	)
	return cfg, nil
}

// evalContext exposes the process environment to configuration expressions
// as the env object.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

// translate builds the model from the raw decoded blocks, applying defaults
// and resolving relative paths against the config file's directory.
func translate(path string, root *fileRoot) (*Config, error) {
	if root.Pipeline == nil {
		return nil, fmt.Errorf("config file %s: missing required pipeline block", path)
	}

	base := filepath.Dir(path)
	cfg := &Config{
		Path: path,
		Pipeline: Pipeline{
			SamplesFile: resolve(base, root.Pipeline.SamplesFile),
			WorkDir:     resolve(base, root.Pipeline.WorkDir),
			ScriptsDir:  resolve(base, root.Pipeline.ScriptsDir),
		},
		Scheduler: Scheduler{SbatchPath: "sbatch"},
		Overrides: make(map[pipeline.Stage]*Override),
	}

	if root.Pipeline.LogDir != nil {
		cfg.Pipeline.LogDir = resolve(base, *root.Pipeline.LogDir)
	} else {
		cfg.Pipeline.LogDir = filepath.Join(cfg.Pipeline.WorkDir, "logs")
	}

	if sched := root.Scheduler; sched != nil {
		if sched.Partition != nil {
			cfg.Scheduler.Partition = *sched.Partition
		}
		if sched.Account != nil {
			cfg.Scheduler.Account = *sched.Account
		}
		if sched.SbatchPath != nil {
			cfg.Scheduler.SbatchPath = *sched.SbatchPath
		}
	}

	for _, block := range root.Stages {
		stage, err := pipeline.ParseStage(block.Name)
		if err != nil {
			return nil, fmt.Errorf("config file %s: stage block: %w", path, err)
		}
		if _, dup := cfg.Overrides[stage]; dup {
			return nil, fmt.Errorf("config file %s: duplicate stage %q block", path, block.Name)
		}
		cfg.Overrides[stage] = &Override{
			CPUs:          block.CPUs,
			Memory:        block.Memory,
			WallTime:      block.WallTime,
			MaxConcurrent: block.MaxConcurrent,
			Script:        block.Script,
			Outputs:       block.Outputs,
		}
	}
	return cfg, nil
}

// resolve anchors a possibly relative path at base.
func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
