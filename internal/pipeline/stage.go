package pipeline

import (
	"fmt"
	"strings"
)

// Stage identifies one phase of the metagenomics pipeline.
type Stage int

// The pipeline stages, in execution order.
const (
	StageDownload Stage = iota
	StageQualityControl
	StageTrimming
	StageHostRemoval
	StageTaxonomicClassification
	StageFunctionalProfiling
)

// Definition is the static metadata for a single stage: the job script that
// runs it, the stages that must be complete before it may be submitted, the
// per-sample outputs it is expected to produce, and its default scheduler
// resources. Output paths are templates relative to the work directory;
// "{sample}" is replaced with the sample identifier. Everything except Name
// and Prerequisites is a default that a stage block in the configuration
// may override.
type Definition struct {
	Name          string
	Script        string
	Prerequisites []Stage
	Outputs       []string
	CPUs          int
	Memory        string
	WallTime      string
	MaxConcurrent int
}

// definitions is the closed stage table. Adding a stage means adding an
// entry here and a matching script template; nothing is discovered at
// runtime.
var definitions = [...]Definition{
	StageDownload: {
		Name:   "download",
		Script: "01_download.sbatch",
		Outputs: []string{
			"raw/{sample}_1.fastq.gz",
			"raw/{sample}_2.fastq.gz",
		},
		CPUs:          2,
		Memory:        "4G",
		WallTime:      "12:00:00",
		MaxConcurrent: 8,
	},
	StageQualityControl: {
		Name:          "quality-control",
		Script:        "02_quality_control.sbatch",
		Prerequisites: []Stage{StageDownload},
		Outputs: []string{
			"qc/{sample}_1_fastqc.html",
			"qc/{sample}_2_fastqc.html",
		},
		CPUs:          2,
		Memory:        "4G",
		WallTime:      "04:00:00",
		MaxConcurrent: 20,
	},
	StageTrimming: {
		Name:          "trimming",
		Script:        "03_trimming.sbatch",
		Prerequisites: []Stage{StageQualityControl},
		Outputs: []string{
			"trimmed/{sample}_1.trim.fastq.gz",
			"trimmed/{sample}_2.trim.fastq.gz",
		},
		CPUs:          8,
		Memory:        "16G",
		WallTime:      "08:00:00",
		MaxConcurrent: 20,
	},
	StageHostRemoval: {
		Name:          "host-removal",
		Script:        "04_host_removal.sbatch",
		Prerequisites: []Stage{StageTrimming},
		Outputs: []string{
			"clean/{sample}_1.clean.fastq.gz",
			"clean/{sample}_2.clean.fastq.gz",
		},
		CPUs:          16,
		Memory:        "32G",
		WallTime:      "12:00:00",
		MaxConcurrent: 20,
	},
	StageTaxonomicClassification: {
		Name:          "taxonomic-classification",
		Script:        "05_taxonomic_classification.sbatch",
		Prerequisites: []Stage{StageHostRemoval},
		Outputs: []string{
			"taxonomy/{sample}.kraken2.report",
			"taxonomy/{sample}.bracken.tsv",
		},
		CPUs:          16,
		Memory:        "64G",
		WallTime:      "08:00:00",
		MaxConcurrent: 10,
	},
	StageFunctionalProfiling: {
		Name:   "functional-profiling",
		Script: "06_functional_profiling.sbatch",
		Prerequisites: []Stage{
			StageHostRemoval,
			StageTaxonomicClassification,
		},
		Outputs: []string{
			"function/{sample}_genefamilies.tsv",
			"function/{sample}_pathabundance.tsv",
			"function/{sample}_pathcoverage.tsv",
		},
		CPUs:          16,
		Memory:        "32G",
		WallTime:      "24:00:00",
		MaxConcurrent: 10,
	},
}

// Stages returns every pipeline stage in execution order.
func Stages() []Stage {
	all := make([]Stage, len(definitions))
	for i := range all {
		all[i] = Stage(i)
	}
	return all
}

// StageNames returns the canonical name of every stage in execution order.
func StageNames() []string {
	names := make([]string, len(definitions))
	for i, def := range definitions {
		names[i] = def.Name
	}
	return names
}

// String returns the canonical hyphenated stage name.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(definitions) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return definitions[s].Name
}

// Definition returns the static metadata for s. s must be one of the
// declared stage constants.
func (s Stage) Definition() Definition {
	return definitions[s]
}

// ParseStage resolves a command-line stage name to its Stage. Unrecognized
// names produce an *UnknownStageError naming the valid stages.
func ParseStage(name string) (Stage, error) {
	for i, def := range definitions {
		if def.Name == name {
			return Stage(i), nil
		}
	}
	return 0, &UnknownStageError{Name: name}
}

// UnknownStageError reports a stage name outside the closed stage set.
type UnknownStageError struct {
	Name string
}

func (e *UnknownStageError) Error() string {
	return fmt.Sprintf("unknown stage %q, valid stages are: %s",
		e.Name, strings.Join(StageNames(), ", "))
}
