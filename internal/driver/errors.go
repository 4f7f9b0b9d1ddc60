package driver

import (
	"fmt"
	"strings"

	"github.com/avolkov/metagrid/internal/pipeline"
)

// SampleListError reports a sample list that could not be read or that
// contains no sample identifiers.
type SampleListError struct {
	Path string
	Err  error
}

func (e *SampleListError) Error() string {
	return fmt.Sprintf("sample list %s: %v", e.Path, e.Err)
}

func (e *SampleListError) Unwrap() error { return e.Err }

// DependencyNotMetError reports a prerequisite stage whose outputs are not
// complete for the loaded sample set, so the requested stage must not run.
type DependencyNotMetError struct {
	Stage        pipeline.Stage
	Prerequisite pipeline.Stage
	Missing      []string
}

func (e *DependencyNotMetError) Error() string {
	return fmt.Sprintf("cannot run stage %s: prerequisite %s is incomplete for %d of the samples (%s)",
		e.Stage, e.Prerequisite, len(e.Missing), summarize(e.Missing))
}

// ScriptNotFoundError reports that a stage's job script does not exist at
// the resolved path. It is raised before the scheduler is contacted and is
// distinct from a scheduler rejection.
type ScriptNotFoundError struct {
	Stage pipeline.Stage
	Path  string
}

func (e *ScriptNotFoundError) Error() string {
	return fmt.Sprintf("stage %s: job script not found at %s", e.Stage, e.Path)
}

// SubmissionError reports that the scheduler rejected or failed the
// submission.
type SubmissionError struct {
	Stage pipeline.Stage
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("stage %s: submission failed: %v", e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// summarize renders at most five sample names from a missing list.
func summarize(samples []string) string {
	const limit = 5
	if len(samples) <= limit {
		return strings.Join(samples, ", ")
	}
	return strings.Join(samples[:limit], ", ") + ", ..."
}
