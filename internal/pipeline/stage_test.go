package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStage_ResolvesEveryKnownName(t *testing.T) {
	t.Parallel()

	for _, want := range Stages() {
		got, err := ParseStage(want.String())
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParseStage_UnknownNameListsValidStages(t *testing.T) {
	t.Parallel()

	_, err := ParseStage("assembly")

	var unknownErr *UnknownStageError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "assembly", unknownErr.Name)
	for _, name := range StageNames() {
		require.Contains(t, err.Error(), name, "the error should name every valid stage")
	}
}

func TestStages_PrerequisitesFormTheExpectedGraph(t *testing.T) {
	t.Parallel()

	require.Empty(t, StageDownload.Definition().Prerequisites)
	require.Equal(t, []Stage{StageDownload}, StageQualityControl.Definition().Prerequisites)
	require.Equal(t, []Stage{StageQualityControl}, StageTrimming.Definition().Prerequisites)
	require.Equal(t, []Stage{StageTrimming}, StageHostRemoval.Definition().Prerequisites)
	require.Equal(t, []Stage{StageHostRemoval}, StageTaxonomicClassification.Definition().Prerequisites)
	require.Equal(t,
		[]Stage{StageHostRemoval, StageTaxonomicClassification},
		StageFunctionalProfiling.Definition().Prerequisites)
}

func TestStages_DefinitionsAreSelfConsistent(t *testing.T) {
	t.Parallel()

	for _, stage := range Stages() {
		def := stage.Definition()
		require.NotEmpty(t, def.Name)
		require.NotEmpty(t, def.Script)
		require.NotEmpty(t, def.Outputs)
		require.Positive(t, def.CPUs)
		require.NotEmpty(t, def.Memory)
		require.NotEmpty(t, def.WallTime)
		require.Positive(t, def.MaxConcurrent)

		for _, out := range def.Outputs {
			require.Contains(t, out, "/",
				"stage %s output %s should live under a stage directory", stage, out)
			require.Contains(t, out, "{sample}",
				"stage %s output %s should be a per-sample template", stage, out)
		}

		// Prerequisites always point at earlier stages; the table cannot
		// express a cycle.
		for _, prereq := range def.Prerequisites {
			require.Less(t, int(prereq), int(stage))
		}
	}
}
