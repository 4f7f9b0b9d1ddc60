package driver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/metagrid/internal/pipeline"
	"github.com/avolkov/metagrid/internal/testutil"
)

func TestStatus_ReportsPerStageCompletion(t *testing.T) {
	t.Parallel()

	w := testutil.NewWorkspace(t, []string{"A", "B"}, "")
	w.WriteOutputs(t, pipeline.StageDownload, "A", "B")
	w.WriteOutputs(t, pipeline.StageQualityControl, "A")
	d := New(loadConfig(t, w), nil, nil)

	statuses, err := d.Status(testutil.QuietContext())

	require.NoError(t, err)
	require.Len(t, statuses, len(pipeline.Stages()))

	byStage := make(map[pipeline.Stage]StageStatus, len(statuses))
	for i, s := range statuses {
		require.Equal(t, pipeline.Stages()[i], s.Stage, "statuses come in execution order")
		require.Equal(t, 2, s.Total)
		byStage[s.Stage] = s
	}

	require.True(t, byStage[pipeline.StageDownload].Complete)
	require.Empty(t, byStage[pipeline.StageDownload].Missing)

	require.False(t, byStage[pipeline.StageQualityControl].Complete)
	require.Equal(t, []string{"B"}, byStage[pipeline.StageQualityControl].Missing)

	require.False(t, byStage[pipeline.StageTrimming].Complete)
	require.Equal(t, []string{"A", "B"}, byStage[pipeline.StageTrimming].Missing)
}

func TestStatus_FailsWithoutSampleList(t *testing.T) {
	t.Parallel()

	w := testutil.NewWorkspace(t, nil, "")
	d := New(loadConfig(t, w), nil, nil)

	_, err := d.Status(testutil.QuietContext())

	var listErr *SampleListError
	require.ErrorAs(t, err, &listErr)
}
