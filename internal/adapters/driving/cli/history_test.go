package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

func testRuns() []domain.RunRecord {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []domain.RunRecord{
		{
			ID:         "run-2",
			Sample:     "drive.copy-file",
			Status:     domain.RunFailed,
			Error:      "not found",
			StartedAt:  start.Add(time.Minute),
			FinishedAt: start.Add(time.Minute + 250*time.Millisecond),
		},
		{
			ID:         "run-1",
			Sample:     "drive.quickstart",
			Status:     domain.RunSucceeded,
			StartedAt:  start,
			FinishedAt: start.Add(1500 * time.Millisecond),
		},
	}
}

func TestHistoryCmd_Defaults(t *testing.T) {
	env := setupTestServices(t)
	env.runner.history = testRuns()

	out, _, err := execute(t, "history")

	require.NoError(t, err)
	assert.Equal(t, 20, env.runner.limit)
	assert.Empty(t, env.runner.sample)
	for _, want := range []string{"drive.copy-file", "failed", "not found", "250ms", "drive.quickstart", "1.5s"} {
		assert.Contains(t, out, want)
	}
}

func TestHistoryCmd_Filters(t *testing.T) {
	env := setupTestServices(t)

	_, _, err := execute(t, "history", "-n", "5", "--sample", "drive.quickstart")

	require.NoError(t, err)
	assert.Equal(t, 5, env.runner.limit)
	assert.Equal(t, "drive.quickstart", env.runner.sample)
}

func TestHistoryCmd_EmptyJSON(t *testing.T) {
	setupTestServices(t)

	out, _, err := execute(t, "history", "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestHistoryCmd_JSONKeepsRecords(t *testing.T) {
	env := setupTestServices(t)
	env.runner.history = testRuns()

	out, _, err := execute(t, "history", "-o", "json")

	require.NoError(t, err)
	var runs []domain.RunRecord
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	assert.Equal(t, testRuns(), runs)
}
