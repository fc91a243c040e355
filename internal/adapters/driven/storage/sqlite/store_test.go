package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func run(sample string, started time.Time, status domain.RunStatus) domain.RunRecord {
	return domain.RunRecord{
		ID:         uuid.NewString(),
		Sample:     sample,
		Args:       domain.Args{"file_id": "abc"},
		Status:     status,
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "history.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.HistoryStore().Record(context.Background(), run("drive.quickstart", time.Now(), domain.RunSucceeded)))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	runs, err := second.HistoryStore().List(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	history := setupTestStore(t).HistoryStore()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	failed := run("sheets.append_values", base.Add(time.Minute), domain.RunFailed)
	failed.Error = "googleapi: Error 404: Requested entity was not found."
	require.NoError(t, history.Record(ctx, run("drive.quickstart", base, domain.RunSucceeded)))
	require.NoError(t, history.Record(ctx, failed))
	require.NoError(t, history.Record(ctx, run("drive.quickstart", base.Add(2*time.Minute), domain.RunSucceeded)))

	all, err := history.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].StartedAt.Equal(base.Add(2*time.Minute)))
	assert.Equal(t, "sheets.append_values", all[1].Sample)
	assert.Equal(t, domain.RunFailed, all[1].Status)
	assert.Equal(t, failed.Error, all[1].Error)
	assert.Equal(t, "abc", all[1].Args["file_id"])
	assert.Equal(t, 1500*time.Millisecond, all[1].Duration())

	drive, err := history.List(ctx, "drive.quickstart", 1)
	require.NoError(t, err)
	require.Len(t, drive, 1)
	assert.True(t, drive[0].StartedAt.Equal(base.Add(2*time.Minute)))
}

func TestHistoryStore_RecordRequiresID(t *testing.T) {
	history := setupTestStore(t).HistoryStore()

	err := history.Record(context.Background(), domain.RunRecord{Sample: "drive.quickstart"})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryStore_DuplicateID(t *testing.T) {
	ctx := context.Background()
	history := setupTestStore(t).HistoryStore()
	rec := run("drive.quickstart", time.Now(), domain.RunSucceeded)

	require.NoError(t, history.Record(ctx, rec))
	require.Error(t, history.Record(ctx, rec))
}

func TestHistoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	history := setupTestStore(t).HistoryStore()
	require.NoError(t, history.Record(ctx, run("drive.quickstart", time.Now(), domain.RunSucceeded)))

	require.NoError(t, history.Clear(ctx))

	runs, err := history.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestHistoryStore_NilArgs(t *testing.T) {
	ctx := context.Background()
	history := setupTestStore(t).HistoryStore()
	rec := run("gmail.list_labels", time.Now(), domain.RunSucceeded)
	rec.Args = nil

	require.NoError(t, history.Record(ctx, rec))

	runs, err := history.List(ctx, "gmail.list_labels", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Empty(t, runs[0].Args)
}
