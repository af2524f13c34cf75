package history

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, now *time.Time) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	store.now = func() time.Time { return *now }
	return store
}

func TestRunLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	store := openTestStore(t, &now)

	runID, err := store.Begin(5 * time.Minute)
	require.NoError(t, err)
	_, err = uuid.Parse(runID)
	require.NoError(t, err)

	require.NoError(t, store.Extend(runID, 10*time.Minute))
	now = now.Add(10 * time.Minute)
	require.NoError(t, store.Finish(runID))

	assert.ErrorIs(t, store.Finish(runID), ErrNotFound, "closed runs stay closed")
	assert.ErrorIs(t, store.Abandon("missing"), ErrNotFound)

	runs, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, OutcomeFinished, runs[0].Outcome)
	assert.Equal(t, 10*time.Minute, runs[0].Total)
	require.NotNil(t, runs[0].EndedAt)
	assert.True(t, runs[0].EndedAt.Equal(now))
}

func TestSummaryCountsOnlyThatDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	store := openTestStore(t, &now)

	yesterday := now.AddDate(0, 0, -1)
	now = yesterday
	oldRun, err := store.Begin(time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Finish(oldRun))

	now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	first, err := store.Begin(5 * time.Minute)
	require.NoError(t, err)
	now = now.Add(5 * time.Minute)
	require.NoError(t, store.Finish(first))

	second, err := store.Begin(10 * time.Minute)
	require.NoError(t, err)
	now = now.Add(time.Minute)
	require.NoError(t, store.Abandon(second))

	third, err := store.Begin(15 * time.Minute)
	require.NoError(t, err)
	now = now.Add(15 * time.Minute)
	require.NoError(t, store.Finish(third))

	_, err = store.Begin(time.Minute)
	require.NoError(t, err)

	summary, err := store.Summary(now)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Finished)
	assert.Equal(t, 1, summary.Abandoned)
	assert.Equal(t, 20*time.Minute, summary.Focus)
	assert.True(t, summary.LastFinished.Equal(now))
}

func TestSummaryEmptyDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	store := openTestStore(t, &now)

	summary, err := store.Summary(now)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

func TestDescribe(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)

	assert.Equal(t, "No finished countdowns today", Summary{}.Describe(now))
	assert.Equal(t,
		"2 countdowns finished today · last 3 minutes ago",
		Summary{Finished: 2, LastFinished: now.Add(-3 * time.Minute)}.Describe(now),
	)
	assert.Equal(t,
		"1 countdown finished today · last 1 hour ago",
		Summary{Finished: 1, LastFinished: now.Add(-time.Hour)}.Describe(now),
	)
}

func TestNilStoreCloses(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Close())
}
