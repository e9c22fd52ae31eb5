package analytics

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *AnalyticsManager {
	t.Helper()
	analyticsManager, err := NewAnalyticsManager(filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, analyticsManager.Close())
	})
	return analyticsManager
}

func TestNewEntryRoundTrip(t *testing.T) {
	analyticsManager := newTestManager(t)

	require.NoError(t, analyticsManager.NewEntry("sta", "start-server", "start-server"))
	require.NoError(t, analyticsManager.NewEntry("stop", "", "stop"))

	entries, err := analyticsManager.GetRecentEntries(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "stop", entries[0].Input)
	assert.Empty(t, entries[0].Suggestion)
	assert.False(t, entries[0].Accepted())

	assert.Equal(t, "sta", entries[1].Input)
	assert.Equal(t, "start-server", entries[1].Suggestion)
	assert.Equal(t, "start-server", entries[1].Actual)
	assert.True(t, entries[1].Accepted())
	assert.False(t, entries[1].CreatedAt.IsZero())
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.db")

	first, err := NewAnalyticsManager(path)
	require.NoError(t, err)
	require.NoError(t, first.NewEntry("a", "abc", "abc"))
	require.NoError(t, first.Close())

	second, err := NewAnalyticsManager(path)
	require.NoError(t, err)
	defer second.Close()

	count, err := second.GetTotalCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCounts(t *testing.T) {
	analyticsManager := newTestManager(t)

	entries := []struct{ input, suggestion, actual string }{
		{"sta", "start-server", "start-server"},
		{"sto", "stop-server", "stop-server"},
		{"sta", "start-server", "start-server"},
		{"st", "status", "st"},
		{"free", "", "free text"},
	}
	for _, e := range entries {
		require.NoError(t, analyticsManager.NewEntry(e.input, e.suggestion, e.actual))
	}

	total, err := analyticsManager.GetTotalCount()
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	accepted, err := analyticsManager.GetAcceptanceCount()
	require.NoError(t, err)
	assert.Equal(t, int64(3), accepted)

	top, err := analyticsManager.GetTopAccepted(10)
	require.NoError(t, err)
	assert.Equal(t, []HintCount{
		{Hint: "start-server", Count: 2},
		{Hint: "stop-server", Count: 1},
	}, top)

	top, err = analyticsManager.GetTopAccepted(1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	activity, err := analyticsManager.GetDailyActivity()
	require.NoError(t, err)
	require.Len(t, activity, 1)
	for _, count := range activity {
		assert.Equal(t, int64(5), count)
	}
}

func TestRecentEntriesLimit(t *testing.T) {
	analyticsManager := newTestManager(t)
	for _, line := range []string{"one", "two", "three"} {
		require.NoError(t, analyticsManager.NewEntry(line, "", line))
	}

	entries, err := analyticsManager.GetRecentEntries(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "three", entries[0].Actual)
	assert.Equal(t, "two", entries[1].Actual)
}

func TestDeleteAndReset(t *testing.T) {
	analyticsManager := newTestManager(t)
	require.NoError(t, analyticsManager.NewEntry("a", "", "a"))
	require.NoError(t, analyticsManager.NewEntry("b", "", "b"))

	entries, err := analyticsManager.GetRecentEntries(10)
	require.NoError(t, err)
	require.NoError(t, analyticsManager.DeleteEntry(entries[0].ID))
	assert.ErrorIs(t, analyticsManager.DeleteEntry(entries[0].ID), ErrEntryNotFound)

	count, err := analyticsManager.GetTotalCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, analyticsManager.ResetAnalytics())
	count, err = analyticsManager.GetTotalCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWriteSummary(t *testing.T) {
	t.Run("empty database", func(t *testing.T) {
		analyticsManager := newTestManager(t)

		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, analyticsManager, 5))
		assert.Contains(t, buf.String(), "Lines committed:      0")
		assert.Contains(t, buf.String(), "Suggestions accepted: 0 (0%)")
		assert.NotContains(t, buf.String(), "Most accepted hints")
	})

	t.Run("with entries", func(t *testing.T) {
		analyticsManager := newTestManager(t)
		require.NoError(t, analyticsManager.NewEntry("sta", "start-server", "start-server"))
		require.NoError(t, analyticsManager.NewEntry("x", "", "x"))

		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, analyticsManager, 5))

		out := buf.String()
		assert.Contains(t, out, "Lines committed:      2")
		assert.Contains(t, out, "Suggestions accepted: 1 (50%)")
		assert.Contains(t, out, "1st start-server")
		assert.Contains(t, out, "Recent activity:")
		assert.Contains(t, out, "Last line committed")
	})
}
