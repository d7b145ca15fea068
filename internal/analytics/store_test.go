package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := openTestStore(t)

	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))
	assert.NotContains(t, h, "203")
}

func TestRecordAndStats(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Record(ctx, "10.0.0.1", PageView, "/"))
	require.NoError(t, s.Record(ctx, "10.0.0.1", PageView, "/"))
	require.NoError(t, s.Record(ctx, "10.0.0.2", PageView, "/"))
	require.NoError(t, s.Record(ctx, "10.0.0.1", FilterTag, "React"))
	require.NoError(t, s.Record(ctx, "10.0.0.2", FilterTag, "React"))
	require.NoError(t, s.Record(ctx, "10.0.0.2", FilterTag, "Swift"))
	require.NoError(t, s.Record(ctx, "10.0.0.2", ModalOpen, "6"))
	require.NoError(t, s.Record(ctx, "10.0.0.2", ContactSent, ""))
	require.NoError(t, s.Record(ctx, "10.0.0.3", ContactFailed, ""))
	require.NoError(t, s.Record(ctx, "10.0.0.3", ImageFailed, "/images/a.png"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalVisitors)
	assert.EqualValues(t, 2, stats.UniqueVisitors)
	assert.EqualValues(t, 3, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 1, stats.ContactsSent)
	assert.EqualValues(t, 1, stats.ContactsFailed)
	assert.Equal(t, []Count{{Subject: "React", Count: 2}, {Subject: "Swift", Count: 1}}, stats.TopTags)
	assert.Equal(t, []Count{{Subject: "6", Count: 1}}, stats.TopProjects)
	assert.Equal(t, []Count{{Subject: "/images/a.png", Count: 1}}, stats.FailedImages)
	require.Len(t, stats.RecentEvents, 10)
	assert.Equal(t, ImageFailed, stats.RecentEvents[0].Kind)
}

func TestRecordRejectsEmptyKind(t *testing.T) {
	assert.Error(t, openTestStore(t).Record(context.Background(), "10.0.0.1", "", ""))
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now.Add(-Retention - time.Hour) }
	require.NoError(t, s.Record(ctx, "10.0.0.1", PageView, "/"))
	s.now = func() time.Time { return now }
	require.NoError(t, s.Record(ctx, "10.0.0.1", PageView, "/"))

	n, err := s.Cleanup(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.True(t, recent[0].Timestamp.Equal(now))
}
