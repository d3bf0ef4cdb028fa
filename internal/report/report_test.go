package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubeboost/internal/history"
)

func TestBuildAndLatest(t *testing.T) {
	dir := t.TempDir()
	b, err := New(dir)
	require.NoError(t, err)

	now := time.Now()
	visits := []history.Visit{
		{
			ChannelName:    "Some Creator",
			VideoTitle:     "Latest Upload",
			Outcome:        "completed",
			Supported:      true,
			WatchedSeconds: 420,
			Liked:          true,
			Commented:      true,
			StartedAt:      now,
			EndedAt:        now.Add(7 * time.Minute),
		},
		{
			ChannelName: "Broken Channel",
			Outcome:     "errored",
			Err:         "navigation failed",
			StartedAt:   now.Add(-time.Hour),
			EndedAt:     now.Add(-time.Hour),
		},
	}
	stats := []history.ChannelStats{
		{ChannelName: "Some Creator", Visits: 1, Supported: 1, TotalWatchedSeconds: 420, LastVisit: now},
	}

	r, err := b.Build(visits, stats)
	require.NoError(t, err)
	assert.Equal(t, 2, r.VisitCount)

	html, err := os.ReadFile(r.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Some Creator")
	assert.Contains(t, string(html), "navigation failed")
	assert.Contains(t, string(html), "1 of 2 visits supported")
	assert.Contains(t, string(html), "7m00s")

	latest, err := Latest(dir)
	require.NoError(t, err)
	assert.Equal(t, r.FilePath, latest)
}

func TestBuildEmpty(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = b.Build(nil, nil)
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	visits := []history.Visit{
		{ChannelName: "A", Outcome: "completed", Supported: true, WatchedSeconds: 90},
		{ChannelName: "B", Outcome: "errored", Err: "page context lost"},
	}

	s := Summary(visits)
	assert.True(t, strings.HasPrefix(s, "Support run: 1/2 channels supported"))
	assert.Contains(t, s, "1. A - completed (1m30s watched)")
	assert.Contains(t, s, "[page context lost]")
}
