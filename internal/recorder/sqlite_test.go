package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"KrakenCandles/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(pair string) *model.Report {
	return &model.Report{
		Query: model.Query{
			Pair:     pair,
			Start:    time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC),
			Interval: 1440,
		},
		Summary: model.Summary{Count: 32, Mean: 54688.365625, Median: 55568.25, High: 61788.5, Low: 45000.0},
	}
}

func TestSQLiteRecorder_RecordAndRecent(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "data", "candles.db"))
	require.NoError(t, err)
	defer rec.Close()

	first := NewSnapshot(model.SourcePage, testReport("XXBTZUSD"))
	second := NewSnapshot(model.SourceScheduled, testReport("XETHZUSD"))
	second.RecordedAt = first.RecordedAt.Add(time.Second)

	require.NoError(t, rec.RecordSnapshot(first))
	require.NoError(t, rec.RecordSnapshot(second))

	snaps, err := rec.Recent(10)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	assert.Equal(t, second.ID, snaps[0].ID)
	assert.Equal(t, model.SourceScheduled, snaps[0].Source)
	assert.Equal(t, "XETHZUSD", snaps[0].Pair)

	got := snaps[1]
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 1440, got.Interval)
	assert.Equal(t, 32, got.Count)
	assert.Equal(t, 54688.365625, got.Mean)
	assert.Equal(t, 55568.25, got.Median)
	assert.True(t, got.Start.Equal(time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.End.Equal(time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.RecordedAt.Equal(first.RecordedAt))
}

func TestSQLiteRecorder_RecentLimit(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "candles.db"))
	require.NoError(t, err)
	defer rec.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, rec.RecordSnapshot(NewSnapshot(model.SourceCLI, testReport("XXBTZUSD"))))
	}
	snaps, err := rec.Recent(3)
	require.NoError(t, err)
	assert.Len(t, snaps, 3)
}

func TestNoopRecorder(t *testing.T) {
	rec := NewNoopRecorder()
	assert.NoError(t, rec.RecordSnapshot(NewSnapshot(model.SourceAPI, testReport("XXBTZUSD"))))
	snaps, err := rec.Recent(5)
	assert.NoError(t, err)
	assert.Empty(t, snaps)
}
