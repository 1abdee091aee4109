package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"KrakenCandles/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	title string
	count int
	err   error
}

func (s *stubRenderer) Render(title string, series *model.OHLCSeries) (string, error) {
	s.title = title
	s.count = series.Len()
	return "<div>echarts</div>", s.err
}

func TestCollect_BuildsReport(t *testing.T) {
	series := model.NewOHLCSeries()
	series.Append(model.Candle{Time: day29, Open: 48895.7, High: 49653.9, Low: 47800.0, Close: 48787.7})
	fetcher := &MockFetcher{Series: series}
	renderer := &stubRenderer{}

	q := model.Query{Pair: "XXBTZUSD", Start: day29, End: day29, Interval: 1440}
	report, err := NewCollector(fetcher, renderer).Collect(context.Background(), q)
	require.NoError(t, err)

	require.Len(t, fetcher.Calls, 1)
	assert.Equal(t, q, fetcher.Calls[0])
	assert.Equal(t, "Kraken OHLC Data for pair XXBTZUSD", renderer.title)
	assert.Equal(t, 1, renderer.count)
	assert.Equal(t, "<div>echarts</div>", report.ChartHTML)
	assert.Equal(t, 48784.325, report.Summary.Mean)
	assert.Equal(t, 48841.7, report.Summary.Median)
	assert.False(t, report.FetchedAt.IsZero())
}

func TestCollect_EmptySeriesIsValid(t *testing.T) {
	fetcher := &MockFetcher{Series: model.NewOHLCSeries()}
	report, err := NewCollector(fetcher, &stubRenderer{}).Collect(context.Background(),
		model.Query{Pair: "NOPE", Start: day29, End: day30, Interval: 1440})
	require.NoError(t, err)
	assert.Equal(t, model.Summary{}, report.Summary)
}

func TestCollect_PropagatesFetchFailure(t *testing.T) {
	fetcher := &MockFetcher{Err: ErrUpstreamUnavailable}
	_, err := NewCollector(fetcher, &stubRenderer{}).Collect(context.Background(),
		model.Query{Pair: "XXBTZUSD", Start: day29, End: day30, Interval: 1440})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestCollect_PropagatesRenderFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewCollector(&MockFetcher{Price: 100}, &stubRenderer{err: boom}).Collect(context.Background(),
		model.Query{Pair: "XXBTZUSD", Start: day29, End: day30, Interval: 1440})
	assert.ErrorIs(t, err, boom)
}

func TestMockFetcher_GeneratesInclusiveRange(t *testing.T) {
	m := &MockFetcher{Price: 50000}
	series, err := m.FetchOHLC(context.Background(), "XXBTZUSD", day29, day29.AddDate(0, 0, 2), 1440)
	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())
	for i := 1; i < series.Len(); i++ {
		assert.Equal(t, 24*time.Hour, series.Dates[i].Sub(series.Dates[i-1]))
	}
}
