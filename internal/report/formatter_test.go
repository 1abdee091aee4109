package report

import (
	"testing"
	"time"

	"KrakenCandles/internal/calculator"
	"KrakenCandles/internal/model"
	"KrakenCandles/internal/recorder"

	"github.com/stretchr/testify/assert"
)

func TestFormatReport(t *testing.T) {
	day := time.Date(2021, 8, 29, 0, 0, 0, 0, time.UTC)
	series := model.NewOHLCSeries()
	series.Append(model.Candle{Time: day, Open: 48895.7, High: 49653.9, Low: 47800.0, Close: 48787.7})

	out := FormatReport(&model.Report{
		Query:   model.Query{Pair: "XXBTZUSD", Start: day, End: day, Interval: 1440},
		Series:  series,
		Summary: calculator.Summarize(series),
	})

	assert.Contains(t, out, "Kraken OHLC Data for pair XXBTZUSD")
	assert.Contains(t, out, "2021-08-29 00:00")
	assert.Contains(t, out, "48,895.7")
	assert.Contains(t, out, "mean:    48,784.3")
	assert.Contains(t, out, "median:  48,841.7")
}

func TestFormatReport_Empty(t *testing.T) {
	out := FormatReport(&model.Report{Query: model.Query{Pair: "NOPE"}, Series: model.NewOHLCSeries()})
	assert.Contains(t, out, "no candles in range")
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2021, 9, 1, 12, 0, 0, 0, time.UTC)
	snaps := []recorder.Snapshot{{
		ID:         "0f8fad5b-d9cb-469f-a165-70867728950e",
		Source:     model.SourceScheduled,
		Pair:       "XXBTZUSD",
		Interval:   1440,
		Start:      time.Date(2021, 8, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2021, 9, 1, 0, 0, 0, 0, time.UTC),
		Count:      32,
		Mean:       47000.5,
		Median:     47100,
		RecordedAt: now.Add(-2 * time.Hour),
	}}
	out := FormatHistory(snaps, now)
	assert.Contains(t, out, "XXBTZUSD")
	assert.Contains(t, out, "0f8fad5b")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "47,000.5")

	assert.Equal(t, "no snapshots recorded\n", FormatHistory(nil, now))
}
