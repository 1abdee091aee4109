package collector

import (
	"context"
	"fmt"
	"time"

	"KrakenCandles/internal/calculator"
	"KrakenCandles/internal/model"

	"github.com/rs/zerolog/log"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series *model.OHLCSeries
	Err    error
	Calls  []model.Query
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchOHLC(_ context.Context, pair string, start, end time.Time, interval int) (*model.OHLCSeries, error) {
	m.Calls = append(m.Calls, model.Query{Pair: pair, Start: start, End: end, Interval: interval})
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Series != nil {
		return m.Series, nil
	}
	return generateMockSeries(m.Price, AsUTC(start), AsUTC(end), interval), nil
}

func generateMockSeries(basePrice float64, start, end time.Time, interval int) *model.OHLCSeries {
	series := model.NewOHLCSeries()
	if interval <= 0 {
		interval = 1440
	}
	step := time.Duration(interval) * time.Minute
	for i, t := 0, start; !t.After(end); i, t = i+1, t.Add(step) {
		p := basePrice * (1 + float64(i%10-5)*0.001)
		series.Append(model.Candle{
			Time:  t,
			Open:  p * 0.999,
			High:  p * 1.005,
			Low:   p * 0.995,
			Close: p,
		})
	}
	return series
}

// ChartRenderer turns a series into an embeddable HTML fragment.
type ChartRenderer interface {
	Render(title string, series *model.OHLCSeries) (string, error)
}

// Collector orchestrates data fetching, statistics and chart rendering.
type Collector struct {
	Fetcher  Fetcher
	Renderer ChartRenderer
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, renderer ChartRenderer) *Collector {
	return &Collector{Fetcher: fetcher, Renderer: renderer}
}

// Heading is the page heading for a pair.
func Heading(pair string) string {
	return fmt.Sprintf("Kraken OHLC Data for pair %s", pair)
}

// Collect fetches the candles for q and builds a report. A series without
// candles is a valid result with a zero Summary.
func (c *Collector) Collect(ctx context.Context, q model.Query) (*model.Report, error) {
	series, err := c.Fetcher.FetchOHLC(ctx, q.Pair, q.Start, q.End, q.Interval)
	if err != nil {
		return nil, fmt.Errorf("fetch ohlc: %w", err)
	}

	report := &model.Report{
		Query:     q,
		Series:    series,
		Summary:   calculator.Summarize(series),
		FetchedAt: time.Now().UTC(),
	}
	if series.Len() == 0 {
		log.Warn().Str("pair", q.Pair).Str("source", c.Fetcher.Name()).Msg("no candles returned")
	}

	if c.Renderer != nil {
		chart, err := c.Renderer.Render(Heading(q.Pair), series)
		if err != nil {
			return nil, fmt.Errorf("render chart: %w", err)
		}
		report.ChartHTML = chart
	}
	return report, nil
}
