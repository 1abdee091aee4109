package collector

import (
	"context"
	"time"

	"KrakenCandles/internal/model"
)

// Fetcher defines the interface for fetching OHLC candles.
type Fetcher interface {
	// FetchOHLC issues a single upstream call and returns the candles of
	// pair from start through end (inclusive), interval minutes wide.
	FetchOHLC(ctx context.Context, pair string, start, end time.Time, interval int) (*model.OHLCSeries, error)
	Name() string
}
