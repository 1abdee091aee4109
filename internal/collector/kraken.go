package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"KrakenCandles/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	DefaultKrakenBaseURL = "https://api.kraken.com"
	krakenOHLCPath       = "/0/public/OHLC"
)

// KrakenFetcher implements Fetcher using the Kraken public REST API.
type KrakenFetcher struct {
	Client *resty.Client
}

// NewKrakenFetcher creates a fetcher with optional proxy support.
// timeout is the only deadline applied to the upstream call.
func NewKrakenFetcher(baseURL string, timeout time.Duration, proxyURL string) *KrakenFetcher {
	if baseURL == "" {
		baseURL = DefaultKrakenBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "KrakenCandles/1.0",
		})
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &KrakenFetcher{Client: client}
}

func (f *KrakenFetcher) Name() string { return "kraken" }

// FetchOHLC requests candles starting one day before start, because Kraken
// leaves out the bucket that begins exactly at since. Candles later than
// end are dropped. There is no retry.
func (f *KrakenFetcher) FetchOHLC(ctx context.Context, pair string, start, end time.Time, interval int) (*model.OHLCSeries, error) {
	since := QuerySince(start)
	endTS := AsUTC(end).Unix()

	log.Debug().
		Str("pair", pair).
		Int64("since", since).
		Int("interval", interval).
		Msg("kraken ohlc request")

	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"pair":     pair,
			"since":    strconv.FormatInt(since, 10),
			"interval": strconv.Itoa(interval),
		}).
		Get(krakenOHLCPath)
	if err != nil {
		return nil, fmt.Errorf("kraken fetch: %w: %w", ErrUpstreamUnavailable, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("kraken fetch: %w: status %d, body: %s",
			ErrUpstreamUnavailable, resp.StatusCode(), truncate(resp.String(), 256))
	}

	return parseOHLC(resp.Body(), pair, endTS)
}

// parseOHLC reshapes a Kraken OHLC body into a series. Records are assumed to
// be in ascending time order, so the first record past end stops the scan.
func parseOHLC(body []byte, pair string, end int64) (*model.OHLCSeries, error) {
	var env krakenEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("kraken decode: %w: %w", ErrMalformedResponse, err)
	}
	if env.Result == nil {
		if len(env.Error) > 0 {
			return nil, fmt.Errorf("kraken decode: %w: missing result (%s)",
				ErrMalformedResponse, strings.Join(env.Error, "; "))
		}
		return nil, fmt.Errorf("kraken decode: %w: missing result", ErrMalformedResponse)
	}
	if len(env.Error) > 0 {
		log.Warn().Strs("errors", env.Error).Str("pair", pair).Msg("kraken returned errors alongside result")
	}

	series := model.NewOHLCSeries()
	raw, ok := env.Result[pair]
	if !ok {
		// unknown pair or nothing in range
		return series, nil
	}

	var records []wireRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("kraken decode %s: %w: %w", pair, ErrMalformedResponse, err)
	}

	var prev int64
	for i, rec := range records {
		if len(rec) < minRecordFields {
			return nil, fmt.Errorf("kraken decode %s: %w: record %d has %d fields",
				pair, ErrMalformedResponse, i, len(rec))
		}
		ts, err := rec.timestamp()
		if err != nil {
			return nil, fmt.Errorf("kraken decode %s: %w: record %d: %w", pair, ErrMalformedResponse, i, err)
		}
		if ts > end {
			break
		}
		if i > 0 && ts <= prev {
			return nil, fmt.Errorf("kraken decode %s: %w: record %d at %d is not after %d",
				pair, ErrMalformedResponse, i, ts, prev)
		}
		prev = ts

		c := model.Candle{Time: time.Unix(ts, 0).UTC()}
		for idx, dst := range []*float64{&c.Open, &c.High, &c.Low, &c.Close} {
			if *dst, err = rec.price(idx + 1); err != nil {
				return nil, fmt.Errorf("kraken decode %s: %w: record %d: %w", pair, ErrMalformedResponse, i, err)
			}
		}
		series.Append(c)
	}
	return series, nil
}

// AsUTC keeps the wall clock of t and reinterprets it as UTC.
func AsUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// QuerySince is the since parameter sent for a requested start date.
func QuerySince(start time.Time) int64 {
	return AsUTC(start).AddDate(0, 0, -1).Unix()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
