package model

import "time"

// Query describes one OHLC retrieval.
type Query struct {
	Pair     string    `json:"pair"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Interval int       `json:"interval"`
}

// Summary holds statistics over a series. Mean and Median are taken over
// the pooled open/high/low/close values.
type Summary struct {
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	LastClose float64 `json:"last_close"`
	// Position of LastClose within [Low, High], 0.0~1.0.
	Position float64 `json:"position"`
}

// Report is everything a page render needs.
type Report struct {
	Query     Query
	Series    *OHLCSeries
	Summary   Summary
	ChartHTML string
	FetchedAt time.Time
}
