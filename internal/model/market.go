package model

import "time"

// Candle represents a single OHLC bar for one time bucket.
type Candle struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// OHLCSeries holds candles as five index-aligned sequences.
// Index i across all five slices refers to the same candle.
type OHLCSeries struct {
	Dates  []time.Time
	Opens  []float64
	Highs  []float64
	Lows   []float64
	Closes []float64
}

// NewOHLCSeries returns an empty series with non-nil sequences.
func NewOHLCSeries() *OHLCSeries {
	return &OHLCSeries{
		Dates:  []time.Time{},
		Opens:  []float64{},
		Highs:  []float64{},
		Lows:   []float64{},
		Closes: []float64{},
	}
}

// Append adds one candle to all five sequences.
func (s *OHLCSeries) Append(c Candle) {
	s.Dates = append(s.Dates, c.Time)
	s.Opens = append(s.Opens, c.Open)
	s.Highs = append(s.Highs, c.High)
	s.Lows = append(s.Lows, c.Low)
	s.Closes = append(s.Closes, c.Close)
}

// Len returns the number of candles.
func (s *OHLCSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Dates)
}

// Candles zips the sequences back into candle records.
func (s *OHLCSeries) Candles() []Candle {
	out := make([]Candle, s.Len())
	for i := range out {
		out[i] = Candle{
			Time:  s.Dates[i],
			Open:  s.Opens[i],
			High:  s.Highs[i],
			Low:   s.Lows[i],
			Close: s.Closes[i],
		}
	}
	return out
}

// Pooled concatenates opens, highs, lows and closes in that order.
func (s *OHLCSeries) Pooled() []float64 {
	if s == nil {
		return nil
	}
	all := make([]float64, 0, 4*s.Len())
	all = append(all, s.Opens...)
	all = append(all, s.Highs...)
	all = append(all, s.Lows...)
	all = append(all, s.Closes...)
	return all
}
