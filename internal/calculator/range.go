package calculator

import (
	"math"

	"KrakenCandles/internal/model"
)

// PriceRange scans the whole series and returns the highest high and lowest low.
func PriceRange(series *model.OHLCSeries) (high, low float64, err error) {
	if series.Len() == 0 {
		return 0, 0, ErrNoData
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := range series.Dates {
		if series.Highs[i] > high {
			high = series.Highs[i]
		}
		if series.Lows[i] < low {
			low = series.Lows[i]
		}
	}
	return high, low, nil
}

// RangePosition returns where price sits within [low, high] (0.0~1.0).
func RangePosition(price, high, low float64) float64 {
	if high <= low {
		return 0.5
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
