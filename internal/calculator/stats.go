package calculator

import (
	"errors"
	"sort"

	"KrakenCandles/internal/model"

	"github.com/shopspring/decimal"
)

// ErrNoData is returned when a statistic is requested over no values.
var ErrNoData = errors.New("no data")

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoData
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))).InexactFloat64(), nil
}

// Median returns the middle value of values, or the mean of the two middle
// values when the count is even. values is not modified.
func Median(values []float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrNoData
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	lo := decimal.NewFromFloat(sorted[n/2-1])
	hi := decimal.NewFromFloat(sorted[n/2])
	return lo.Add(hi).Div(decimal.NewFromInt(2)).InexactFloat64(), nil
}

// Summarize computes pooled mean/median and the price range of series.
// An empty series yields a zero Summary.
func Summarize(series *model.OHLCSeries) model.Summary {
	if series.Len() == 0 {
		return model.Summary{}
	}
	pooled := series.Pooled()
	// non-empty input, errors are impossible here
	mean, _ := Mean(pooled)
	median, _ := Median(pooled)
	high, low, _ := PriceRange(series)
	last := series.Closes[series.Len()-1]
	return model.Summary{
		Count:     series.Len(),
		Mean:      mean,
		Median:    median,
		High:      high,
		Low:       low,
		LastClose: last,
		Position:  RangePosition(last, high, low),
	}
}
