package calculator

import (
	"errors"
	"testing"
	"time"

	"KrakenCandles/internal/model"
)

func singleDay() *model.OHLCSeries {
	s := model.NewOHLCSeries()
	s.Append(model.Candle{
		Time:  time.Date(2021, 8, 29, 0, 0, 0, 0, time.UTC),
		Open:  48895.7,
		High:  49653.9,
		Low:   47800.0,
		Close: 48787.7,
	})
	return s
}

func TestMean(t *testing.T) {
	got, err := Mean([]float64{48895.7, 49653.9, 47800.0, 48787.7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 48784.325 {
		t.Errorf("expected 48784.325, got %v", got)
	}
}

func TestMedian_EvenAndOdd(t *testing.T) {
	even := []float64{49653.9, 47800.0, 48895.7, 48787.7}
	got, err := Median(even)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 48841.7 {
		t.Errorf("even: expected 48841.7, got %v", got)
	}
	if even[0] != 49653.9 {
		t.Error("median must not reorder its input")
	}

	got, err = Median([]float64{3, 10, 1, 6, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Errorf("odd: expected 3, got %v", got)
	}
}

func TestStats_Empty(t *testing.T) {
	if _, err := Mean(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("mean: expected ErrNoData, got %v", err)
	}
	if _, err := Median([]float64{}); !errors.Is(err, ErrNoData) {
		t.Errorf("median: expected ErrNoData, got %v", err)
	}
	if _, _, err := PriceRange(model.NewOHLCSeries()); !errors.Is(err, ErrNoData) {
		t.Errorf("range: expected ErrNoData, got %v", err)
	}
}

func TestSummarize_SingleDay(t *testing.T) {
	sum := Summarize(singleDay())
	if sum.Count != 1 {
		t.Fatalf("expected 1 candle, got %d", sum.Count)
	}
	if sum.Mean != 48784.325 || sum.Median != 48841.7 {
		t.Errorf("unexpected mean/median: %v / %v", sum.Mean, sum.Median)
	}
	if sum.High != 49653.9 || sum.Low != 47800.0 {
		t.Errorf("unexpected range: %v - %v", sum.Low, sum.High)
	}
	if sum.LastClose != 48787.7 {
		t.Errorf("expected last close 48787.7, got %v", sum.LastClose)
	}
}

func TestSummarize_EmptyIsZero(t *testing.T) {
	if sum := Summarize(model.NewOHLCSeries()); sum != (model.Summary{}) {
		t.Errorf("expected zero summary, got %+v", sum)
	}
	if sum := Summarize(nil); sum != (model.Summary{}) {
		t.Errorf("expected zero summary for nil series, got %+v", sum)
	}
}
