package recorder

import (
	"time"

	"KrakenCandles/internal/model"

	"github.com/google/uuid"
)

// Snapshot holds the persisted summary of one report. Candles themselves
// are never stored.
type Snapshot struct {
	ID         string
	Source     model.Source
	Pair       string
	Interval   int
	Start      time.Time
	End        time.Time
	Count      int
	Mean       float64
	Median     float64
	High       float64
	Low        float64
	RecordedAt time.Time
}

// NewSnapshot builds a snapshot of report with a fresh ID.
func NewSnapshot(source model.Source, report *model.Report) *Snapshot {
	return &Snapshot{
		ID:         uuid.NewString(),
		Source:     source,
		Pair:       report.Query.Pair,
		Interval:   report.Query.Interval,
		Start:      report.Query.Start,
		End:        report.Query.End,
		Count:      report.Summary.Count,
		Mean:       report.Summary.Mean,
		Median:     report.Summary.Median,
		High:       report.Summary.High,
		Low:        report.Summary.Low,
		RecordedAt: time.Now().UTC(),
	}
}

// Recorder persists report summaries for later review.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	// Recent returns up to limit snapshots, newest first.
	Recent(limit int) ([]Snapshot, error)
	Close() error
}
