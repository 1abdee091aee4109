package report

import (
	"fmt"
	"strings"
	"time"

	"KrakenCandles/internal/model"
	"KrakenCandles/internal/recorder"

	"github.com/dustin/go-humanize"
)

const dateLayout = "2006-01-02"

// Price formats a price with thousands separators and two decimals.
func Price(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// FormatReport renders a report as plain text for terminals and logs.
func FormatReport(r *model.Report) string {
	var b strings.Builder
	q := r.Query

	b.WriteString(fmt.Sprintf("Kraken OHLC Data for pair %s\n", q.Pair))
	b.WriteString(fmt.Sprintf("%s → %s | interval %dm\n\n", q.Start.Format(dateLayout), q.End.Format(dateLayout), q.Interval))

	if r.Series.Len() == 0 {
		b.WriteString("no candles in range\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%-17s %14s %14s %14s %14s\n", "time", "open", "high", "low", "close"))
	for _, c := range r.Series.Candles() {
		b.WriteString(fmt.Sprintf("%-17s %14s %14s %14s %14s\n",
			c.Time.UTC().Format("2006-01-02 15:04"), Price(c.Open), Price(c.High), Price(c.Low), Price(c.Close)))
	}

	s := r.Summary
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("candles: %d\n", s.Count))
	b.WriteString(fmt.Sprintf("mean:    %s\n", Price(s.Mean)))
	b.WriteString(fmt.Sprintf("median:  %s\n", Price(s.Median)))
	b.WriteString(fmt.Sprintf("range:   %s - %s (last close at %.0f%%)\n", Price(s.Low), Price(s.High), s.Position*100))
	return b.String()
}

// FormatHistory lists recorded snapshots, newest first.
func FormatHistory(snaps []recorder.Snapshot, now time.Time) string {
	if len(snaps) == 0 {
		return "no snapshots recorded\n"
	}
	var b strings.Builder
	for _, s := range snaps {
		b.WriteString(fmt.Sprintf("%-10s %-9s %s %s→%s %4dm  n=%-4d mean=%s median=%s  (%s)\n",
			s.Pair, s.Source, s.ID[:8],
			s.Start.Format(dateLayout), s.End.Format(dateLayout), s.Interval,
			s.Count, Price(s.Mean), Price(s.Median),
			humanize.RelTime(s.RecordedAt, now, "ago", "from now")))
	}
	return b.String()
}
