package scheduler

import (
	"context"
	"fmt"
	"time"

	"KrakenCandles/internal/collector"
	"KrakenCandles/internal/model"
	"KrakenCandles/internal/recorder"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler records a summary of the configured pair on a cron schedule.
type Scheduler struct {
	Cron         *cron.Cron
	Collector    *collector.Collector
	Recorder     recorder.Recorder
	Ctx          context.Context
	Pair         string
	Interval     int
	LookbackDays int
	Now          func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, pair string, interval, lookbackDays int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
		Collector:    col,
		Recorder:     rec,
		Ctx:          ctx,
		Pair:         pair,
		Interval:     interval,
		LookbackDays: lookbackDays,
		Now:          time.Now,
	}
}

// Register registers the snapshot task.
func (s *Scheduler) Register(snapshotCron string) error {
	if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the snapshot task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() error {
	return s.snapshot()
}

// Window returns the query for the trailing lookback ending at today's UTC midnight.
func (s *Scheduler) Window() model.Query {
	now := s.Now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return model.Query{
		Pair:     s.Pair,
		Start:    end.AddDate(0, 0, -s.LookbackDays),
		End:      end,
		Interval: s.Interval,
	}
}

func (s *Scheduler) snapshotTask() {
	if err := s.snapshot(); err != nil {
		log.Error().Err(err).Str("pair", s.Pair).Msg("snapshot task failed")
	}
}

func (s *Scheduler) snapshot() error {
	q := s.Window()
	log.Info().Str("pair", q.Pair).Time("start", q.Start).Time("end", q.End).Msg("running snapshot task")

	report, err := s.Collector.Collect(s.Ctx, q)
	if err != nil {
		return fmt.Errorf("snapshot collect: %w", err)
	}
	if err := s.Recorder.RecordSnapshot(recorder.NewSnapshot(model.SourceScheduled, report)); err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	log.Info().
		Str("pair", q.Pair).
		Int("candles", report.Summary.Count).
		Float64("mean", report.Summary.Mean).
		Float64("median", report.Summary.Median).
		Msg("snapshot recorded")
	return nil
}
