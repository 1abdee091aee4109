package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"KrakenCandles/internal/model"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the history endpoint read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ohlc_snapshots (
			id           TEXT PRIMARY KEY,
			recorded_at  INTEGER NOT NULL,
			source       TEXT NOT NULL,
			pair         TEXT NOT NULL,
			interval_min INTEGER NOT NULL,
			start_ts     INTEGER NOT NULL,
			end_ts       INTEGER NOT NULL,
			candle_count INTEGER NOT NULL,
			mean         REAL,
			median       REAL,
			high         REAL,
			low          REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_recorded ON ohlc_snapshots(recorded_at)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_pair ON ohlc_snapshots(pair, recorded_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO ohlc_snapshots
		(id, recorded_at, source, pair, interval_min, start_ts, end_ts,
		 candle_count, mean, median, high, low)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.ID, snap.RecordedAt.UnixNano(), string(snap.Source), snap.Pair, snap.Interval,
		snap.Start.Unix(), snap.End.Unix(),
		snap.Count, snap.Mean, snap.Median, snap.High, snap.Low,
	)
	return err
}

func (r *SQLiteRecorder) Recent(limit int) ([]Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT
		id, recorded_at, source, pair, interval_min, start_ts, end_ts,
		candle_count, mean, median, high, low
		FROM ohlc_snapshots ORDER BY recorded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := make([]Snapshot, 0, limit)
	for rows.Next() {
		var (
			s                      Snapshot
			source                 string
			recordedAt, start, end int64
		)
		if err := rows.Scan(&s.ID, &recordedAt, &source, &s.Pair, &s.Interval, &start, &end,
			&s.Count, &s.Mean, &s.Median, &s.High, &s.Low); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.Source = model.Source(source)
		s.RecordedAt = time.Unix(0, recordedAt).UTC()
		s.Start = time.Unix(start, 0).UTC()
		s.End = time.Unix(end, 0).UTC()
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
