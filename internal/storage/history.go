package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS bench_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp INTEGER NOT NULL,
	backend TEXT NOT NULL,
	steps INTEGER NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	final_energy REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bench_runs_ts ON bench_runs(timestamp);
`

// HistoryFile is the benchmark database name inside a data directory.
const HistoryFile = "bench.db"

// BenchRecord is one timed run of a backend.
type BenchRecord struct {
	ID          int64
	Timestamp   time.Time
	Backend     string
	Steps       int
	Elapsed     time.Duration
	FinalEnergy float64
}

// StepsPerSec is the throughput of the run.
func (r BenchRecord) StepsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Steps) / r.Elapsed.Seconds()
}

// History keeps benchmark results in SQLite so timings can be compared
// across builds and machines.
type History struct {
	db *sql.DB
}

// OpenHistory opens or creates the database at path. Use ":memory:" in tests.
func OpenHistory(path string) (*History, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive and ordered.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: init history: %w", err)
	}
	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

// Record appends a result and returns its id.
func (h *History) Record(ctx context.Context, r BenchRecord) (int64, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	res, err := h.db.ExecContext(ctx,
		`INSERT INTO bench_runs (timestamp, backend, steps, elapsed_ns, final_energy) VALUES (?, ?, ?, ?, ?)`,
		r.Timestamp.UnixNano(), r.Backend, r.Steps, int64(r.Elapsed), r.FinalEnergy,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: record bench: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit records, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]BenchRecord, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, timestamp, backend, steps, elapsed_ns, final_energy
		 FROM bench_runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: query bench: %w", err)
	}
	defer rows.Close()

	var out []BenchRecord
	for rows.Next() {
		var (
			r       BenchRecord
			ts      int64
			elapsed int64
		)
		if err := rows.Scan(&r.ID, &ts, &r.Backend, &r.Steps, &elapsed, &r.FinalEnergy); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(0, ts)
		r.Elapsed = time.Duration(elapsed)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Best returns the fastest recorded run per backend for the given step count.
func (h *History) Best(ctx context.Context, steps int) (map[string]BenchRecord, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, timestamp, backend, steps, elapsed_ns, final_energy
		 FROM bench_runs b
		 WHERE steps = ? AND elapsed_ns = (
			SELECT MIN(elapsed_ns) FROM bench_runs WHERE backend = b.backend AND steps = b.steps
		 )
		 ORDER BY id`, steps)
	if err != nil {
		return nil, fmt.Errorf("storage: query best: %w", err)
	}
	defer rows.Close()

	best := make(map[string]BenchRecord)
	for rows.Next() {
		var (
			r       BenchRecord
			ts      int64
			elapsed int64
		)
		if err := rows.Scan(&r.ID, &ts, &r.Backend, &r.Steps, &elapsed, &r.FinalEnergy); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(0, ts)
		r.Elapsed = time.Duration(elapsed)
		if _, ok := best[r.Backend]; !ok {
			best[r.Backend] = r
		}
	}
	return best, rows.Err()
}
