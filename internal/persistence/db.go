// Package persistence provides SQLite-based recording of simulation runs:
// run metadata and per-tick occupancy statistics. The space state itself is
// never stored; a run is reproducible from its seed.
package persistence

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for run recording.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		fill REAL NOT NULL,
		cutoff REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tick_stats (
		run_id INTEGER NOT NULL,
		tick INTEGER NOT NULL,
		agents INTEGER NOT NULL,
		empty_positions INTEGER NOT NULL,
		density REAL NOT NULL,
		moves INTEGER NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE INDEX IF NOT EXISTS idx_tick_stats_run ON tick_stats(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run describes one recorded simulation run.
type Run struct {
	ID        int64   `db:"id"`
	StartedAt string  `db:"started_at"`
	Seed      int64   `db:"seed"`
	Width     int     `db:"width"`
	Height    int     `db:"height"`
	Fill      float64 `db:"fill"`
	Cutoff    float64 `db:"cutoff"`
}

// TickStats is one tick's occupancy summary.
type TickStats struct {
	RunID          int64   `db:"run_id"`
	Tick           uint64  `db:"tick"`
	Agents         int     `db:"agents"`
	EmptyPositions int     `db:"empty_positions"`
	Density        float64 `db:"density"`
	Moves          int     `db:"moves"`
}

// BeginRun records run metadata and returns the run id.
func (db *DB) BeginRun(seed int64, width, height int, fill, cutoff float64) (int64, error) {
	res, err := db.conn.Exec(
		`INSERT INTO runs (started_at, seed, width, height, fill, cutoff) VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), seed, width, height, fill, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	return id, nil
}

// RecordTick stores one tick's statistics.
func (db *DB) RecordTick(s TickStats) error {
	_, err := db.conn.Exec(
		`INSERT INTO tick_stats (run_id, tick, agents, empty_positions, density, moves)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Tick, s.Agents, s.EmptyPositions, s.Density, s.Moves,
	)
	if err != nil {
		return fmt.Errorf("insert tick %d: %w", s.Tick, err)
	}
	return nil
}

// LoadTickStats returns all recorded ticks for a run, in tick order.
func (db *DB) LoadTickStats(runID int64) ([]TickStats, error) {
	var out []TickStats
	err := db.conn.Select(&out,
		`SELECT run_id, tick, agents, empty_positions, density, moves
		 FROM tick_stats WHERE run_id = ? ORDER BY tick`, runID)
	if err != nil {
		return nil, fmt.Errorf("load tick stats: %w", err)
	}
	return out, nil
}

// LoadRun returns a recorded run by id.
func (db *DB) LoadRun(id int64) (Run, error) {
	var r Run
	err := db.conn.Get(&r, `SELECT id, started_at, seed, width, height, fill, cutoff FROM runs WHERE id = ?`, id)
	if err != nil {
		return Run{}, fmt.Errorf("load run %d: %w", id, err)
	}
	return r, nil
}
