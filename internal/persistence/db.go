// Package persistence provides a SQLite-backed episode metrics recorder.
// It is adapted from the teacher's internal/persistence (mini-world):
// same sqlx + modernc.org/sqlite connection shape, same migrate-on-open
// pattern, same StatsRow-style snapshot table. It is off the step hot
// path entirely — SPEC_FULL.md's ambient-stack table is explicit that
// this is "written to from the dev server's background goroutine only —
// never from step()" — so every write here is best-effort and never
// touches internal/sim.Environment directly; callers hand it plain values.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for episode metrics.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
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
	CREATE TABLE IF NOT EXISTS episodes (
		run_id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		final_step INTEGER NOT NULL,
		truncated INTEGER NOT NULL,
		num_agents_alive INTEGER NOT NULL,
		mean_reward REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS team_snapshots (
		run_id TEXT NOT NULL,
		team_id INTEGER NOT NULL,
		step INTEGER NOT NULL,
		food INTEGER NOT NULL,
		wood INTEGER NOT NULL,
		stone INTEGER NOT NULL,
		gold INTEGER NOT NULL,
		water INTEGER NOT NULL,
		territory_tiles INTEGER NOT NULL,
		alive_agents INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_team_snapshots_run ON team_snapshots(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// EpisodeRow is a per-episode summary row (SPEC_FULL.md §6.4 ambient stack:
// "recording per-episode summary rows for offline inspection").
type EpisodeRow struct {
	RunID          string  `db:"run_id"`
	Seed           int64   `db:"seed"`
	StartedAt      string  `db:"started_at"`
	FinalStep      int64   `db:"final_step"`
	Truncated      bool    `db:"truncated"`
	NumAgentsAlive int     `db:"num_agents_alive"`
	MeanReward     float64 `db:"mean_reward"`
}

// NewRunID mints a fresh episode run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// SaveEpisode records one episode's final summary (full replace by run_id).
func (db *DB) SaveEpisode(row EpisodeRow) error {
	truncated := 0
	if row.Truncated {
		truncated = 1
	}
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO episodes
		(run_id, seed, started_at, final_step, truncated, num_agents_alive, mean_reward)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.RunID, row.Seed, row.StartedAt, row.FinalStep, truncated,
		row.NumAgentsAlive, row.MeanReward,
	)
	if err != nil {
		slog.Error("save episode failed", "runID", row.RunID, "error", err)
		return fmt.Errorf("save episode: %w", err)
	}
	return nil
}

// TeamSnapshotRow is one team's resource/territory state at a given step,
// sampled periodically by the dev server's background recorder goroutine.
type TeamSnapshotRow struct {
	RunID          string `db:"run_id"`
	TeamID         int    `db:"team_id"`
	Step           int64  `db:"step"`
	Food           int32  `db:"food"`
	Wood           int32  `db:"wood"`
	Stone          int32  `db:"stone"`
	Gold           int32  `db:"gold"`
	Water          int32  `db:"water"`
	TerritoryTiles int32  `db:"territory_tiles"`
	AliveAgents    int    `db:"alive_agents"`
}

// SaveTeamSnapshot appends one team-state sample.
func (db *DB) SaveTeamSnapshot(row TeamSnapshotRow) error {
	_, err := db.conn.Exec(
		`INSERT INTO team_snapshots
		(run_id, team_id, step, food, wood, stone, gold, water, territory_tiles, alive_agents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.RunID, row.TeamID, row.Step, row.Food, row.Wood, row.Stone,
		row.Gold, row.Water, row.TerritoryTiles, row.AliveAgents,
	)
	return err
}

// RecentEpisodes returns the most recently started episodes.
func (db *DB) RecentEpisodes(limit int) ([]EpisodeRow, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []EpisodeRow
	err := db.conn.Select(&rows,
		"SELECT * FROM episodes ORDER BY started_at DESC LIMIT ?", limit)
	return rows, err
}

// TeamHistory returns a team's snapshot history for one episode, ordered by step.
func (db *DB) TeamHistory(runID string, teamID int) ([]TeamSnapshotRow, error) {
	var rows []TeamSnapshotRow
	err := db.conn.Select(&rows,
		"SELECT * FROM team_snapshots WHERE run_id = ? AND team_id = ? ORDER BY step ASC",
		runID, teamID)
	return rows, err
}
