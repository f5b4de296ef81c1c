// Package storage provides SQLite-based persistence for progress records
// and per-session results. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vkotlar/parlor/internal/progress"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ResultEntry is one finished session: the level it was played at, the
// points it earned, and how it ended ("won" or "lost").
type ResultEntry struct {
	ID        int64
	GameID    string
	Level     int
	Score     int
	Outcome   string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS game_progress (
			game_id TEXT PRIMARY KEY,
			current_level INTEGER NOT NULL,
			highest_level INTEGER NOT NULL,
			total_score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(game_id, score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements progress.Persister. It reads the persisted snapshot and
// reports the schema version it was written with; the progress store
// decides whether to discard a mismatched snapshot.
func (s *Store) Load() (progress.Snapshot, error) {
	snap := progress.Snapshot{
		SchemaVersion: progress.SchemaVersion,
		Records:       make(map[string]progress.Record),
	}

	var raw string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		// Fresh database: report the current version with no records.
		return snap, nil
	case err != nil:
		return snap, fmt.Errorf("storage: cannot read schema version: %w", err)
	}
	version, err := strconv.Atoi(raw)
	if err != nil {
		return snap, fmt.Errorf("storage: malformed schema version %q: %w", raw, err)
	}
	snap.SchemaVersion = version
	if version != progress.SchemaVersion {
		// Snapshot is a cache, not a source of truth; let the caller discard it.
		return snap, nil
	}

	rows, err := s.db.Query(
		"SELECT game_id, current_level, highest_level, total_score FROM game_progress",
	)
	if err != nil {
		return snap, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var rec progress.Record
		if err := rows.Scan(&id, &rec.CurrentLevel, &rec.HighestLevel, &rec.TotalScore); err != nil {
			return snap, fmt.Errorf("storage: cannot scan progress row: %w", err)
		}
		snap.Records[id] = rec
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return snap, nil
}

// Save implements progress.Persister. The whole snapshot is written in one
// transaction so a crash never leaves records from two generations mixed.
func (s *Store) Save(snap progress.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO meta (key, value) VALUES ('schema_version', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		strconv.Itoa(snap.SchemaVersion),
	); err != nil {
		return fmt.Errorf("storage: cannot write schema version: %w", err)
	}

	for id, rec := range snap.Records {
		if _, err := tx.Exec(
			`INSERT INTO game_progress (game_id, current_level, highest_level, total_score, updated_at)
			 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(game_id) DO UPDATE SET
				current_level = excluded.current_level,
				highest_level = excluded.highest_level,
				total_score = excluded.total_score,
				updated_at = CURRENT_TIMESTAMP`,
			id, rec.CurrentLevel, rec.HighestLevel, rec.TotalScore,
		); err != nil {
			return fmt.Errorf("storage: cannot save progress for %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit snapshot: %w", err)
	}
	return nil
}

// RecordResult appends a finished session to the results history.
// Returns the ID of the inserted record.
func (s *Store) RecordResult(gameID string, level, score int, outcome string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO results (game_id, level, score, outcome) VALUES (?, ?, ?, ?)",
		gameID, level, score, outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentResults retrieves the most recent finished sessions for a game.
func (s *Store) RecentResults(gameID string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level, score, outcome, created_at
		 FROM results
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Level, &e.Score, &e.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScore returns the highest single-session score for the given game.
// Returns 0 if no results exist.
func (s *Store) BestScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// parseTimestamp handles the driver returning either time.Time or the
// SQLite textual datetime.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Ensure Store implements the progress persistence port.
var _ progress.Persister = (*Store)(nil)
