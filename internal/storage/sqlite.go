// Package storage keeps arcade scores in SQLite through the pure-Go
// modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteTime = "2006-01-02 15:04:05"

// migrations are applied in order; PRAGMA user_version counts how many
// have run. Append only.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);`,

	`ALTER TABLE scores ADD COLUMN player TEXT NOT NULL DEFAULT '';`,
}

// Store is the score database. It is safe for concurrent use; writes are
// serialised on a single connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string // empty for local play
	Score     int
	CreatedAt time.Time
}

// Stats summarises every recorded game of one kind.
type Stats struct {
	Games   int
	Best    int
	Average float64
	Last    time.Time
}

// Open opens or creates the database at path, creating parent directories
// and bringing the schema up to date. A leading ~ is the home directory.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand ~: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("storage: connect: %w", err)
	}

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("storage: schema version: %w", err)
	}
	for v := version; v < len(migrations); v++ {
		if err := s.migrate(v); err != nil {
			return fmt.Errorf("storage: migration %d: %w", v+1, err)
		}
	}
	return nil
}

// migrate runs migrations[v] and records it in one transaction.
func (s *Store) migrate(v int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migrations[v]); err != nil {
		return err
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a local score and returns its row ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return s.SavePlayerScore(gameID, "", score)
}

// SavePlayerScore records a score set by a named player.
func (s *Store) SavePlayerScore(gameID, player string, score int) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score) VALUES (?, ?, ?)",
		gameID, player, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: save score: %w", err)
	}
	return id, nil
}

const selectScores = `SELECT id, game_id, player, score, created_at
	FROM scores
	WHERE game_id = ?
	ORDER BY score DESC, id ASC`

// TopScores returns the best limit scores of a game, highest first. Ties
// keep insertion order. A limit of 0 or less means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(selectScores+" LIMIT ?", gameID, limit)
}

// AllScores returns every score of a game in TopScores order.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores(selectScores, gameID)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e       ScoreEntry
			created any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &created); err != nil {
			return nil, fmt.Errorf("storage: scan score: %w", err)
		}
		e.CreatedAt = parseTime(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: read scores: %w", err)
	}
	return entries, nil
}

// parseTime accepts the driver's time.Time or sqlite's text timestamp.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{sqliteTime, time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// HighScore returns the best score of a game, or 0 without scores.
func (s *Store) HighScore(gameID string) (int, error) {
	st, err := s.Stats(gameID)
	return st.Best, err
}

// Stats aggregates the recorded scores of one game.
// A game with no scores yields the zero Stats.
func (s *Store) Stats(gameID string) (Stats, error) {
	var (
		st   Stats
		best sql.NullInt64
		avg  sql.NullFloat64
		last any
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM scores
		 WHERE game_id = ?`,
		gameID,
	).Scan(&st.Games, &best, &avg, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: stats: %w", err)
	}

	st.Best = int(best.Int64)
	st.Average = avg.Float64
	st.Last = parseTime(last)
	return st, nil
}

// ClearScores deletes all scores of a game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: clear scores: %w", err)
	}
	return nil
}
