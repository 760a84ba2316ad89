package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/diceproof/diceduel/internal/session"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the history database at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps a reader (the history command) from blocking a writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the rounds table. Every stored column is a public artifact
// by the time the round is saved, the commitment key included.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			played_at DATETIME NOT NULL,
			tag TEXT NOT NULL,
			value INTEGER NOT NULL,
			key_hex TEXT NOT NULL,
			guess INTEGER NOT NULL,
			guessed_right INTEGER NOT NULL,
			player_die TEXT NOT NULL,
			opponent_die TEXT NOT NULL,
			player_roll INTEGER NOT NULL,
			opponent_roll INTEGER NOT NULL,
			result TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_played_at ON rounds(played_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveRound inserts one completed round.
func (s *SQLiteDB) SaveRound(rec *session.Record) error {
	_, err := s.db.Exec(`
		INSERT INTO rounds (id, played_at, tag, value, key_hex, guess, guessed_right,
			player_die, opponent_die, player_roll, opponent_roll, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PlayedAt.Format(time.RFC3339Nano), rec.Tag, rec.Value, rec.KeyHex,
		rec.Guess, rec.GuessedRight, rec.PlayerDie, rec.OpponentDie,
		rec.PlayerRoll, rec.OpponentRoll, rec.Result)
	if err != nil {
		return fmt.Errorf("failed to save round %s: %w", rec.ID, err)
	}

	return nil
}

// ListRounds returns the most recent rounds, newest first.
func (s *SQLiteDB) ListRounds(limit int) ([]session.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, played_at, tag, value, key_hex, guess, guessed_right,
			player_die, opponent_die, player_roll, opponent_roll, result
		FROM rounds
		ORDER BY played_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	var records []session.Record
	for rows.Next() {
		var rec session.Record
		var playedAt string
		if err := rows.Scan(&rec.ID, &playedAt, &rec.Tag, &rec.Value, &rec.KeyHex,
			&rec.Guess, &rec.GuessedRight, &rec.PlayerDie, &rec.OpponentDie,
			&rec.PlayerRoll, &rec.OpponentRoll, &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, playedAt); err == nil {
			rec.PlayedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rounds: %w", err)
	}

	return records, nil
}
