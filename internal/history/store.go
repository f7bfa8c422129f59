// Package history persists finished study packs so users can revisit them.
// Backed by SQLite; the pack body is stored as the JSON already produced for
// the wire.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS study_packs (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	original_filename TEXT NOT NULL,
	time_limit_minutes INTEGER NOT NULL,
	total_reading_minutes REAL NOT NULL,
	total_word_count INTEGER NOT NULL,
	pack_json TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_study_packs_user ON study_packs(user_id, created_at DESC);
`

// ErrNotFound is returned when no record matches.
var ErrNotFound = errors.New("history: not found")

// Record is one persisted study pack.
type Record struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	OriginalFilename string    `json:"original_filename"`
	TimeLimitMinutes int       `json:"time_limit_minutes"`
	TotalMinutes     float64   `json:"total_reading_time_minutes"`
	TotalWords       int       `json:"total_word_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// Store wraps the SQLite connection.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save persists a pack and returns the generated record ID.
func (s *Store) Save(ctx context.Context, userID, filename string, timeLimit int, totalMinutes float64, totalWords int, packJSON []byte) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO study_packs
			(id, user_id, original_filename, time_limit_minutes, total_reading_minutes, total_word_count, pack_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, filename, timeLimit, totalMinutes, totalWords, string(packJSON), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("insert study pack: %w", err)
	}
	return id, nil
}

// List returns the user's most recent records, newest first.
func (s *Store) List(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, original_filename, time_limit_minutes, total_reading_minutes, total_word_count, created_at
		FROM study_packs WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list study packs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var created int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.OriginalFilename, &r.TimeLimitMinutes, &r.TotalMinutes, &r.TotalWords, &created); err != nil {
			return nil, fmt.Errorf("scan study pack: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns the stored pack JSON for one record owned by the user.
func (s *Store) Get(ctx context.Context, id, userID string) ([]byte, error) {
	var packJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT pack_json FROM study_packs WHERE id = ? AND user_id = ?`, id, userID).Scan(&packJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get study pack: %w", err)
	}
	return []byte(packJSON), nil
}

// CountSince returns how many packs the user has processed since t. Used
// for monthly quota checks.
func (s *Store) CountSince(ctx context.Context, userID string, t time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM study_packs WHERE user_id = ? AND created_at >= ?`,
		userID, t.Unix()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count study packs: %w", err)
	}
	return n, nil
}
