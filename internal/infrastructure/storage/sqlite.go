package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"svw.info/cheryl/internal/domain"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLite stores puzzles in a single table, one JSON body per row.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database file at path.
func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create data dir: %w", err)
		}
	}
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: pragma %q: %w", p, err)
		}
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS puzzles (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_puzzles_created ON puzzles(created_at);
	`)
	return err
}

func (s *SQLite) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("storage: encode puzzle: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO puzzles (id, name, body, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			body = excluded.body,
			created_at = excluded.created_at`,
		p.ID, p.Name, string(body), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("storage: save %s: %w", p.ID, err)
	}
	return nil
}

// Load returns the puzzle stored under id, or an error matching
// os.ErrNotExist.
func (s *SQLite) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM puzzles WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: puzzle %s: %w", id, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load %s: %w", id, err)
	}
	var out domain.Puzzle
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", id, err)
	}
	return &out, nil
}

func (s *SQLite) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT body FROM puzzles ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	defer rows.Close()

	var out []domain.PuzzleMeta
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		var p domain.Puzzle
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			continue
		}
		out = append(out, p.Meta())
	}
	return out, rows.Err()
}
