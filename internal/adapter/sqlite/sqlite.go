// Package sqlite implements the score repository on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"scoreboard/internal/domain"

	_ "modernc.org/sqlite"
)

// Store persists score records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ domain.ScoreRepository = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the SQLite file at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	s := &Store{sqlDB: sqlDB}
	if err := s.migrate(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS scores (id INTEGER PRIMARY KEY AUTOINCREMENT, username TEXT NOT NULL, score INTEGER NOT NULL, created_at INTEGER NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC, id ASC);",
	}
	for _, stmt := range stmts {
		if _, err := s.sqlDB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Insert appends a score record.
func (s *Store) Insert(ctx context.Context, username string, score int64, createdAt time.Time) (*domain.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	createdAt = createdAt.UTC()
	res, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO scores (username, score, created_at) VALUES (?, ?, ?)",
		username, score, toMillis(createdAt),
	)
	if err != nil {
		return nil, domain.WrapStorage("insert score", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, domain.WrapStorage("insert score", err)
	}
	return &domain.ScoreRecord{
		ID:        id,
		Username:  username,
		Score:     score,
		CreatedAt: fromMillis(toMillis(createdAt)),
	}, nil
}

// ListDescending returns all records, highest score first, ties by insertion.
func (s *Store) ListDescending(ctx context.Context) ([]domain.ScoreRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, username, score, created_at FROM scores ORDER BY score DESC, id ASC")
	if err != nil {
		return nil, domain.WrapStorage("list scores", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.ScoreRecord, 0)
	for rows.Next() {
		var (
			r       domain.ScoreRecord
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Username, &r.Score, &created); err != nil {
			return nil, domain.WrapStorage("scan score", err)
		}
		r.CreatedAt = fromMillis(created)
		out = append(out, r)
	}
	return out, domain.WrapStorage("list scores", rows.Err())
}
