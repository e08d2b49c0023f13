package postgres

import (
	"context"
	"time"

	"scoreboard/internal/domain"
)

var _ domain.ScoreRepository = (*DB)(nil)

// Insert appends a score record.
func (d *DB) Insert(ctx context.Context, username string, score int64, createdAt time.Time) (*domain.ScoreRecord, error) {
	rec := domain.ScoreRecord{Username: username, Score: score, CreatedAt: createdAt.UTC()}
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO scores(username, score, created_at) VALUES($1, $2, $3) RETURNING id;",
		username, score, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return nil, domain.WrapStorage("insert score", err)
	}
	return &rec, nil
}

// ListDescending returns all records, highest score first, ties by insertion.
func (d *DB) ListDescending(ctx context.Context) ([]domain.ScoreRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, username, score, created_at FROM scores ORDER BY score DESC, id ASC;")
	if err != nil {
		return nil, domain.WrapStorage("list scores", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.ScoreRecord, 0)
	for rows.Next() {
		var r domain.ScoreRecord
		if err := rows.Scan(&r.ID, &r.Username, &r.Score, &r.CreatedAt); err != nil {
			return nil, domain.WrapStorage("scan score", err)
		}
		out = append(out, r)
	}
	return out, domain.WrapStorage("list scores", rows.Err())
}
