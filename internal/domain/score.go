package domain

import (
	"context"
	"time"
)

// ScoreRecord is one accepted score submission. Username is stored
// HTML-escaped.
type ScoreRecord struct {
	ID        int64     `json:"-"`
	Username  string    `json:"username"`
	Score     int64     `json:"score"`
	CreatedAt time.Time `json:"-"`
}

// ScoreRepository is the port for score persistence. Implementations wrap
// backend failures in *StorageError.
type ScoreRepository interface {
	// Insert appends one record and returns it as stored.
	Insert(ctx context.Context, username string, score int64, createdAt time.Time) (*ScoreRecord, error)
	// ListDescending returns every record ordered by score descending, ties
	// broken by insertion order.
	ListDescending(ctx context.Context) ([]ScoreRecord, error)
}
