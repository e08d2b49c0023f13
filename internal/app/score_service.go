package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"scoreboard/internal/domain"

	"golang.org/x/net/html"
)

// Submission is an unauthenticated score submission as received from a
// client. Score holds the raw textual form of the value.
type Submission struct {
	Username string
	Score    string
	Token    string
}

// ScoreService encapsulates score submission and the scoreboard listing.
type ScoreService struct {
	repo     domain.ScoreRepository
	sessions *SessionService
	now      func() time.Time
}

// NewScoreService creates a ScoreService that authorizes submissions against
// sessions and persists them in repo.
func NewScoreService(repo domain.ScoreRepository, sessions *SessionService) *ScoreService {
	return &ScoreService{repo: repo, sessions: sessions, now: time.Now}
}

// Submit authorizes sub against the session held by address and stores it.
// Checks run in order: required fields, session existence, token match,
// score format. The session lookups and the insert are not atomic; a
// concurrent refresh for the same address may land in between.
func (s *ScoreService) Submit(ctx context.Context, address string, sub Submission) (*domain.ScoreRecord, error) {
	if sub.Username == "" || strings.TrimSpace(sub.Score) == "" || sub.Token == "" {
		return nil, domain.ErrInvalidParameters
	}

	ok, err := s.sessions.HasSession(ctx, address)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoSession
	}

	ok, err = s.sessions.IsAuthorized(ctx, address, sub.Token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAuthorizationFailed
	}

	score, err := ParseScore(sub.Score)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.Insert(ctx, html.EscapeString(sub.Username), score, s.now())
	if err != nil {
		return nil, domain.WrapStorage("insert score", err)
	}
	return rec, nil
}

// Scoreboard returns all records, highest score first.
func (s *ScoreService) Scoreboard(ctx context.Context) ([]domain.ScoreRecord, error) {
	items, err := s.repo.ListDescending(ctx)
	if err != nil {
		return nil, domain.WrapStorage("list scores", err)
	}
	return items, nil
}

// ParseScore parses a base-10 integer score. Surrounding whitespace is
// ignored; anything else that is not an integer is rejected.
func ParseScore(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrValidation, raw)
	}
	return n, nil
}
