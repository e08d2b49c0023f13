package adapthttp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"scoreboard/internal/app"
	"scoreboard/internal/domain"
	"scoreboard/internal/metrics"
)

type scoreRequest struct {
	Username  json.RawMessage `json:"username"`
	Score     json.RawMessage `json:"score"`
	Highscore json.RawMessage `json:"highscore"`
	Token     json.RawMessage `json:"token"`
}

func (req scoreRequest) submission() app.Submission {
	score := jsonScalar(req.Score)
	if score == "" {
		score = jsonScalar(req.Highscore)
	}
	return app.Submission{
		Username: jsonString(req.Username),
		Score:    score,
		Token:    jsonString(req.Token),
	}
}

func readSubmission(r *http.Request) (app.Submission, error) {
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return app.Submission{}, err
		}
		score := r.PostForm.Get("score")
		if score == "" {
			score = r.PostForm.Get("highscore")
		}
		return app.Submission{
			Username: r.PostForm.Get("username"),
			Score:    score,
			Token:    r.PostForm.Get("token"),
		}, nil
	}
	var body scoreRequest
	if err := parseJSON(r, &body); err != nil {
		return app.Submission{}, err
	}
	return body.submission(), nil
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sub, err := readSubmission(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err = s.scores.Submit(r.Context(), s.clientAddress(r), sub)
	s.countSubmission(err)
	switch {
	case err == nil:
		writeText(w, http.StatusOK, "Score added!")
	case errors.Is(err, domain.ErrInvalidParameters):
		writeText(w, http.StatusForbidden, "Invalid parameters")
	case errors.Is(err, domain.ErrNoSession):
		writeText(w, http.StatusForbidden, "No matching session")
	case errors.Is(err, domain.ErrAuthorizationFailed):
		writeText(w, http.StatusForbidden, "Authorization failed!")
	case errors.Is(err, domain.ErrValidation):
		writeText(w, http.StatusBadRequest, "Invalid score")
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := s.scores.Scoreboard(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) countSubmission(err error) {
	if s.metrics == nil {
		return
	}
	result := metrics.ResultError
	switch {
	case err == nil:
		result = metrics.ResultAccepted
	case errors.Is(err, domain.ErrInvalidParameters):
		result = metrics.ResultInvalid
	case errors.Is(err, domain.ErrNoSession):
		result = metrics.ResultNoSession
	case errors.Is(err, domain.ErrAuthorizationFailed):
		result = metrics.ResultUnauthorized
	case errors.Is(err, domain.ErrValidation):
		result = metrics.ResultBadScore
	}
	s.metrics.ScoresSubmitted.WithLabelValues(result).Inc()
}

// internalError logs err in full and sends the client a generic 500.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.LogAttrs(r.Context(), slog.LevelError, "request failed",
		slog.String("path", r.URL.Path),
		slog.String("request_id", requestIDFrom(r.Context())),
		slog.Bool("storage", domain.IsStorage(err)),
		slog.String("error", err.Error()),
	)
	if s.metrics != nil {
		s.metrics.StorageErrors.Inc()
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
}
