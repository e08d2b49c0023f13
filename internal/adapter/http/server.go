// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"io"
	"log/slog"
	"net/http"

	"scoreboard/internal/app"
	"scoreboard/internal/metrics"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	sessions   *app.SessionService
	scores     *app.ScoreService
	metrics    *metrics.Registry
	logger     *slog.Logger
	trustProxy bool
	corsOrigin string
}

// New creates a Server wired to the given application services. A nil
// metrics registry disables /metrics and request metrics.
func New(ss *app.SessionService, sc *app.ScoreService, m *metrics.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{sessions: ss, scores: sc, metrics: m, logger: logger, corsOrigin: "*"}
}

// WithTrustProxy makes the server take the client address from the first
// X-Forwarded-For entry. Only enable behind a proxy that sets the header.
func (s *Server) WithTrustProxy(trust bool) *Server {
	s.trustProxy = trust
	return s
}

// WithCORSOrigin sets the Access-Control-Allow-Origin value. Empty disables
// CORS headers.
func (s *Server) WithCORSOrigin(origin string) *Server {
	s.corsOrigin = origin
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/", s.handleOnlineCount)
	mux.HandleFunc("/scoreboard", s.handleScoreboard)
	mux.HandleFunc("/scores", s.handleScoreboard)

	mux.HandleFunc("/session", s.handleSession)
	mux.HandleFunc("/score", s.handleScore)

	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	return s.loggingMiddleware(withCORS(s.corsOrigin, withNoCache(mux)))
}
