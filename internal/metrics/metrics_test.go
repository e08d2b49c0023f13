package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.registry == nil {
		t.Fatal("registry field is nil")
	}
	if r.SessionsCreated == nil || r.ScoresSubmitted == nil || r.RequestsTotal == nil || r.RequestDuration == nil || r.StorageErrors == nil {
		t.Fatal("metric field is nil")
	}
}

func TestCounters(t *testing.T) {
	r := NewRegistry()
	r.SessionsCreated.Inc()
	r.SessionsCreated.Inc()
	r.ScoresSubmitted.WithLabelValues(ResultAccepted).Inc()
	r.ScoresSubmitted.WithLabelValues(ResultUnauthorized).Inc()
	r.ScoresSubmitted.WithLabelValues(ResultUnauthorized).Inc()

	if got := testutil.ToFloat64(r.SessionsCreated); got != 2 {
		t.Errorf("sessions_created_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.ScoresSubmitted.WithLabelValues(ResultUnauthorized)); got != 2 {
		t.Errorf("unauthorized submissions = %v, want 2", got)
	}
}

func TestObserveRequest(t *testing.T) {
	r := NewRegistry()
	r.ObserveRequest(http.MethodPost, "/score", http.StatusForbidden, 15*time.Millisecond)

	if got := testutil.ToFloat64(r.RequestsTotal.WithLabelValues("POST", "/score", "403")); got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(r.RequestDuration); n != 1 {
		t.Errorf("expected 1 duration series, got %d", n)
	}

	var nilReg *Registry
	nilReg.ObserveRequest("GET", "/", 200, time.Millisecond)
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RegisterSessionGauge(func() float64 { return 3 })
	r.SessionsCreated.Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"scoreboard_sessions_created_total 1",
		"scoreboard_sessions_registered 3",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
