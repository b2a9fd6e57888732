package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/logging"
	"github.com/preston-bernstein/nba-league-service/internal/metrics"
	"github.com/preston-bernstein/nba-league-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndLogs(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		if logging.FromContext(r.Context(), nil) == nil {
			t.Fatalf("expected request-scoped logger in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodGet, "/teams/Bulls", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	testutil.AssertLogged(t, buf, "request complete", "status_code=418", "path=/teams/Bulls")
	if got := rec.Operation("http").Calls; got != 0 {
		t.Fatalf("expected no league operations recorded, got %d", got)
	}
}

func TestLoggingMiddlewareKeepsValidRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/standings", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if seen != "abc-123" || rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected incoming id to pass through, got ctx=%s header=%s", seen, rr.Header().Get("X-Request-ID"))
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenInvalid(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/standings?x=1", nil)
	req.Header.Set("X-Request-ID", "not valid!")
	rr := testutil.ServeRequest(LoggingMiddleware(nil, nil, next), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	got := rr.Header().Get("X-Request-ID")
	if got == "" || got == "not valid!" {
		t.Fatalf("expected generated X-Request-ID header, got %q", got)
	}
}

func TestLoggingMiddlewareUsesForwardedFor(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/standings", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertLogged(t, buf, "client_ip=198.51.100.1")
}

func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	if w.status != 0 {
		t.Fatalf("expected zero status before write, got %d", w.status)
	}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted {
		t.Fatalf("expected status set to 202, got %d", w.status)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/health", want: "/health"},
		{in: "/teams", want: "/teams"},
		{in: "/teams/Bulls", want: "/teams/{name}"},
		{in: "/teams/Bulls/matches", want: "/teams/{name}/matches"},
		{in: "/teams/Bulls/players", want: "/teams/{name}/players"},
		{in: "/players/Michael%20Jordan", want: "/players/{name}"},
		{in: "/players/Jordan/statistics", want: "/players/{name}/statistics"},
		{in: "/players/Jordan/transfer", want: "/players/{name}/transfer"},
		{in: "/consistency/repair", want: "/consistency/repair"},
		{in: "/leaders?metric=points", want: "/leaders"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/standings", nil)
		handler.ServeHTTP(rr, req)
	}
}
