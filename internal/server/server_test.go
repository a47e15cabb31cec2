package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/progress"
)

func newTestServer() *Server {
	return NewServer("127.0.0.1:0", WithLogger(logging.NewNopLogger()))
}

func TestHealthReportsLatestSnapshot(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	handler := s.Handler()

	get := func() HealthResponse {
		req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var resp HealthResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp
	}

	resp := get()
	if resp.Status != "healthy" || resp.HasSnapshot {
		t.Errorf("unexpected initial health %+v", resp)
	}

	var reporter progress.Reporter = s.Status()
	reporter.OnSnapshot(progress.Snapshot{Iteration: 30, Precision: 1300})

	resp = get()
	if !resp.HasSnapshot || resp.Iteration != 30 || resp.Precision != 1300 {
		t.Errorf("unexpected health after snapshot %+v", resp)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	handler := s.Handler()

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{"picalc_http_requests_total", "go_goroutines"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output should contain %s", want)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	handler := s.Handler()

	for _, path := range []string{"/health", "/metrics"} {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			req := httptest.NewRequest(method, path, http.NoBody)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("%s %s: status = %d, want %d", method, path, rec.Code, http.StatusMethodNotAllowed)
			}
		}
	}
}

func TestSecurityMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("headers are set and next is called", func(t *testing.T) {
		t.Parallel()
		called := false
		handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
			called = true
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

		if !called {
			t.Error("next handler was not called")
		}
		for header, want := range map[string]string{
			"X-Content-Type-Options":      "nosniff",
			"X-Frame-Options":             "DENY",
			"Access-Control-Allow-Origin": "*",
		} {
			if got := rec.Header().Get(header); got != want {
				t.Errorf("%s = %q, want %q", header, got, want)
			}
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		t.Parallel()
		called := false
		handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
			called = true
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodOptions, "/health", http.NoBody))

		if called {
			t.Error("preflight should not reach the handler")
		}
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("CORS disabled", func(t *testing.T) {
		t.Parallel()
		handler := SecurityMiddleware(SecurityConfig{}, func(w http.ResponseWriter, r *http.Request) {})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("CORS headers should be absent")
		}
	})
}

func TestServeShutsDownWithContext(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := newTestServer()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	var resp *http.Response
	for range 50 {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never answered: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestStartReportsListenError(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	s := NewServer(ln.Addr().String())
	if err := s.Start(context.Background()); err == nil {
		t.Error("expected an error for an address already in use")
	}
}
