package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/meowgic/internal/catfact"
	"github.com/agbru/meowgic/internal/logging"
)

// TestNewMetrics tests the Metrics constructor.
func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if m.handler == nil {
		t.Error("Metrics.handler should be initialized")
	}
}

// TestNewMetrics_Independent verifies that two instances do not share a
// registry.
func TestNewMetrics_Independent(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.FetchStarted()
	a.FetchFinished(catfact.OutcomeFailure, time.Millisecond)

	body := scrape(t, b)
	if !strings.Contains(body, `meowgic_fetch_total{outcome="failure"} 0`) {
		t.Errorf("second registry saw the first one's fetch:\n%s", body)
	}
}

// TestMetrics_Observer tests the catfact.Observer implementation.
func TestMetrics_Observer(t *testing.T) {
	m := NewMetrics()

	m.FetchStarted()
	if body := scrape(t, m); !strings.Contains(body, "meowgic_fetch_in_flight 1") {
		t.Errorf("in-flight gauge not raised:\n%s", body)
	}

	m.FetchFinished(catfact.OutcomeSuccess, 120*time.Millisecond)
	m.FetchStarted()
	m.FetchFinished(catfact.OutcomeFailure, 2*time.Second)

	body := scrape(t, m)
	tests := []string{
		`meowgic_fetch_total{outcome="success"} 1`,
		`meowgic_fetch_total{outcome="failure"} 1`,
		"meowgic_fetch_in_flight 0",
		"meowgic_fetch_duration_seconds_count 2",
	}
	for _, want := range tests {
		t.Run(want, func(t *testing.T) {
			if !strings.Contains(body, want) {
				t.Errorf("metrics output should contain %q", want)
			}
		})
	}
}

// TestMetrics_WritePrometheus tests the Prometheus metrics endpoint.
func TestMetrics_WritePrometheus(t *testing.T) {
	m := NewMetrics()

	m.IncrementActiveRequests()
	defer m.DecrementActiveRequests()

	body := scrape(t, m)

	t.Run("Contains active requests metric", func(t *testing.T) {
		if !strings.Contains(body, "meowgic_active_requests 1") {
			t.Error("metrics output should contain meowgic_active_requests")
		}
	})

	t.Run("Contains Go runtime metrics", func(t *testing.T) {
		if !strings.Contains(body, "go_goroutines") {
			t.Error("metrics output should contain Go runtime metrics")
		}
	})
}

// TestServer_metricsMiddleware tests the metrics tracking middleware.
func TestServer_metricsMiddleware(t *testing.T) {
	t.Run("Next handler is called", func(t *testing.T) {
		s := &Server{metrics: NewMetrics()}

		nextCalled := false
		next := func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusOK)
		}

		rec := httptest.NewRecorder()
		s.metricsMiddleware(next)(rec, httptest.NewRequest("GET", "/test", http.NoBody))

		if !nextCalled {
			t.Error("next handler was not called")
		}
	})

	t.Run("Requests are counted and released", func(t *testing.T) {
		s := &Server{metrics: NewMetrics()}
		next := func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}

		rec := httptest.NewRecorder()
		s.metricsMiddleware(next)(rec, httptest.NewRequest("GET", "/test", http.NoBody))

		body := scrape(t, s.metrics)
		if !strings.Contains(body, `meowgic_requests_total{path="/test"} 1`) {
			t.Errorf("request not counted:\n%s", body)
		}
		if !strings.Contains(body, "meowgic_active_requests 0") {
			t.Errorf("active gauge not released:\n%s", body)
		}
	})
}

// TestServer_handleMetrics tests the /metrics endpoint handler.
func TestServer_handleMetrics(t *testing.T) {
	t.Run("GET returns metrics", func(t *testing.T) {
		s := &Server{metrics: NewMetrics()}

		rec := httptest.NewRecorder()
		s.handleMetrics(rec, httptest.NewRequest("GET", "/metrics", http.NoBody))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), "meowgic_") {
			t.Error("response should contain meowgic metrics")
		}
	})

	for _, method := range []string{"POST", "PUT", "DELETE"} {
		t.Run(method+" returns method not allowed", func(t *testing.T) {
			s := &Server{metrics: NewMetrics(), logger: newTestLogger()}

			rec := httptest.NewRecorder()
			s.handleMetrics(rec, httptest.NewRequest(method, "/metrics", http.NoBody))

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
			}
			if got := rec.Header().Get("Allow"); got != "GET, HEAD" {
				t.Errorf("Allow = %q", got)
			}
		})
	}
}

// TestServer_Serve runs the server on a loopback listener and shuts it down
// through the context.
func TestServer_Serve(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(ln.Addr().String(), NewMetrics(), newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok\n" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest("GET", "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	return rec.Body.String()
}

// testLogger is a minimal logger for testing that implements logging.Logger.
type testLogger struct{}

func newTestLogger() *testLogger                                  { return &testLogger{} }
func (l *testLogger) Info(_ string, _ ...logging.Field)           {}
func (l *testLogger) Error(_ string, _ error, _ ...logging.Field) {}
func (l *testLogger) Debug(_ string, _ ...logging.Field)          {}
func (l *testLogger) Printf(_ string, _ ...any)                   {}
func (l *testLogger) Println(_ ...any)                            {}
