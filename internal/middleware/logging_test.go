package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/seisan-app/seisan/internal/metrics"
)

func TestLoggingCountsByRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Logging(mux)

	counter := metrics.RequestsTotal.WithLabelValues("GET", "GET /things/{id}", "200")
	before := testutil.ToFloat64(counter)

	// Distinct path parameters must land on the same series.
	for _, id := range []string{"a1", "b2", "c3"} {
		req := httptest.NewRequest(http.MethodGet, "/things/"+id, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("route-pattern series grew by %v, want 3", got)
	}

	t.Run("unmatched requests share one series", func(t *testing.T) {
		counter := metrics.RequestsTotal.WithLabelValues("GET", "unrouted", "404")
		before := testutil.ToFloat64(counter)

		req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got := testutil.ToFloat64(counter) - before; got != 1 {
			t.Errorf("unrouted series grew by %v, want 1", got)
		}
	})
}

func TestLoggingFields(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	Logging(mux).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	line := buf.String()
	for _, want := range []string{"Request completed", "method=GET", "path=/ping", "status=200"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %q: %s", want, line)
		}
	}
	if strings.Contains(line, "member_id") {
		t.Errorf("log line carries an identity field the middleware cannot know: %s", line)
	}
}
