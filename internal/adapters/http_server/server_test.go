package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	server "appstore_reviews/internal/adapters/http_server"
	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/app"
)

func TestHealthz(t *testing.T) {
	srv := server.New(app.NewProgress())

	rr := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status: %d", rr.Code)
	}
}

func TestStatusSnapshot(t *testing.T) {
	p := app.NewProgress()
	p.Begin(12)
	p.PageDone(10)
	p.PageDone(10)
	p.PageFailed()

	srv := server.New(p)
	rr := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rr, httptest.NewRequest("GET", "/status", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status status: %d", rr.Code)
	}
	var s app.ProgressSnapshot
	if err := json.NewDecoder(rr.Body).Decode(&s); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if s.TotalPages != 12 || s.ScannedPages != 2 || s.FailedPages != 1 || s.Reviews != 20 {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
	if s.Finished {
		t.Fatalf("scan should not be finished yet")
	}
}

func TestMetricsMount(t *testing.T) {
	srv := server.New(app.NewProgress())
	srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))

	rr := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "appstore_pages_scanned_total") {
		t.Fatalf("expected appstore_pages_scanned_total in exposition")
	}
}
