package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/3dimaging/personal-website-analytics/model"
)

func getDashboard(t *testing.T, handler *AnalyticsHandler) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.Dashboard(rec, req)
	return rec
}

func TestDashboardEmpty(t *testing.T) {
	handler, _ := setupTestHandler(t)

	rec := getDashboard(t, handler)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Total visits") {
		t.Error("expected dashboard page with totals section")
	}
	if !strings.Contains(body, "const dates = [];") {
		t.Error("expected empty date series for zero visits")
	}
	if !strings.Contains(body, "const counts = [];") {
		t.Error("expected empty count series for zero visits")
	}
}

func TestDashboardSeries(t *testing.T) {
	handler, store := setupTestHandler(t)
	ctx := context.Background()

	visits := []model.Visit{
		{Timestamp: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC), IsMobile: true, ScreenResolution: "390x844"},
		{Timestamp: time.Date(2026, 2, 1, 19, 0, 0, 0, time.UTC), ScreenResolution: "unknown"},
		{Timestamp: time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC), ScreenResolution: "1920x1080"},
	}
	for _, visit := range visits {
		if err := store.InsertVisit(ctx, visit); err != nil {
			t.Fatalf("InsertVisit() error = %v", err)
		}
	}

	rec := getDashboard(t, handler)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `const dates = ["2026-02-01","2026-02-03"];`) {
		t.Errorf("expected ascending distinct dates in chart data, body:\n%s", body)
	}
	if !strings.Contains(body, `const counts = [2,1];`) {
		t.Errorf("expected parallel per-date counts in chart data, body:\n%s", body)
	}
}

func TestDashboardStorageFailure(t *testing.T) {
	handler, store := setupTestHandler(t)
	store.Close()

	rec := getDashboard(t, handler)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
		t.Error("failure response should be plain text, not a rendered page")
	}
}

func TestRoot(t *testing.T) {
	handler, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.Root(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	status := decodeStatus(t, rec)
	if status.Status != "ok" {
		t.Errorf("status field = %q, want %q", status.Status, "ok")
	}
	if status.Message == "" {
		t.Error("expected a message in the liveness response")
	}
}

func TestHealthCheck(t *testing.T) {
	handler, store := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	store.Close()
	rec = httptest.NewRecorder()
	handler.HealthCheck(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status after close = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
