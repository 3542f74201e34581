package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	allowed := []string{"http://localhost:8000", "https://3dimaging.github.io"}
	wrapped := CORS(allowed)(okHandler)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
		wantCode   int
	}{
		{"allowed origin", http.MethodPost, "https://3dimaging.github.io", "https://3dimaging.github.io", http.StatusOK},
		{"local dev origin", http.MethodGet, "http://localhost:8000", "http://localhost:8000", http.StatusOK},
		{"unknown origin", http.MethodPost, "https://evil.example.com", "", http.StatusOK},
		{"no origin header", http.MethodGet, "", "", http.StatusOK},
		{"preflight allowed", http.MethodOptions, "http://localhost:8000", "http://localhost:8000", http.StatusNoContent},
		{"preflight denied", http.MethodOptions, "https://evil.example.com", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/track-visit", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	wrapped := limiter.Limit(okHandler)

	// Same client across fresh connections: the port must not matter.
	ports := []string{"1234", "5678", "9012"}
	codes := make([]int, 0, len(ports))
	for _, port := range ports {
		req := httptest.NewRequest(http.MethodPost, "/api/track-visit", nil)
		req.RemoteAddr = "10.0.0.1:" + port
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("requests within burst should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("request beyond burst = %d, want %d", codes[2], http.StatusTooManyRequests)
	}

	// A different client keeps its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/api/track-visit", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("independent client = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	wrapped := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
