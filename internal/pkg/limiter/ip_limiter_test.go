package limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("GetLimiter reuses the bucket per address", func(t *testing.T) {
		l := NewIPRateLimiter(ctx, rate.Limit(1), 1)

		if l.GetLimiter("10.0.0.1") != l.GetLimiter("10.0.0.1") {
			t.Error("expected the same limiter for one address")
		}
		if l.GetLimiter("10.0.0.1") == l.GetLimiter("10.0.0.2") {
			t.Error("expected separate limiters per address")
		}
		if l.Len() != 2 {
			t.Errorf("expected 2 tracked addresses, got %d", l.Len())
		}
	})

	t.Run("Middleware answers 429 past the burst", func(t *testing.T) {
		l := NewIPRateLimiter(ctx, rate.Limit(0.001), 2)
		handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		codes := make([]int, 3)
		for i := range codes {
			r := httptest.NewRequest(http.MethodPost, "/login", nil)
			r.RemoteAddr = "192.0.2.7:5555"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			codes[i] = w.Code
		}

		if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent {
			t.Errorf("first requests should pass, got %v", codes)
		}
		if codes[2] != http.StatusTooManyRequests {
			t.Errorf("third request should be limited, got %d", codes[2])
		}

		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.RemoteAddr = "192.0.2.8:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusNoContent {
			t.Errorf("other address should pass, got %d", w.Code)
		}
	})

	t.Run("sweep drops refilled buckets", func(t *testing.T) {
		l := NewIPRateLimiter(ctx, rate.Limit(1), 1)
		l.GetLimiter("idle")
		l.GetLimiter("busy").Allow()

		removed := l.sweep(time.Now())
		if removed != 1 || l.Len() != 1 {
			t.Errorf("expected one removal, got %d (remaining %d)", removed, l.Len())
		}
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"192.0.2.1", "192.0.2.1"},
		{"[2001:db8::1]:80", "2001:db8::1"},
		{"", "unknown_ip"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if got := clientIP(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
