package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(3)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, send("10.0.0.1:1000"))
	}
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1000"))

	// Limits are tracked per client IP, not globally.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000"))
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "not-host-port"
	assert.Equal(t, "not-host-port", clientIP(req))

	req.RemoteAddr = "192.0.2.7:4242"
	assert.Equal(t, "192.0.2.7", clientIP(req))
}
