package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
}

func hit(h http.Handler, remote string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications", nil)
	req.RemoteAddr = remote
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	h := rl.Limit(okHandler())

	assert.Equal(t, http.StatusAccepted, hit(h, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusAccepted, hit(h, "10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:5002"))
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1)
	h := rl.Limit(okHandler())

	assert.Equal(t, http.StatusAccepted, hit(h, "10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:2"))
	assert.Equal(t, http.StatusAccepted, hit(h, "10.0.0.2:1"))
}

func TestRateLimiter_SweepDropsIdleClients(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(rate.Limit(1), 1)
	rl.now = func() time.Time { return now }

	rl.get("a")
	rl.get("b")
	now = now.Add(11 * time.Minute)
	rl.get("b")

	require.Equal(t, 1, rl.Sweep())
	_, ok := rl.limiters["a"]
	assert.False(t, ok)
	_, ok = rl.limiters["b"]
	assert.True(t, ok)
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:54321"
	assert.Equal(t, "192.168.1.1", clientKey(req))
	req.RemoteAddr = "unix"
	assert.Equal(t, "unix", clientKey(req))
}
