package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterPerClient(t *testing.T) {
	t.Parallel()

	l := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"), "burst exhausted")
	require.True(t, l.Allow("10.0.0.2"), "other clients have their own bucket")

	now = now.Add(time.Minute)
	require.True(t, l.Allow("10.0.0.1"), "one token refilled after a minute")

	now = now.Add(5 * time.Minute)
	l.Sweep()
	require.Empty(t, l.clients)
}

func TestRateLimiterHandler(t *testing.T) {
	t.Parallel()

	l := NewRateLimiter(1, 1)
	h := l.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/catalogo/exportar.pdf", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimiterDisabled(t *testing.T) {
	t.Parallel()

	l := NewRateLimiter(0, 0)
	for i := 0; i < 50; i++ {
		require.True(t, l.Allow("10.0.0.1"))
	}
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
