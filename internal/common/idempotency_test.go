package common

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestIdemMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	idem := Idem{R: client, TTL: time.Minute}
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/carts", nil)
	req.Header.Set("Idempotency-Key", "abc123")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req.Clone(req.Context()))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req.Clone(req.Context()))
	require.Equal(t, http.StatusConflict, rr.Code)

	// expired keys may be reused
	mr.FastForward(2 * time.Minute)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req.Clone(req.Context()))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestIdemMiddlewarePassthroughWithoutKey(t *testing.T) {
	idem := Idem{}
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/carts", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}
