package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleetstock/internal/pkg/cache"
	"fleetstock/internal/pkg/logger"
	"fleetstock/internal/pkg/middleware"
)

// memoryCache é um cache.Client em memória para testes.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]int
	err    error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]int{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	return "", cache.ErrCacheMiss
}

func (c *memoryCache) GetInt(ctx context.Context, key string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	v, ok := c.values[key]
	if !ok {
		return 0, cache.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value.(int)
	return nil
}

func (c *memoryCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key]++
	return int64(c.values[key]), nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	h := middleware.RateLimiter(newMemoryCache(), 3, time.Minute, logger.NewNop())(okHandler())

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/parts/low-stock", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429}, codes)
}

func TestRateLimiter_SeparatesClients(t *testing.T) {
	h := middleware.RateLimiter(newMemoryCache(), 1, time.Minute, logger.NewNop())(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_FailsOpenWhenCacheDown(t *testing.T) {
	c := newMemoryCache()
	c.err = errors.New("connection refused")
	h := middleware.RateLimiter(c, 1, time.Minute, logger.NewNop())(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger_PassesStatusThrough(t *testing.T) {
	h := middleware.RequestLogger(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
