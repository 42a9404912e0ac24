package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newRateLimitApp(r rate.Limit, b int) *fiber.App {
	app := fiber.New()
	app.Use(RateLimit(r, b))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	return app
}

func TestRateLimitAllowsFirst(t *testing.T) {
	app := newRateLimitApp(100, 5)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimitBurst(t *testing.T) {
	// Burst of 3 with near-zero refill, so the bucket exhausts quickly
	app := newRateLimitApp(0.001, 3)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d should be allowed", i+1)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitConcurrentRequests(t *testing.T) {
	// Parallel requests from the same IP update lastSeen concurrently;
	// run with -race to verify the bookkeeping stays data-race free.
	app := newRateLimitApp(1000, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}()
	}
	wg.Wait()
}

func TestIPLimiterLastSeen(t *testing.T) {
	il := &ipLimiter{limiter: rate.NewLimiter(1, 1)}
	assert.Zero(t, il.lastSeen.Load())

	now := time.Now().UnixNano()
	il.lastSeen.Store(now)
	assert.Equal(t, now, il.lastSeen.Load())
}
