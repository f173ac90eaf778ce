package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestLimiter(limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := NewRateLimiter(limit, window)
	limiter.now = clock.Now
	return limiter, clock
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows burst up to limit then blocks", func(t *testing.T) {
		limiter, _ := newTestLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("client"), "request %d", i+1)
		}
		assert.False(t, limiter.Allow("client"))
		assert.Equal(t, 0, limiter.Remaining("client"))
	})

	t.Run("separate buckets per key", func(t *testing.T) {
		limiter, _ := newTestLimiter(1, time.Minute)

		assert.True(t, limiter.Allow("a"))
		assert.False(t, limiter.Allow("a"))
		assert.True(t, limiter.Allow("b"))
	})

	t.Run("refills over the window", func(t *testing.T) {
		limiter, clock := newTestLimiter(2, time.Minute)

		assert.True(t, limiter.Allow("c"))
		assert.True(t, limiter.Allow("c"))
		assert.False(t, limiter.Allow("c"))

		clock.Advance(30 * time.Second)
		assert.True(t, limiter.Allow("c"))
		assert.False(t, limiter.Allow("c"))

		clock.Advance(time.Minute)
		assert.Equal(t, 2, limiter.Remaining("c"))
	})

	t.Run("unknown key has full quota", func(t *testing.T) {
		limiter, _ := newTestLimiter(5, time.Minute)
		assert.Equal(t, 5, limiter.Remaining("nobody"))
	})

	t.Run("sweeps idle buckets", func(t *testing.T) {
		limiter, clock := newTestLimiter(1, time.Second)

		limiter.Allow("idle")
		clock.Advance(10 * time.Second)
		limiter.Allow("active")

		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		assert.NotContains(t, limiter.visitors, "idle")
		assert.Contains(t, limiter.visitors, "active")
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter, _ := newTestLimiter(2, time.Minute)
	router := gin.New()
	router.Use(RateLimit(limiter))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, send().Code)

	blocked := send()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Contains(t, blocked.Body.String(), "ERR_RATE_LIMITED")
}

func TestClientKey_PrefersUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.2:80"

	assert.Equal(t, "ip:10.0.0.2", clientKey(c))

	c.Set("user_id", "u1")
	assert.Equal(t, "user:u1", clientKey(c))
}
