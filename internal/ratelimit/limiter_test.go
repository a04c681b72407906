package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repogauge/repogauge/internal/monitoring"
)

func newFallbackLimiter(config Config) *RateLimiter {
	redisClient := &RedisClient{enabled: false}
	return NewRateLimiter(redisClient, config, monitoring.NewMetrics())
}

func TestFallbackLimiterBlocksAfterBurst(t *testing.T) {
	limiter := newFallbackLimiter(Config{
		IPLimitPerMin:      3,
		AnalyzeLimitPerMin: 3,
		BurstMultiplier:    2,
	})

	ctx := context.Background()

	// Burst capacity is max(limit*multiplier, 5).
	allowed := 0
	for i := 0; i < 20; i++ {
		result, err := limiter.AllowIP(ctx, "203.0.113.7")
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		}
	}

	assert.GreaterOrEqual(t, allowed, 3)
	assert.Less(t, allowed, 20)

	result, err := limiter.AllowIP(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
}

func TestFallbackLimiterIsolatesIPs(t *testing.T) {
	limiter := newFallbackLimiter(Config{
		IPLimitPerMin:      2,
		AnalyzeLimitPerMin: 2,
		BurstMultiplier:    1,
	})

	ctx := context.Background()

	// Exhaust one IP's budget.
	for i := 0; i < 10; i++ {
		_, err := limiter.AllowIP(ctx, "198.51.100.1")
		require.NoError(t, err)
	}

	result, err := limiter.AllowIP(ctx, "198.51.100.2")
	require.NoError(t, err)
	assert.True(t, result.Allowed, "fresh IP should not be affected")
}

func TestAnalyzeLimitIsIndependentOfIPLimit(t *testing.T) {
	limiter := newFallbackLimiter(DefaultConfig())

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.AllowIP(ctx, "192.0.2.1")
		require.NoError(t, err)
	}

	result, err := limiter.AllowAnalyze(ctx, "192.0.2.1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, DefaultConfig().AnalyzeLimitPerMin, result.Limit)
}

func TestGetStatsFallbackMode(t *testing.T) {
	limiter := newFallbackLimiter(DefaultConfig())

	_, err := limiter.AllowIP(context.Background(), "192.0.2.9")
	require.NoError(t, err)

	stats := limiter.GetStats()
	assert.Equal(t, false, stats["redis_enabled"])
	assert.Equal(t, 1, stats["fallback_limiters"])
}

func TestIPRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := newFallbackLimiter(Config{
		IPLimitPerMin:      1,
		AnalyzeLimitPerMin: 1,
		BurstMultiplier:    1,
	})

	router := gin.New()
	router.Use(limiter.IPRateLimitMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	blocked := 0
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.50:4321"
		router.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
		if w.Code == http.StatusTooManyRequests {
			blocked++
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}

	assert.Greater(t, blocked, 0, "sustained traffic should hit the limit")
}

func TestRateLimiterConcurrency(t *testing.T) {
	limiter := newFallbackLimiter(DefaultConfig())

	ctx := context.Background()
	done := make(chan struct{}, 50)
	for i := 0; i < 50; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 10; j++ {
				_, err := limiter.AllowIP(ctx, "192.0.2.77")
				assert.NoError(t, err)
			}
		}()
	}

	for i := 0; i < 50; i++ {
		<-done
	}
}
