package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/repogauge/repogauge/internal/adapters"
	"github.com/repogauge/repogauge/internal/cache"
	"github.com/repogauge/repogauge/internal/errors"
	"github.com/repogauge/repogauge/internal/history"
	"github.com/repogauge/repogauge/internal/mentor"
	"github.com/repogauge/repogauge/internal/monitoring"
	"github.com/repogauge/repogauge/internal/ratelimit"
	"github.com/repogauge/repogauge/internal/scoring"
	"github.com/repogauge/repogauge/internal/security"
	"github.com/repogauge/repogauge/internal/types"
)

const version = "1.0.0"

// deps bundles everything the router needs, so tests can assemble a router
// around fakes.
type deps struct {
	metrics *monitoring.Metrics
	logger  *monitoring.Logger
	cache   *cache.Cache
	limiter *ratelimit.RateLimiter
	github  *adapters.GitHubAdapter
	mentor  *mentor.Client
	history *history.Service
}

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	port := getEnvOrDefault("PORT", "8080")
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	githubToken := os.Getenv("GITHUB_TOKEN")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	redisURL := os.Getenv("REDIS_URL")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	cacheTTL := getEnvDuration("CACHE_TTL", 15*time.Minute)

	db, err := history.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	redisClient, err := ratelimit.NewRedisClient(redisURL, redisPassword, 0)
	if err != nil {
		// The limiter degrades to in-memory buckets; keep serving.
		slog.Warn("Redis unavailable", "error", err)
	}
	defer redisClient.Close()

	d := &deps{
		metrics: appMetrics,
		logger:  appLogger,
		cache:   cache.NewCache(cacheTTL),
		limiter: ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig(), appMetrics),
		github:  adapters.NewGitHubAdapter(githubToken),
		mentor:  mentor.NewClient(geminiKey, appMetrics),
		history: history.NewService(db),
	}

	if !d.mentor.IsEnabled() {
		slog.Warn("GEMINI_API_KEY not set, mentor feedback will use rule-based fallback")
	}

	r := setupRouter(d)

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Database pool stats endpoint
	r.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": db.GetPoolStats(),
		})
	})

	// Rate limiter stats endpoint
	r.GET("/ratelimit/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, d.limiter.GetStats())
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// setupRouter builds the gin engine with the full middleware chain and the
// core API routes.
func setupRouter(d *deps) *gin.Engine {
	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(security.HeadersMiddleware())
	r.Use(security.BodyLimitMiddleware())
	r.Use(monitoring.MonitoringMiddleware(d.metrics, d.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(d.limiter.IPRateLimitMiddleware())
	r.Use(d.cache.Middleware(d.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, d.metrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, d.cache.Stats())
	})

	r.GET("/leaderboard", func(c *gin.Context) {
		limit := queryLimit(c, 50, 100)

		entries, err := d.history.Leaderboard(limit)
		if err != nil {
			d.logger.APIErrorLogger(err, "GET", "/leaderboard", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve leaderboard"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"entries":   entries,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	r.GET("/history/:owner/:repo", func(c *gin.Context) {
		owner := strings.ToLower(c.Param("owner"))
		repo := strings.ToLower(c.Param("repo"))
		limit := queryLimit(c, 20, 100)

		analyses, err := d.history.Recent(owner, repo, limit)
		if err != nil {
			d.logger.APIErrorLogger(err, "GET", c.Request.URL.Path, c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve history"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"repo":     fmt.Sprintf("%s/%s", owner, repo),
			"analyses": analyses,
		})
	})

	r.POST("/analyze", d.limiter.AnalyzeRateLimitMiddleware(), d.handleAnalyze)

	return r
}

// handleAnalyze runs a full analysis: fetch the repository snapshot, score
// it, record the result, and attach mentor feedback.
func (d *deps) handleAnalyze(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	var req types.AnalyzeRequest
	if err := c.BindJSON(&req); err != nil {
		appErr := errors.NewValidationError("request must include a repo field")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	owner, repo, err := adapters.ParseRepoInput(req.Repo)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	slog.Info("Starting analysis", "owner", owner, "repo", repo, "ip", c.ClientIP())
	start := time.Now()

	d.metrics.IncrementGitHubCalls()
	snapshot, err := d.github.BuildSnapshot(ctx, owner, repo)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		d.logger.ExternalAPILogger("GitHub", "GET", "api.github.com", appErr.HTTPStatus, time.Since(start), false)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}
	d.logger.ExternalAPILogger("GitHub", "GET", "api.github.com", http.StatusOK, time.Since(start), true)

	report, err := scoring.Score(snapshot)
	if err != nil {
		// The engine only fails on an aggregator contract violation,
		// which is a scorer bug rather than bad input or upstream state.
		appErr := errors.NewContractViolation(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	d.metrics.IncrementAnalyses()
	d.logger.AnalysisLogger(owner+"/"+repo, report.Total, string(report.Tier), string(report.Level), time.Since(start), false)

	// Persist async so a slow disk never delays the response.
	go d.history.Record(owner, repo, report)

	prompt := scoring.BuildMentorPrompt(owner+"/"+repo, report, snapshot)
	feedback := d.mentor.Mentor(ctx, prompt, report.Total)

	c.JSON(http.StatusOK, gin.H{
		"repo":       owner + "/" + repo,
		"score":      report.Total,
		"tier":       report.Tier,
		"level":      report.Level,
		"dimensions": report.Dimensions,
		"roadmap":    report.Roadmap,
		"mentor":     feedback,
	})
}

// queryLimit reads a bounded limit query parameter.
func queryLimit(c *gin.Context, def, max int) int {
	if raw := c.Query("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 && l <= max {
			return l
		}
	}
	return def
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("Invalid duration, using default", "key", key, "value", value)
	}
	return defaultValue
}
