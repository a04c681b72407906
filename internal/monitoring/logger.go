package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging helpers for the domain events the
// service cares about.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new enhanced logger
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// AnalysisLogger logs the outcome of one repository analysis
func (l *Logger) AnalysisLogger(repo string, total int, tier, level string, duration time.Duration, cacheHit bool) {
	l.Info("Analysis Completed",
		"repo", repo,
		"score", total,
		"tier", tier,
		"level", level,
		"duration_ms", duration.Milliseconds(),
		"cache_hit", cacheHit,
	)
}

// ExternalAPILogger logs calls to external collaborators
func (l *Logger) ExternalAPILogger(apiName, method, host string, statusCode int, duration time.Duration, success bool) {
	l.Info("External API Call",
		"api", apiName,
		"method", method,
		"host", host,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// APIErrorLogger logs API errors with context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err,
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}
