package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()
	m.IncrementAnalyses()

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["requests_total"])
	assert.Equal(t, int64(1), stats["errors_total"])
	assert.Equal(t, float64(50), stats["error_rate_percent"])
	assert.Equal(t, float64(50), stats["cache_hit_rate_percent"])
	assert.Equal(t, int64(1), stats["analyses_completed"])
}

func TestPercentileResponseTime(t *testing.T) {
	m := NewMetrics()

	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(95))

	for i := 1; i <= 100; i++ {
		m.RecordResponseTime(time.Duration(i) * time.Millisecond)
	}

	p50 := m.GetPercentileResponseTime(50)
	p99 := m.GetPercentileResponseTime(99)
	assert.Greater(t, p99, p50)
	assert.LessOrEqual(t, p99, 100*time.Millisecond)
}

func TestStatusCodeDistribution(t *testing.T) {
	m := NewMetrics()

	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(404)

	dist := m.GetStatusCodeDistribution()
	assert.Equal(t, int64(2), dist[200])
	assert.Equal(t, int64(1), dist[404])
}
