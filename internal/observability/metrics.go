package observability

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests     *CounterVec
	apiLatency      *HistogramVec
	apiInflight     *Gauge
	statePublishes  *CounterVec
	sseClients      *Gauge
	contentRequests *CounterVec
	contentLatency  *HistogramVec
	dbStats         *GaugeVec
	redisUp         *Gauge
	redisPing       *Gauge
	scrapeInterval  time.Duration
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Current is nil until Init runs with metrics enabled. Every Metrics method
// accepts a nil receiver.
func Current() *Metrics {
	return instance
}

// Init builds the process-wide registry once. It returns nil when disabled.
func Init(enabled bool, scrapeInterval time.Duration) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics(scrapeInterval)
	})
	return instance
}

func NewMetrics(scrapeInterval time.Duration) *Metrics {
	if scrapeInterval <= 0 {
		scrapeInterval = 10 * time.Second
	}
	return &Metrics{
		apiRequests: NewCounterVec("agrovet_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"agrovet_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight:     NewGauge("agrovet_api_inflight_requests", "In-flight API requests."),
		statePublishes:  NewCounterVec("agrovet_state_publishes_total", "Event bus publishes by operation.", []string{"op"}),
		sseClients:      NewGauge("agrovet_sse_clients", "Connected SSE clients."),
		contentRequests: NewCounterVec("agrovet_content_requests_total", "Topic document requests by outcome.", []string{"outcome"}),
		contentLatency: NewHistogramVec(
			"agrovet_content_generation_seconds",
			"Remote document generation latency by model/status.",
			[]string{"model", "status"},
			[]float64{1, 2.5, 5, 10, 20, 30, 60, 90, 120},
		),
		dbStats:        NewGaugeVec("agrovet_db_pool", "SQL connection pool statistics.", []string{"stat"}),
		redisUp:        NewGauge("agrovet_redis_up", "Redis reachability (1 up, 0 down)."),
		redisPing:      NewGauge("agrovet_redis_ping_seconds", "Redis ping latency in seconds."),
		scrapeInterval: scrapeInterval,
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.statePublishes, m.sseClients,
		m.contentRequests, m.contentLatency,
		m.dbStats, m.redisUp, m.redisPing,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncStatePublish(op string) {
	if m == nil {
		return
	}
	m.statePublishes.Inc(op)
}

func (m *Metrics) SSEClientConnected() {
	if m == nil {
		return
	}
	m.sseClients.Inc()
}

func (m *Metrics) SSEClientDisconnected() {
	if m == nil {
		return
	}
	m.sseClients.Dec()
}

// IncContentRequest outcome is one of cached, generated, failed, not_configured.
func (m *Metrics) IncContentRequest(outcome string) {
	if m == nil {
		return
	}
	m.contentRequests.Inc(outcome)
}

func (m *Metrics) ObserveContentGeneration(model, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.contentLatency.Observe(dur.Seconds(), model, status)
}

func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}

// StartRedisCollector pings through the store's own client; it never closes it.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client) {
	if m == nil || rdb == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
