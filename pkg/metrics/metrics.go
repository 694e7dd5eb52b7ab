package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smc"

// Metrics набор коллекторов Prometheus для HTTP и базы данных.
// Регистрируется в глобальном реестре при создании.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbPoolOpenConns  *prometheus.GaugeVec
	dbPoolInUseConns *prometheus.GaugeVec
	dbPoolIdleConns  *prometheus.GaugeVec
	dbPoolWaitCount  *prometheus.GaugeVec

	importFilesTotal *prometheus.CounterVec
	importRowsTotal  *prometheus.CounterVec
}

// New создает и регистрирует коллекторы. serviceName попадает в лейбл service
// каждой метрики, чтобы различать сервисы SMC на общем дашборде.
func New(serviceName string) *Metrics {
	m := &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests processed.",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		httpRequestsInFlight: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}, []string{"service"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Total number of database queries executed.",
		}, []string{"service", "operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency distribution.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		dbPoolOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_open_connections",
			Help:      "Number of established connections in the pool.",
		}, []string{"service"}),

		dbPoolInUseConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_in_use_connections",
			Help:      "Number of pool connections currently in use.",
		}, []string{"service"}),

		dbPoolIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_idle_connections",
			Help:      "Number of idle pool connections.",
		}, []string{"service"}),

		dbPoolWaitCount: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_wait_count",
			Help:      "Total number of connections waited for.",
		}, []string{"service"}),

		importFilesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_files_total",
			Help:      "Total number of booking import files processed.",
		}, []string{"service", "status"}),

		importRowsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Total number of booking import rows by outcome.",
		}, []string{"service", "outcome"}),
	}

	// Инициализируем gauge-серии сервиса, чтобы они существовали с момента старта
	m.httpRequestsInFlight.WithLabelValues(serviceName).Set(0)
	m.dbPoolOpenConns.WithLabelValues(serviceName).Set(0)
	m.dbPoolInUseConns.WithLabelValues(serviceName).Set(0)
	m.dbPoolIdleConns.WithLabelValues(serviceName).Set(0)
	m.dbPoolWaitCount.WithLabelValues(serviceName).Set(0)

	return m
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(service, method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

// IncHTTPInFlight увеличивает счетчик выполняемых запросов
func (m *Metrics) IncHTTPInFlight(service string) {
	m.httpRequestsInFlight.WithLabelValues(service).Inc()
}

// DecHTTPInFlight уменьшает счетчик выполняемых запросов
func (m *Metrics) DecHTTPInFlight(service string) {
	m.httpRequestsInFlight.WithLabelValues(service).Dec()
}

// ObserveDBQuery фиксирует выполненный запрос к базе данных
func (m *Metrics) ObserveDBQuery(service, operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(service, operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// SetDBPoolStats публикует текущее состояние connection pool
func (m *Metrics) SetDBPoolStats(service string, stats sql.DBStats) {
	m.dbPoolOpenConns.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.dbPoolInUseConns.WithLabelValues(service).Set(float64(stats.InUse))
	m.dbPoolIdleConns.WithLabelValues(service).Set(float64(stats.Idle))
	m.dbPoolWaitCount.WithLabelValues(service).Set(float64(stats.WaitCount))
}

// ImportRecorder записывает метрики импорта от имени одного сервиса
type ImportRecorder struct {
	metrics *Metrics
	service string
}

// NewImportRecorder возвращает регистратор метрик импорта для сервиса
func (m *Metrics) NewImportRecorder(service string) *ImportRecorder {
	return &ImportRecorder{metrics: m, service: service}
}

// FileProcessed фиксирует итог приёма файла импорта (accepted / rejected)
func (r *ImportRecorder) FileProcessed(status string) {
	r.metrics.importFilesTotal.WithLabelValues(r.service, status).Inc()
}

// AddRows фиксирует количество строк импорта с данным исходом (committed / failed)
func (r *ImportRecorder) AddRows(outcome string, count int) {
	if count <= 0 {
		return
	}
	r.metrics.importRowsTotal.WithLabelValues(r.service, outcome).Add(float64(count))
}
