package telemetry

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — метрики клиента Azkaban.
//
// CLI живёт секунды, поэтому метрики не отдаются по /metrics,
// а пишутся в textfile для node_exporter (WriteTextfile).
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	operations      *prometheus.CounterVec
	lastRun         prometheus.Gauge
}

// NewMetrics создаёт метрики в собственном реестре.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "azkaban_client_requests_total",
			Help: "HTTP requests issued to Azkaban",
		}, []string{"method", "path", "outcome"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "azkaban_client_request_duration_seconds",
			Help:    "Latency of HTTP requests issued to Azkaban",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "azkaban_client_operations_total",
			Help: "Azkaban operations by outcome",
		}, []string{"operation", "outcome"}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "azkaban_client_last_run_timestamp_seconds",
			Help: "Unix time of the last CLI invocation",
		}),
	}
}

// ObserveRequest учитывает один HTTP-запрос.
// status == 0 означает транспортную ошибку.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "error"
	if status > 0 {
		outcome = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, path, outcome).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveOperation учитывает итог операции (login, execute, ...).
func (m *Metrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// WriteTextfile записывает метрики в файл формата textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	m.lastRun.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
