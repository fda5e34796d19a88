// Package monitoring 提供Prometheus指标
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 预测结果标签
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Metrics 服务指标
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	predictionsTotal *prometheus.CounterVec
	unknownLocations prometheus.Counter
	estimatedPrice   prometheus.Histogram
	artifactChanges  *prometheus.CounterVec
}

// NewMetrics 创建指标并注册到独立的Registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homeprice_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "homeprice_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.02, 0.1, 0.5, 1},
			},
			[]string{"route"},
		),
		predictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homeprice_predictions_total",
				Help: "Price predictions by outcome",
			},
			[]string{"outcome"},
		),
		unknownLocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "homeprice_unknown_locations_total",
			Help: "Predictions requested for a location missing from the model",
		}),
		estimatedPrice: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "homeprice_estimated_price",
			Help:    "Distribution of estimated prices",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		}),
		artifactChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homeprice_artifact_changes_total",
				Help: "Artifact file changes seen on disk since startup",
			},
			[]string{"path"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.predictionsTotal,
		m.unknownLocations,
		m.estimatedPrice,
		m.artifactChanges,
	)
	return m
}

// ObserveRequest 记录一次HTTP请求
func (m *Metrics) ObserveRequest(route, method string, code int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ObservePrediction 记录预测结果
func (m *Metrics) ObservePrediction(outcome string, price float64) {
	m.predictionsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.estimatedPrice.Observe(price)
	}
}

// ObserveUnknownLocation 记录未知地区
func (m *Metrics) ObserveUnknownLocation() {
	m.unknownLocations.Inc()
}

// ObserveArtifactChange 记录模型文件变更
func (m *Metrics) ObserveArtifactChange(path string) {
	m.artifactChanges.WithLabelValues(path).Inc()
}

// Handler 返回/metrics处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
