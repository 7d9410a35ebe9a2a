// Package metrics exposes Prometheus collectors for document generation.
package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config sets the constant labels attached to every collector.
type Config struct {
	ServiceName string
	Environment string
}

// GenerationMetrics records generation calls. A nil *GenerationMetrics is
// valid and records nothing.
type GenerationMetrics struct {
	documents *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	pages     *prometheus.HistogramVec
	assets    *prometheus.CounterVec
}

var (
	generationMetricsOnce sync.Once
	generationMetrics     *GenerationMetrics
)

// Generation returns the collectors registered on the default registerer.
func Generation() *GenerationMetrics {
	return GenerationWithConfig(Config{})
}

// GenerationWithConfig is Generation with explicit constant labels. Only the
// first call's config takes effect.
func GenerationWithConfig(cfg Config) *GenerationMetrics {
	generationMetricsOnce.Do(func() {
		generationMetrics = New(prometheus.DefaultRegisterer, cfg)
	})
	return generationMetrics
}

// New creates the collectors and registers them on registerer.
func New(registerer prometheus.Registerer, cfg Config) *GenerationMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "proposalpdf"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	documents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "proposalpdf_documents_total",
			Help:        "Documents generated successfully.",
			ConstLabels: constLabels,
		},
		[]string{"kind", "mode"}, // proposal | contract
	)

	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "proposalpdf_failures_total",
			Help:        "Generation calls that returned an error.",
			ConstLabels: constLabels,
		},
		[]string{"kind", "stage"}, // assets | layout | output
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "proposalpdf_generation_duration_seconds",
			Help:        "Time spent generating a document, asset loading included.",
			Buckets:     []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		},
		[]string{"kind"},
	)

	pages := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "proposalpdf_document_pages",
			Help:        "Number of pages per generated document.",
			Buckets:     []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
			ConstLabels: constLabels,
		},
		[]string{"kind"},
	)

	assets := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "proposalpdf_asset_loads_total",
			Help:        "Image assets resolved per generation call.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // ok | failed
	)

	registerer.MustRegister(documents, failures, duration, pages, assets)

	return &GenerationMetrics{
		documents: documents,
		failures:  failures,
		duration:  duration,
		pages:     pages,
		assets:    assets,
	}
}

// ObserveDocument records a successful generation.
func (m *GenerationMetrics) ObserveDocument(kind, mode string, pages int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(kind, mode).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
	m.pages.WithLabelValues(kind).Observe(float64(pages))
}

// IncFailure records a failed generation at the given stage.
func (m *GenerationMetrics) IncFailure(kind, stage string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind, stage).Inc()
}

// AddAssetLoads records n asset resolutions with the given result.
func (m *GenerationMetrics) AddAssetLoads(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.assets.WithLabelValues(result).Add(float64(n))
}
