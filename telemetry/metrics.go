package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldnation/devportal/telemetry/instrumentation"
)

// Metrics holds the build pipeline collectors. A build run writes them
// as textfile, the preview server exposes them on /metrics.
type Metrics struct {
	registry *WrappedRegistry

	ArtifactBytes      *prometheus.GaugeVec
	Errors             *prometheus.CounterVec
	GeneratedFiles     prometheus.Counter
	LLMExports         *prometheus.CounterVec
	OpenAPIOperations  *prometheus.GaugeVec
	OpenAPIValidations prometheus.Counter
	Pages              *prometheus.GaugeVec
	SearchEntries      *prometheus.GaugeVec
	StageDuration      *prometheus.HistogramVec
}

func NewMetrics(buildID string) *Metrics {
	m := &Metrics{
		registry: NewWrappedRegistry(prometheus.NewRegistry(), NewLabel("build_id", buildID)),
		ArtifactBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: instrumentation.ArtifactBytes,
			Help: "Size of the written artifacts.",
		}, []string{"artifact"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: instrumentation.Errors,
			Help: "Logged errors by kind.",
		}, []string{"kind"}),
		GeneratedFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: instrumentation.GeneratedFiles,
			Help: "Generated OpenAPI reference pages.",
		}),
		LLMExports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: instrumentation.LLMExports,
			Help: "Per page llms text exports by result.",
		}, []string{"result"}),
		OpenAPIOperations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: instrumentation.OpenAPIOperations,
			Help: "Operations per OpenAPI document.",
		}, []string{"schema_id"}),
		OpenAPIValidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: instrumentation.OpenAPIValidations,
			Help: "OpenAPI documents which failed the validation.",
		}),
		Pages: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: instrumentation.Pages,
			Help: "Loaded pages per collection.",
		}, []string{"collection"}),
		SearchEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: instrumentation.SearchEntries,
			Help: "Search index entries by type.",
		}, []string{"type"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    instrumentation.StageDuration,
			Help:    "Duration of the build stages.",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30},
		}, []string{"stage"}),
	}

	m.registry.MustRegister(
		m.ArtifactBytes,
		m.Errors,
		m.GeneratedFiles,
		m.LLMExports,
		m.OpenAPIOperations,
		m.OpenAPIValidations,
		m.Pages,
		m.SearchEntries,
		m.StageDuration,
	)
	return m
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveStage records the duration since start for the given stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteFile writes all metrics in the text exposition format, e.g. for the node exporter textfile collector.
func (m *Metrics) WriteFile(filename string) error {
	return prometheus.WriteToTextfile(filename, m.registry)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
