package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitewinder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	reg           *prom.Registry
	pageDuration  *prom.HistogramVec
	pages         *prom.CounterVec
	tags          prom.Gauge
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	brokenLinks   prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.pageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "page_render_duration_seconds",
			Help:      "Duration of rendering a single page",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"kind"})
		pr.pages = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_written_total",
			Help:      "Pages written by kind",
		}, []string{"kind"})
		pr.tags = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "tags",
			Help:      "Distinct tags found in the last build",
		})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.brokenLinks = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "broken_links_total",
			Help:      "Local links in generated pages that point at missing files",
		})
		reg.MustRegister(pr.pageDuration, pr.pages, pr.tags, pr.buildDuration, pr.buildOutcome, pr.brokenLinks)
	})
	return pr
}

func (p *PrometheusRecorder) ObservePageRender(kind PageKind, d time.Duration) {
	if p == nil || p.pageDuration == nil {
		return
	}
	p.pageDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPages(kind PageKind) {
	if p == nil || p.pages == nil {
		return
	}
	p.pages.WithLabelValues(string(kind)).Inc()
}

func (p *PrometheusRecorder) SetTags(n int) {
	if p == nil || p.tags == nil {
		return
	}
	p.tags.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcome) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncBrokenLinks(n int) {
	if p == nil || p.brokenLinks == nil || n <= 0 {
		return
	}
	p.brokenLinks.Add(float64(n))
}

// WriteTextfile dumps the registry in the text exposition format, for
// node_exporter's textfile collector in CI. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.reg == nil {
		return nil
	}
	return prom.WriteToTextfile(path, p.reg)
}
