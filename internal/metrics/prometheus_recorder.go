package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docnav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg            *prom.Registry
	stageDuration  *prom.HistogramVec
	buildDuration  prom.Histogram
	buildOutcome   *prom.CounterVec
	categoryPages  *prom.GaugeVec
	localeNodes    *prom.GaugeVec
	titleFallbacks *prom.CounterVec
	rebuilds       *prom.CounterVec
	lastBuild      prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg,
// or on a new registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		categoryPages: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "category_pages",
			Help:      "Module pages per category in the last build",
		}, []string{"category"}),
		localeNodes: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "locale_nodes",
			Help:      "Sidebar nodes per locale and kind in the last build",
		}, []string{"locale", "kind"}),
		titleFallbacks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "title_fallbacks_total",
			Help:      "Module pages titled by file name because no heading was found",
		}, []string{"category"}),
		rebuilds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rebuild_triggers_total",
			Help:      "Watch mode rebuilds by trigger",
		}, []string{"trigger"}),
		lastBuild: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time of the last completed build",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.buildOutcome, pr.categoryPages,
		pr.localeNodes, pr.titleFallbacks, pr.rebuilds, pr.lastBuild)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetCategoryPages(category string, n int) {
	p.categoryPages.WithLabelValues(category).Set(float64(n))
}

func (p *PrometheusRecorder) SetLocaleNodes(locale string, pages, sections int) {
	if locale == "" {
		locale = "root"
	}
	p.localeNodes.WithLabelValues(locale, "page").Set(float64(pages))
	p.localeNodes.WithLabelValues(locale, "section").Set(float64(sections))
}

func (p *PrometheusRecorder) IncTitleFallback(category string) {
	p.titleFallbacks.WithLabelValues(category).Inc()
}

func (p *PrometheusRecorder) IncRebuildTrigger(trigger string) {
	p.rebuilds.WithLabelValues(trigger).Inc()
}

func (p *PrometheusRecorder) SetLastBuild(t time.Time) {
	p.lastBuild.Set(float64(t.Unix()))
}

// WriteTextfile writes all registered metrics in the text exposition format,
// for the node_exporter textfile collector. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
