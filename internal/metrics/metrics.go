// Package metrics records pipeline statistics in a Prometheus registry and
// writes them in the node-exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/aftershock/internal/event"
	"github.com/roach88/aftershock/internal/timeline"
)

const namespace = "aftershock"

// Recorder owns a private registry so repeated builds in one process never
// collide with the default registry.
type Recorder struct {
	registry *prometheus.Registry

	records       prometheus.Counter
	dropped       *prometheus.CounterVec
	placed        prometheus.Gauge
	overlaps      prometheus.Gauge
	chartHeight   prometheus.Gauge
	layoutSeconds prometheus.Gauge
	lastBuild     prometheus.Gauge
}

// New returns a Recorder with every metric registered.
func New() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.records = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_total",
		Help:      "Source records read",
	})
	r.dropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_dropped_total",
		Help:      "Source records excluded before layout, by reason",
	}, []string{"reason"})
	r.placed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_placed",
		Help:      "Events in the last laid-out timeline",
	})
	r.overlaps = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "overlapping_pairs",
		Help:      "Circle pairs still intersecting after relaxation",
	})
	r.chartHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chart_height_pixels",
		Help:      "Height of the last chart",
	})
	r.layoutSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "layout_duration_seconds",
		Help:      "Wall time of the last layout relaxation",
	})
	r.lastBuild = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_build_timestamp_seconds",
		Help:      "Unix time of the last successful build",
	})

	r.registry.MustRegister(r.records, r.dropped, r.placed, r.overlaps,
		r.chartHeight, r.layoutSeconds, r.lastBuild)

	for _, reason := range []event.DropReason{event.DropTime, event.DropMagnitude} {
		r.dropped.WithLabelValues(string(reason))
	}
	return r
}

// Observe records the statistics of a built document.
func (r *Recorder) Observe(doc *timeline.Document) {
	r.records.Add(float64(doc.Report.Total))
	for _, reason := range []event.DropReason{event.DropTime, event.DropMagnitude} {
		r.dropped.WithLabelValues(string(reason)).Add(float64(doc.Report.DroppedBy(reason)))
	}
	r.placed.Set(float64(len(doc.Events)))
	r.overlaps.Set(float64(doc.Overlaps))
	r.chartHeight.Set(doc.Chart.Height)
	r.layoutSeconds.Set(doc.LayoutTime.Seconds())
	r.lastBuild.SetToCurrentTime()
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
