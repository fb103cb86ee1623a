package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/aftershock/internal/annotate"
	"github.com/roach88/aftershock/internal/config"
	"github.com/roach88/aftershock/internal/event"
	"github.com/roach88/aftershock/internal/ingest"
	"github.com/roach88/aftershock/internal/layout"
	"github.com/roach88/aftershock/internal/scale"
)

// ErrNoData is returned when no record survives normalization.
var ErrNoData = errors.New("no data: no record has a parseable time and magnitude")

// Chart describes the drawing surface of a document.
type Chart struct {
	Width           float64
	Height          float64
	CenterX         float64
	PixelsPerMinute float64
	RadiusRange     scale.Range
	MagnitudeMin    float64
	MagnitudeMax    float64
}

// Document is a fully laid-out timeline.
type Document struct {
	Source      string
	Chart       Chart
	Scale       scale.Time
	Events      []event.Event // ascending by instant, every Position set
	Annotations []annotate.Placed
	Report      event.Report
	Overlaps    int // pairs of circles that still intersect after relaxation

	LayoutTime time.Duration
}

// Builder runs the pipeline with a fixed configuration.
type Builder struct {
	Config config.Config

	// Fetcher loads sources. Nil means a Fetcher whose client uses
	// Config.Ingest.Timeout.
	Fetcher *ingest.Fetcher

	// Logger receives progress and per-record drop messages. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg config.Config, logger *slog.Logger) *Builder {
	return &Builder{Config: cfg, Logger: logger}
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

func (b *Builder) fetcher() *ingest.Fetcher {
	if b.Fetcher != nil {
		return b.Fetcher
	}
	return &ingest.Fetcher{Client: ingest.NewHTTPClient(b.Config.Ingest.Timeout)}
}

// Build fetches source and lays it out. annotationsPath overrides the
// configured overlay file; both may be empty.
func (b *Builder) Build(ctx context.Context, source, annotationsPath string) (*Document, error) {
	log := b.logger()

	table, err := b.fetcher().Fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	log.Debug("source loaded",
		"source", table.Source,
		"delimiter", string(table.Delimiter),
		"columns", len(table.Header),
		"rows", len(table.Records))

	if annotationsPath == "" {
		annotationsPath = b.Config.Annotations
	}
	var anns []annotate.Annotation
	if annotationsPath != "" {
		anns, err = annotate.Load(annotationsPath)
		if err != nil {
			return nil, err
		}
		log.Debug("annotations loaded", "path", annotationsPath, "count", len(anns))
	}

	return b.FromTable(table, anns)
}

// FromTable lays out an already parsed table.
func (b *Builder) FromTable(table *ingest.Table, anns []annotate.Annotation) (*Document, error) {
	log := b.logger()
	cfg := b.Config

	cols := event.Columns{
		Time:      ingest.NormalizeHeader(cfg.Columns.Time),
		Magnitude: ingest.NormalizeHeader(cfg.Columns.Magnitude),
	}
	for _, col := range []string{cols.Time, cols.Magnitude} {
		if !table.Has(col) {
			log.Warn("column not found", "column", col, "header", table.Header)
		}
	}

	events, report := event.Normalize(table.Records, cols)
	for _, d := range report.Drops {
		log.Debug("record dropped", "seq", d.Seq, "reason", string(d.Reason), "value", d.Value)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%s: %w", table.Source, ErrNoData)
	}

	first, last := event.Span(events)
	ts := scale.NewTime(first, last, cfg.Chart.PixelsPerMinute)

	lo, hi := event.MagnitudeRange(events)
	rng := cfg.Radius.For(cfg.Chart.ViewportWidth)
	radius := scale.Radius(lo, hi, rng)

	started := time.Now()
	placed, err := layout.Place(events, layout.Params{
		Time:    ts,
		CenterX: cfg.Chart.CenterX(),
		Radius:  radius.Map,
		Options: cfg.Layout,
	})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	elapsed := time.Since(started)

	doc := &Document{
		Source: table.Source,
		Chart: Chart{
			Width:           cfg.Chart.ViewportWidth,
			Height:          ts.Height,
			CenterX:         cfg.Chart.CenterX(),
			PixelsPerMinute: cfg.Chart.PixelsPerMinute,
			RadiusRange:     rng,
			MagnitudeMin:    lo,
			MagnitudeMax:    hi,
		},
		Scale:       ts,
		Events:      placed,
		Annotations: annotate.Place(anns, ts),
		Report:      report,
		Overlaps:    layout.Overlaps(layout.NodesOf(placed)),
		LayoutTime:  elapsed,
	}

	log.Info("timeline laid out",
		"events", len(placed),
		"dropped", report.Dropped(),
		"height", ts.Height,
		"overlaps", doc.Overlaps,
		"duration", elapsed)

	return doc, nil
}
