// Package config holds the tunable settings of a timeline build.
//
// Settings are read from a YAML file laid over Default(). Unknown keys are
// rejected so a misspelled setting fails loudly instead of being ignored.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/aftershock/internal/event"
	"github.com/roach88/aftershock/internal/layout"
	"github.com/roach88/aftershock/internal/scale"
)

// Config is the full set of build settings.
type Config struct {
	Columns     event.Columns    `yaml:"columns"`
	Chart       Chart            `yaml:"chart"`
	Radius      scale.Responsive `yaml:"radius"`
	Layout      layout.Options   `yaml:"layout"`
	Reveal      Reveal           `yaml:"reveal"`
	Ingest      Ingest           `yaml:"ingest"`
	Style       Style            `yaml:"style"`
	Annotations string           `yaml:"annotations"` // default overlay file, may be empty
}

// Chart sizes the drawing surface.
type Chart struct {
	PixelsPerMinute float64 `yaml:"pixels_per_minute"`
	ViewportWidth   float64 `yaml:"viewport_width"`
	ViewportHeight  float64 `yaml:"viewport_height"`
	Margin          float64 `yaml:"margin"` // space above and below the time axis in rendered output
}

// CenterX is the horizontal line circles are pulled toward.
func (c Chart) CenterX() float64 {
	return c.ViewportWidth / 2
}

// Reveal controls progressive disclosure while scrolling.
type Reveal struct {
	// Fraction of the viewport height, measured from its top, at which
	// events become visible.
	Fraction float64 `yaml:"fraction"`
}

// Ingest controls source loading.
type Ingest struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Style holds the colours and label settings of rendered output.
// Colours are "#rrggbb" strings.
type Style struct {
	Background     string  `yaml:"background"`
	Axis           string  `yaml:"axis"`
	Text           string  `yaml:"text"`
	Fill           string  `yaml:"fill"`
	Stroke         string  `yaml:"stroke"`
	FillOpacity    float64 `yaml:"fill_opacity"`
	FontSize       float64 `yaml:"font_size"`
	LabelMagnitude float64 `yaml:"label_magnitude"` // events at or above this get a text label
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Columns: event.DefaultColumns(),
		Chart: Chart{
			PixelsPerMinute: scale.PixelsPerMinute,
			ViewportWidth:   1024,
			ViewportHeight:  768,
			Margin:          40,
		},
		Radius: scale.DefaultResponsive(),
		Layout: layout.DefaultOptions(),
		Reveal: Reveal{Fraction: 0.75},
		Ingest: Ingest{Timeout: 30 * time.Second},
		Style: Style{
			Background:     "#ffffff",
			Axis:           "#888888",
			Text:           "#333333",
			Fill:           "#d6604d",
			Stroke:         "#67001f",
			FillOpacity:    0.7,
			FontSize:       11,
			LabelMagnitude: 5.0,
		},
	}
}

// Load reads a YAML file over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate reports the first setting that cannot produce a timeline.
func (c Config) Validate() error {
	if c.Columns.Time == "" {
		return errors.New("columns.time is required")
	}
	if c.Columns.Magnitude == "" {
		return errors.New("columns.magnitude is required")
	}
	if c.Columns.Time == c.Columns.Magnitude {
		return fmt.Errorf("columns.time and columns.magnitude are both %q", c.Columns.Time)
	}

	if c.Chart.PixelsPerMinute <= 0 {
		return fmt.Errorf("chart.pixels_per_minute must be positive, got %g", c.Chart.PixelsPerMinute)
	}
	if c.Chart.ViewportWidth <= 0 || c.Chart.ViewportHeight <= 0 {
		return fmt.Errorf("chart viewport must be positive, got %gx%g", c.Chart.ViewportWidth, c.Chart.ViewportHeight)
	}
	if c.Chart.Margin < 0 {
		return fmt.Errorf("chart.margin must not be negative, got %g", c.Chart.Margin)
	}

	if c.Radius.Breakpoint < 0 {
		return fmt.Errorf("radius.breakpoint must not be negative, got %g", c.Radius.Breakpoint)
	}
	for _, f := range []struct {
		name string
		r    scale.Range
	}{
		{"radius.wide", c.Radius.Wide},
		{"radius.narrow", c.Radius.Narrow},
	} {
		if f.r.Min < 0 || f.r.Max < f.r.Min {
			return fmt.Errorf("%s must satisfy 0 <= min <= max, got [%g, %g]", f.name, f.r.Min, f.r.Max)
		}
	}

	if c.Layout.Iterations <= 0 {
		return fmt.Errorf("layout.iterations must be positive, got %d", c.Layout.Iterations)
	}
	if c.Layout.XStrength <= 0 || c.Layout.YStrength <= 0 {
		return fmt.Errorf("layout strengths must be positive, got x=%g y=%g", c.Layout.XStrength, c.Layout.YStrength)
	}
	if c.Layout.Padding < 0 {
		return fmt.Errorf("layout.padding must not be negative, got %g", c.Layout.Padding)
	}
	if c.Layout.VelocityDecay < 0 || c.Layout.VelocityDecay >= 1 {
		return fmt.Errorf("layout.velocity_decay must be in [0, 1), got %g", c.Layout.VelocityDecay)
	}
	if c.Layout.AlphaMin <= 0 || c.Layout.AlphaMin >= 1 {
		return fmt.Errorf("layout.alpha_min must be in (0, 1), got %g", c.Layout.AlphaMin)
	}

	if c.Reveal.Fraction < 0 || c.Reveal.Fraction > 1 {
		return fmt.Errorf("reveal.fraction must be in [0, 1], got %g", c.Reveal.Fraction)
	}
	if c.Ingest.Timeout <= 0 {
		return fmt.Errorf("ingest.timeout must be positive, got %s", c.Ingest.Timeout)
	}

	for _, f := range []struct{ name, value string }{
		{"style.background", c.Style.Background},
		{"style.axis", c.Style.Axis},
		{"style.text", c.Style.Text},
		{"style.fill", c.Style.Fill},
		{"style.stroke", c.Style.Stroke},
	} {
		if !hexColor.MatchString(f.value) {
			return fmt.Errorf("%s must be a #rrggbb colour, got %q", f.name, f.value)
		}
	}
	if c.Style.FillOpacity < 0 || c.Style.FillOpacity > 1 {
		return fmt.Errorf("style.fill_opacity must be in [0, 1], got %g", c.Style.FillOpacity)
	}
	if c.Style.FontSize <= 0 {
		return fmt.Errorf("style.font_size must be positive, got %g", c.Style.FontSize)
	}

	return nil
}
