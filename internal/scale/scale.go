// Package scale maps event instants to vertical pixel offsets and event
// magnitudes to circle radii.
package scale

import (
	"math"
	"time"
)

// PixelsPerMinute is the vertical resolution of the timeline.
const PixelsPerMinute = 15.0

// MinSpan is the smallest time domain a Time scale accepts. A dataset whose
// events all share one instant is widened to this span.
const MinSpan = time.Minute

// Time is a linear map from [Start, End] onto [0, Height].
type Time struct {
	Start  time.Time
	End    time.Time
	Height float64
}

// NewTime builds the time scale for a span of events.
//
// The chart height is ceil(minutes) * pixelsPerMinute. A zero or negative
// span is widened to MinSpan so the mapping stays defined.
func NewTime(start, end time.Time, pixelsPerMinute float64) Time {
	if !end.After(start) {
		end = start.Add(MinSpan)
	}
	return Time{
		Start:  start,
		End:    end,
		Height: ChartHeight(end.Sub(start), pixelsPerMinute),
	}
}

// ChartHeight returns the pixel height for a span, rounding partial minutes up.
func ChartHeight(span time.Duration, pixelsPerMinute float64) float64 {
	if span < MinSpan {
		span = MinSpan
	}
	return math.Ceil(span.Minutes()) * pixelsPerMinute
}

// Minutes returns the whole number of minutes the chart covers.
func (s Time) Minutes() int {
	return int(math.Ceil(s.End.Sub(s.Start).Minutes()))
}

// Map returns the y offset of t. Instants outside the domain extrapolate.
func (s Time) Map(t time.Time) float64 {
	span := s.End.Sub(s.Start).Minutes()
	return t.Sub(s.Start).Minutes() / span * s.Height
}

// Invert returns the instant at y offset y, rounded to the second.
func (s Time) Invert(y float64) time.Time {
	span := s.End.Sub(s.Start).Minutes()
	minutes := y / s.Height * span
	d := time.Duration(math.Round(minutes * float64(time.Minute)))
	return s.Start.Add(d.Round(time.Second))
}

// Sqrt maps the square root of the domain linearly onto the range, so circle
// area rather than radius grows in proportion to the input.
type Sqrt struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
}

// Map returns the radius for magnitude m.
// A zero-width domain maps every input to the middle of the range.
func (s Sqrt) Map(m float64) float64 {
	d0, d1 := signedSqrt(s.DomainMin), signedSqrt(s.DomainMax)
	if d1 == d0 {
		return (s.RangeMin + s.RangeMax) / 2
	}
	frac := (signedSqrt(m) - d0) / (d1 - d0)
	return s.RangeMin + frac*(s.RangeMax-s.RangeMin)
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// Range is a pixel radius interval.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Responsive picks the radius range for a viewport width. Viewports narrower
// than breakpoint get the narrow range.
type Responsive struct {
	Breakpoint float64 `yaml:"breakpoint"`
	Wide       Range   `yaml:"wide"`
	Narrow     Range   `yaml:"narrow"`
}

// DefaultResponsive returns the radius ranges used when none are configured.
func DefaultResponsive() Responsive {
	return Responsive{
		Breakpoint: 640,
		Wide:       Range{Min: 4, Max: 28},
		Narrow:     Range{Min: 2, Max: 16},
	}
}

// For returns the radius range for viewportWidth.
func (r Responsive) For(viewportWidth float64) Range {
	if viewportWidth < r.Breakpoint {
		return r.Narrow
	}
	return r.Wide
}

// Radius builds the square-root radius scale for a magnitude interval.
func Radius(minMag, maxMag float64, rng Range) Sqrt {
	return Sqrt{DomainMin: minMag, DomainMax: maxMag, RangeMin: rng.Min, RangeMax: rng.Max}
}
