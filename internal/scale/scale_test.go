package scale

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 10, 10, 17, 14, 0, 0, time.UTC)

func TestChartHeight(t *testing.T) {
	assert.Equal(t, 900.0, ChartHeight(time.Hour, PixelsPerMinute))
	assert.Equal(t, 15.0, ChartHeight(30*time.Second, PixelsPerMinute), "partial minutes round up")
	assert.Equal(t, 30.0, ChartHeight(61*time.Second, PixelsPerMinute))
	assert.Equal(t, 15.0, ChartHeight(0, PixelsPerMinute), "zero span is widened")
}

func TestTimeScaleEndpoints(t *testing.T) {
	t1 := t0.Add(36 * time.Hour)
	s := NewTime(t0, t1, PixelsPerMinute)

	assert.Equal(t, 36*60*PixelsPerMinute, s.Height)
	assert.Equal(t, 0.0, s.Map(t0))
	assert.Equal(t, s.Height, s.Map(t1))
	assert.Equal(t, 36*60, s.Minutes())
}

func TestTimeScaleMonotonic(t *testing.T) {
	s := NewTime(t0, t0.Add(48*time.Hour), PixelsPerMinute)

	prev := s.Map(t0)
	for m := 1; m <= 48*60; m += 7 {
		y := s.Map(t0.Add(time.Duration(m) * time.Minute))
		assert.Greater(t, y, prev)
		prev = y
	}
}

func TestTimeScaleLinear(t *testing.T) {
	s := NewTime(t0, t0.Add(10*time.Hour), PixelsPerMinute)
	assert.InDelta(t, s.Height/2, s.Map(t0.Add(5*time.Hour)), 1e-9)
	assert.InDelta(t, s.Height/4, s.Map(t0.Add(150*time.Minute)), 1e-9)
}

func TestTimeScaleDegenerate(t *testing.T) {
	s := NewTime(t0, t0, PixelsPerMinute)

	assert.Equal(t, t0.Add(MinSpan), s.End)
	assert.Equal(t, PixelsPerMinute, s.Height)
	assert.Equal(t, 0.0, s.Map(t0))
	assert.False(t, math.IsNaN(s.Map(t0)))
}

func TestTimeScaleInvert(t *testing.T) {
	s := NewTime(t0, t0.Add(10*time.Hour), PixelsPerMinute)

	at := t0.Add(3*time.Hour + 20*time.Minute)
	assert.True(t, at.Equal(s.Invert(s.Map(at))))
	assert.True(t, s.End.Equal(s.Invert(s.Height)))
}

func TestSqrtMonotonic(t *testing.T) {
	s := Radius(1.0, 8.0, Range{Min: 4, Max: 28})

	assert.InDelta(t, 4.0, s.Map(1.0), 1e-9)
	assert.InDelta(t, 28.0, s.Map(8.0), 1e-9)

	prev := s.Map(1.0)
	for m := 1.1; m <= 8.0; m += 0.1 {
		r := s.Map(m)
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}
}

func TestSqrtAreaProportional(t *testing.T) {
	s := Sqrt{DomainMin: 0, DomainMax: 8, RangeMin: 0, RangeMax: 20}

	// With a zero-anchored range r^2 is exactly linear in m.
	k := 400.0 / 8.0
	for _, m := range []float64{0.5, 1, 2, 3.7, 5, 8} {
		r := s.Map(m)
		assert.InDelta(t, k*m, r*r, 1e-9, "m=%v", m)
	}
}

func TestSqrtDegenerateDomain(t *testing.T) {
	s := Radius(5.0, 5.0, Range{Min: 4, Max: 28})
	assert.Equal(t, 16.0, s.Map(5.0))
}

func TestResponsiveRange(t *testing.T) {
	r := DefaultResponsive()

	assert.Equal(t, r.Narrow, r.For(375))
	assert.Equal(t, r.Wide, r.For(640))
	assert.Equal(t, r.Wide, r.For(1440))
	assert.Less(t, r.Narrow.Max, r.Wide.Max)
}
