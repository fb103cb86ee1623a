package layout

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/aftershock/internal/event"
	"github.com/roach88/aftershock/internal/scale"
	"github.com/roach88/aftershock/internal/testutil"
)

const centerX = 512.0

// placeRecords runs the same steps as the timeline pipeline on records.
func placeRecords(t *testing.T, records []event.Record) []event.Event {
	t.Helper()
	return placeRecordsWith(t, records, Options{})
}

func placeRecordsWith(t *testing.T, records []event.Record, opts Options) []event.Event {
	t.Helper()

	events, report := event.Normalize(records, event.DefaultColumns())
	require.NotZero(t, report.Kept)

	first, last := event.Span(events)
	lo, hi := event.MagnitudeRange(events)
	radius := scale.Radius(lo, hi, scale.DefaultResponsive().Wide)

	placed, err := Place(events, Params{
		Time:    scale.NewTime(first, last, scale.PixelsPerMinute),
		CenterX: centerX,
		Radius:  radius.Map,
		Options: opts,
	})
	require.NoError(t, err)
	require.Len(t, placed, len(events))
	return placed
}

func TestPlaceSingleEvent(t *testing.T) {
	placed := placeRecords(t, []event.Record{
		{"time": "10 Oct 2025 - 5:14 PM", "magnitude": "7.4"},
	})

	require.NotNil(t, placed[0].Position)
	assert.Equal(t, centerX, placed[0].Position.X)
	assert.Equal(t, 0.0, placed[0].Position.Y)
	assert.Equal(t, 0.0, placed[0].TargetY)
}

func TestPlaceSeparatedEventsStayOnTarget(t *testing.T) {
	placed := placeRecords(t, []event.Record{
		{"time": "10 Oct 2025 - 5:14 PM", "magnitude": "4.5"},
		{"time": "10 Oct 2025 - 6:14 PM", "magnitude": "6.1"},
	})

	assert.Equal(t, event.Position{X: centerX, Y: 0}, *placed[0].Position)
	assert.Equal(t, event.Position{X: centerX, Y: 900}, *placed[1].Position)
	assert.Equal(t, 4.0, placed[0].Radius)
	assert.Equal(t, 28.0, placed[1].Radius)
}

func TestPlaceNoOverlap(t *testing.T) {
	placed := placeRecords(t, testutil.Sequence(42, 150, testutil.Mainshock))

	nodes := NodesOf(placed)
	pairs := len(nodes) * (len(nodes) - 1) / 2
	overlaps := Overlaps(nodes)

	assert.Less(t, float64(overlaps)/float64(pairs), 0.01, "%d of %d pairs overlap", overlaps, pairs)
}

func TestPlaceKeepsChronology(t *testing.T) {
	placed := placeRecords(t, testutil.Sequence(42, 150, testutil.Mainshock))

	maxR := 0.0
	for _, e := range placed {
		maxR = math.Max(maxR, e.Radius)
	}

	for i, e := range placed {
		assert.LessOrEqual(t, math.Abs(e.Position.Y-e.TargetY), 2*maxR+DefaultOptions().Padding, "event %d drifted", i)
		if i > 0 {
			assert.GreaterOrEqual(t, e.TargetY, placed[i-1].TargetY)
		}
	}
}

func TestPlaceDeterministic(t *testing.T) {
	records := testutil.Sequence(9, 120, testutil.Mainshock)

	a := placeRecords(t, records)
	b := placeRecords(t, records)

	for i := range a {
		assert.Equal(t, *a[i].Position, *b[i].Position, "event %d", i)
	}
}

func TestPlacePartialOptionsFallBackPerField(t *testing.T) {
	records := testutil.Sequence(9, 120, testutil.Mainshock)

	defaults := placeRecords(t, records)
	partial := placeRecordsWith(t, records, Options{Padding: 1.5, VelocityDecay: 0.4})

	for i := range defaults {
		assert.Equal(t, *defaults[i].Position, *partial[i].Position, "event %d", i)
	}
}

func TestPlaceCoincidentBurst(t *testing.T) {
	records := testutil.Burst(12, testutil.Mainshock)
	records = append(records, event.Record{
		"time":      event.FormatInstant(testutil.Mainshock.Add(2 * time.Hour)),
		"magnitude": "4.0",
	})

	placed := placeRecords(t, records)

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, e := range placed[:12] {
		require.False(t, math.IsNaN(e.Position.X) || math.IsNaN(e.Position.Y))
		minX = math.Min(minX, e.Position.X)
		maxX = math.Max(maxX, e.Position.X)
	}
	assert.Greater(t, maxX-minX, 0.0, "coincident events must be spread apart")

	nodes := NodesOf(placed)
	pairs := len(nodes) * (len(nodes) - 1) / 2
	assert.Less(t, float64(Overlaps(nodes))/float64(pairs), 0.1)
}

func TestPlaceDoesNotMutateInput(t *testing.T) {
	events, _ := event.Normalize(testutil.Burst(3, testutil.Mainshock), event.DefaultColumns())

	_, err := Place(events, Params{
		Time:    scale.NewTime(testutil.Mainshock, testutil.Mainshock, scale.PixelsPerMinute),
		CenterX: centerX,
		Radius:  func(float64) float64 { return 5 },
	})
	require.NoError(t, err)

	for _, e := range events {
		assert.Nil(t, e.Position)
	}
}

func TestPlaceErrors(t *testing.T) {
	ts := scale.NewTime(testutil.Mainshock, testutil.Mainshock.Add(time.Hour), scale.PixelsPerMinute)
	unit := func(float64) float64 { return 5 }

	_, err := Place(nil, Params{Time: ts, Radius: unit})
	assert.ErrorIs(t, err, ErrEmpty)

	events, _ := event.Normalize([]event.Record{
		{"time": "10 Oct 2025 - 6:14 PM", "magnitude": "4"},
		{"time": "10 Oct 2025 - 5:14 PM", "magnitude": "5"},
	}, event.DefaultColumns())

	_, err = Place(events, Params{Time: ts})
	assert.Error(t, err)

	events[0], events[1] = events[1], events[0]
	_, err = Place(events, Params{Time: ts, Radius: unit})
	assert.ErrorIs(t, err, ErrUnsorted)

	events[0], events[1] = events[1], events[0]
	_, err = Place(events, Params{Time: ts, Radius: func(float64) float64 { return math.NaN() }})
	assert.Error(t, err)
}
