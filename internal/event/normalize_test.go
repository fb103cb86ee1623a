package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(tm, mag string) Record {
	return Record{"time": tm, "magnitude": mag, "place": "offshore"}
}

func TestNormalizeFiltersAndSorts(t *testing.T) {
	records := []Record{
		rec("10 Oct 2025 - 9:30 PM", "4.1"),
		rec("garbage", "5.0"),
		rec("10 Oct 2025 - 5:14 PM", "7.4"),
		rec("31 Feb 2025 - 1:00 AM", "3.0"),
		rec("10 Oct 2025 - 6:02 PM", "not-a-number"),
		rec("10 Oct 2025 - 7:45 PM", "5.2"),
	}

	events, report := Normalize(records, DefaultColumns())

	assert.Equal(t, 6, report.Total)
	assert.Equal(t, 3, report.Kept)
	assert.Equal(t, 3, report.Dropped())
	assert.Equal(t, 2, report.DroppedBy(DropTime))
	assert.Equal(t, 1, report.DroppedBy(DropMagnitude))

	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Instant.Before(events[i-1].Instant), "events must be sorted by instant")
	}
	assert.Equal(t, 7.4, events[0].Magnitude)
	assert.Equal(t, 5.2, events[1].Magnitude)
	assert.Equal(t, 4.1, events[2].Magnitude)
}

func TestNormalizeStableForEqualInstants(t *testing.T) {
	records := []Record{
		rec("10 Oct 2025 - 6:00 PM", "3.0"),
		rec("10 Oct 2025 - 5:00 PM", "4.0"),
		rec("10 Oct 2025 - 6:00 PM", "3.5"),
		rec("10 Oct 2025 - 6:00 PM", "3.2"),
	}

	events, _ := Normalize(records, DefaultColumns())
	require.Len(t, events, 4)

	var seqs []int
	for _, e := range events {
		seqs = append(seqs, e.Seq)
	}
	assert.Equal(t, []int{1, 0, 2, 3}, seqs)
}

func TestNormalizeKeepsSourceFields(t *testing.T) {
	records := []Record{rec("10 Oct 2025 - 5:14 PM", "7.4")}

	events, _ := Normalize(records, DefaultColumns())
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "offshore", e.Fields["place"])
	assert.Equal(t, "10 Oct 2025 - 5:14 PM", e.Fields["time"])
	assert.Equal(t, "7.4", e.Fields["magnitude"])
	assert.Nil(t, e.Position, "position is set only by layout")
}

func TestNormalizeCustomColumns(t *testing.T) {
	records := []Record{{"date & time": "10 Oct 2025 - 5:14 PM", "mag": "6.0"}}

	events, report := Normalize(records, Columns{Time: "date & time", Magnitude: "mag"})
	assert.Equal(t, 1, report.Kept)
	require.Len(t, events, 1)
	assert.Equal(t, 6.0, events[0].Magnitude)
}

func TestNormalizeEmpty(t *testing.T) {
	events, report := Normalize(nil, DefaultColumns())
	assert.Empty(t, events)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0, report.Kept)
}

func TestNewIDDeterministic(t *testing.T) {
	a := NewID(3, "10 Oct 2025 - 5:14 PM", "7.4")
	b := NewID(3, "10 Oct 2025 - 5:14 PM", "7.4")
	c := NewID(4, "10 Oct 2025 - 5:14 PM", "7.4")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestSpanAndMagnitudeRange(t *testing.T) {
	events, _ := Normalize([]Record{
		rec("10 Oct 2025 - 5:14 PM", "7.4"),
		rec("11 Oct 2025 - 2:00 AM", "3.1"),
		rec("10 Oct 2025 - 8:00 PM", "4.8"),
	}, DefaultColumns())

	first, last := Span(events)
	assert.Equal(t, 17, first.Hour())
	assert.Equal(t, 11, last.Day())

	lo, hi := MagnitudeRange(events)
	assert.Equal(t, 3.1, lo)
	assert.Equal(t, 7.4, hi)
}
