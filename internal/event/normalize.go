package event

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DropReason says why a record was left out of the normalized sequence.
type DropReason string

const (
	// DropTime marks a record whose time column is missing or unparseable.
	DropTime DropReason = "time"

	// DropMagnitude marks a record whose magnitude is missing or not a finite number.
	DropMagnitude DropReason = "magnitude"
)

// Drop describes one filtered record.
type Drop struct {
	Seq    int        `json:"seq"`
	Reason DropReason `json:"reason"`
	Value  string     `json:"value"`
}

// Report summarizes a normalization pass.
type Report struct {
	Total int    `json:"total"`
	Kept  int    `json:"kept"`
	Drops []Drop `json:"drops,omitempty"`
}

// Dropped returns the number of filtered records.
func (r Report) Dropped() int {
	return len(r.Drops)
}

// DroppedBy returns the number of records filtered for the given reason.
func (r Report) DroppedBy(reason DropReason) int {
	n := 0
	for _, d := range r.Drops {
		if d.Reason == reason {
			n++
		}
	}
	return n
}

// Normalize annotates each record with its instant, filters the records that
// cannot be placed, and sorts the survivors by instant.
//
// The sort is stable: records sharing an instant keep their input order.
// Normalize never fails; an empty result is reported through Report.Kept and
// must be handled by the caller before any scale is built.
func Normalize(records []Record, cols Columns) ([]Event, Report) {
	report := Report{Total: len(records)}
	events := make([]Event, 0, len(records))

	for seq, rec := range records {
		rawTime := strings.TrimSpace(rec[cols.Time])
		instant, ok := ParseInstant(rawTime)
		if !ok {
			report.Drops = append(report.Drops, Drop{Seq: seq, Reason: DropTime, Value: rawTime})
			continue
		}

		rawMag := strings.TrimSpace(rec[cols.Magnitude])
		mag, ok := parseMagnitude(rawMag)
		if !ok {
			report.Drops = append(report.Drops, Drop{Seq: seq, Reason: DropMagnitude, Value: rawMag})
			continue
		}

		events = append(events, Event{
			ID:        NewID(seq, rawTime, rawMag),
			Seq:       seq,
			RawTime:   rawTime,
			Magnitude: mag,
			Instant:   instant,
			Fields:    rec,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Instant.Before(events[j].Instant)
	})

	report.Kept = len(events)
	return events, report
}

func parseMagnitude(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Span returns the first and last instant of a sorted event slice.
// The slice must be non-empty.
func Span(events []Event) (first, last time.Time) {
	return events[0].Instant, events[len(events)-1].Instant
}

// MagnitudeRange returns the smallest and largest magnitude in events.
// The slice must be non-empty.
func MagnitudeRange(events []Event) (lo, hi float64) {
	lo, hi = events[0].Magnitude, events[0].Magnitude
	for _, e := range events[1:] {
		lo = math.Min(lo, e.Magnitude)
		hi = math.Max(hi, e.Magnitude)
	}
	return lo, hi
}
