// Package reveal answers which events are visible at a scroll offset.
//
// Viewport state is passed in explicitly. Events appear once their target y
// passes a threshold line drawn at a fixed fraction of the viewport height.
package reveal

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/roach88/aftershock/internal/event"
	"github.com/roach88/aftershock/internal/timeline"
)

// Threshold returns the chart y of the reveal line for a scroll offset.
// scrollOffset is the distance scrolled past the top of the chart.
func Threshold(scrollOffset, viewportHeight, fraction float64) float64 {
	return scrollOffset + viewportHeight*fraction
}

// Count returns how many events have a target y at or above threshold.
// Events must be ordered by non-decreasing target y, as a Document's are.
func Count(events []event.Event, threshold float64) int {
	return sort.Search(len(events), func(i int) bool {
		return events[i].TargetY > threshold
	})
}

// State is the reveal state of a document at one threshold.
type State struct {
	Threshold float64
	Revealed  int
	Total     int

	// Instant is the time at the threshold, clamped to the chart.
	Instant time.Time
	Elapsed time.Duration
	Label   string

	// Latest is the most recently revealed event, nil when none is visible.
	Latest *event.Event
}

// At computes the reveal state of doc at threshold.
func At(doc *timeline.Document, threshold float64) State {
	y := math.Max(0, math.Min(threshold, doc.Scale.Height))
	instant := doc.Scale.Invert(y)
	elapsed := instant.Sub(doc.Scale.Start)

	st := State{
		Threshold: threshold,
		Revealed:  Count(doc.Events, threshold),
		Total:     len(doc.Events),
		Instant:   instant,
		Elapsed:   elapsed,
		Label:     ElapsedLabel(elapsed),
	}
	if st.Revealed > 0 {
		st.Latest = &doc.Events[st.Revealed-1]
	}
	return st
}

// ElapsedLabel formats a duration as "1d 3h 05m", dropping the day part
// when it is zero. Seconds are truncated.
func ElapsedLabel(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	days, minutes := minutes/(24*60), minutes%(24*60)
	hours, minutes := minutes/60, minutes%60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %02dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}
