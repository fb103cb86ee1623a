// Package testutil provides deterministic aftershock catalogs for tests.
//
// Every generator here is seeded explicitly, so the same call always returns
// the same records. Layout determinism tests and golden files rely on this.
package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/aftershock/internal/event"
)

// Mainshock is the reference instant used by fixtures: 10 Oct 2025 - 5:14 PM.
var Mainshock = time.Date(2025, 10, 10, 17, 14, 0, 0, time.UTC)

// Sequence builds a synthetic catalog of n records that starts with a M7.4
// mainshock at start.
//
// Gaps between events grow with the event index, so the sequence is dense in
// the first hours and sparse later, the way aftershock rates decay.
// Magnitudes follow a Gutenberg-Richter tail above M2.5 (b = 1), capped at 6.8.
func Sequence(seed int64, n int, start time.Time) []event.Record {
	rng := rand.New(rand.NewSource(seed))
	records := make([]event.Record, 0, n)

	at := start
	for k := 0; k < n; k++ {
		mag := 7.4
		if k > 0 {
			gap := rng.ExpFloat64() * (1 + 0.5*float64(k))
			at = at.Add(time.Duration(math.Ceil(gap)) * time.Minute)
			mag = math.Min(2.5+rng.ExpFloat64()/math.Ln10, 6.8)
		}
		records = append(records, event.Record{
			"time":      event.FormatInstant(at),
			"magnitude": strconv.FormatFloat(math.Round(mag*10)/10, 'f', 1, 64),
			"place":     fmt.Sprintf("%d km E of Manay", 10+rng.Intn(60)),
		})
	}
	return records
}

// Burst builds n records that all share one instant, with magnitudes
// stepping up from 3.0 by 0.1.
func Burst(n int, at time.Time) []event.Record {
	records := make([]event.Record, n)
	for i := range records {
		records[i] = event.Record{
			"time":      event.FormatInstant(at),
			"magnitude": strconv.FormatFloat(3.0+0.1*float64(i), 'f', 1, 64),
		}
	}
	return records
}

// CSV renders records as delimited text with a header row. Columns are
// written in the order given; missing values become empty cells.
func CSV(records []event.Record, delim rune, columns ...string) string {
	var b strings.Builder
	sep := string(delim)
	b.WriteString(strings.Join(columns, sep))
	b.WriteByte('\n')
	for _, rec := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = rec[col]
		}
		b.WriteString(strings.Join(cells, sep))
		b.WriteByte('\n')
	}
	return b.String()
}
