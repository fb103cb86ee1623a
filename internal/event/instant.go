package event

import (
	"regexp"
	"strconv"
	"time"
)

// InstantLayout is the Go layout equivalent of the catalog time format,
// used when an instant is printed back in catalog form.
const InstantLayout = "2 Jan 2006 - 3:04 PM"

var instantPattern = regexp.MustCompile(`^\s*(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})\s*-\s*(\d{1,2}):(\d{2})\s*(AM|PM)\s*$`)

// months maps the three-letter month prefix to its calendar month.
// Matching is case-sensitive.
var months = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// ParseInstant parses catalog time text such as "10 Oct 2025 - 5:14 PM".
//
// Only the first three characters of the month token are significant, so
// "Oct" and "October" both resolve to October. The result is a naive wall
// clock value stored in UTC with zero seconds.
//
// Returns false when the text does not match the format or does not name a
// real calendar point (hour outside 1-12, minute above 59, or a day that
// does not exist in that month).
func ParseInstant(text string) (time.Time, bool) {
	m := instantPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	if len(m[2]) < 3 {
		return time.Time{}, false
	}
	month, ok := months[m[2][:3]]
	if !ok {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	if hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, false
	}
	hour = to24Hour(hour, m[6] == "PM")

	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days; a changed date means the input
	// named a day that does not exist.
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// to24Hour converts a 1-12 clock hour to 0-23.
func to24Hour(hour int, pm bool) int {
	switch {
	case hour == 12 && !pm:
		return 0
	case hour == 12 && pm:
		return 12
	case pm:
		return hour + 12
	default:
		return hour
	}
}

// FormatInstant renders an instant in catalog form.
func FormatInstant(t time.Time) string {
	return t.Format(InstantLayout)
}
