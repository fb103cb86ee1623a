package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"afternoon", "10 Oct 2025 - 5:14 PM", time.Date(2025, 10, 10, 17, 14, 0, 0, time.UTC)},
		{"midnight", "10 Oct 2025 - 12:00 AM", time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)},
		{"noon", "10 Oct 2025 - 12:30 PM", time.Date(2025, 10, 10, 12, 30, 0, 0, time.UTC)},
		{"morning", "3 Jan 2024 - 9:05 AM", time.Date(2024, 1, 3, 9, 5, 0, 0, time.UTC)},
		{"late evening", "31 Dec 2024 - 11:59 PM", time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)},
		{"full month name", "11 October 2025 - 1:02 AM", time.Date(2025, 10, 11, 1, 2, 0, 0, time.UTC)},
		{"surrounding whitespace", "  10 Oct 2025 - 5:14 PM ", time.Date(2025, 10, 10, 17, 14, 0, 0, time.UTC)},
		{"leap day", "29 Feb 2024 - 6:00 AM", time.Date(2024, 2, 29, 6, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInstant(tt.text)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, 0, got.Second())
		})
	}
}

func TestParseInstantRejects(t *testing.T) {
	inputs := []string{
		"garbage",
		"",
		"10 oct 2025 - 5:14 PM",  // month match is case-sensitive
		"10 Okt 2025 - 5:14 PM",  // unknown month
		"10 Oct 2025 - 5:14 pm",  // meridiem is case-sensitive
		"10 Oct 2025 5:14 PM",    // missing separator
		"10 Oct 2025 - 13:14 PM", // hour outside the 12h clock
		"10 Oct 2025 - 0:14 AM",
		"10 Oct 2025 - 5:60 PM",
		"31 Feb 2025 - 5:14 PM", // day does not exist
		"0 Oct 2025 - 5:14 PM",
		"2025-10-10T17:14:00",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, ok := ParseInstant(in)
			assert.False(t, ok)
		})
	}
}

func TestTo24Hour(t *testing.T) {
	assert.Equal(t, 0, to24Hour(12, false))
	assert.Equal(t, 12, to24Hour(12, true))
	assert.Equal(t, 13, to24Hour(1, true))
	assert.Equal(t, 23, to24Hour(11, true))
	assert.Equal(t, 1, to24Hour(1, false))
	assert.Equal(t, 11, to24Hour(11, false))
}

func TestFormatInstantRoundTrip(t *testing.T) {
	in := "10 Oct 2025 - 5:14 PM"
	got, ok := ParseInstant(in)
	require.True(t, ok)
	assert.Equal(t, in, FormatInstant(got))
}
