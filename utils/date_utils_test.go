package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-27")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("27/10/2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"one night", "2025-10-10", "2025-10-11", 1},
		{"two nights", "2025-10-10", "2025-10-12", 2},
		{"month boundary", "2025-10-30", "2025-11-02", 3},
		{"zero-length range", "2025-10-10", "2025-10-10", 0},
		{"inverted range", "2025-10-12", "2025-10-10", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Nights(mustDate(t, tc.checkIn), mustDate(t, tc.checkOut))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNightCovered(t *testing.T) {
	checkIn := mustDate(t, "2025-10-10")
	checkOut := mustDate(t, "2025-10-12")

	assert.True(t, NightCovered(checkIn, checkOut, mustDate(t, "2025-10-10")))
	assert.True(t, NightCovered(checkIn, checkOut, mustDate(t, "2025-10-11")))
	// Checkout day's night is outside the stay.
	assert.False(t, NightCovered(checkIn, checkOut, mustDate(t, "2025-10-12")))
	assert.False(t, NightCovered(checkIn, checkOut, mustDate(t, "2025-10-09")))
}

func TestTruncate(t *testing.T) {
	in := time.Date(2025, 10, 27, 14, 30, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), Truncate(in))
}
