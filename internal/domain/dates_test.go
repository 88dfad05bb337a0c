package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_KeepsLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	late := time.Date(2025, 1, 31, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), DateOf(late))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-02-28 ")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", FormatDate(d))

	_, err = ParseDate("28/02/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(day("2025-03-01"), day("2025-03-01")))
	assert.Equal(t, 9, DaysBetween(day("2025-03-01"), day("2025-03-10")))
	assert.Equal(t, -3, DaysBetween(day("2025-03-04"), day("2025-03-01")))
	// Across a leap day.
	assert.Equal(t, 2, DaysBetween(day("2024-02-28"), day("2024-03-01")))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, day("2025-03-01"), AddDays(day("2025-02-28"), 1))
	assert.Equal(t, day("2024-12-31"), AddDays(day("2025-01-01"), -1))
}

func TestMonthBounds(t *testing.T) {
	assert.Equal(t, day("2024-02-01"), StartOfMonth(day("2024-02-17")))
	assert.Equal(t, day("2024-02-29"), EndOfMonth(day("2024-02-17")))
}
