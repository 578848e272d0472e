package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = ParseClock("9h30")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:30", FormatClock(1410))
}

func TestAddMinutes(t *testing.T) {
	end, err := AddMinutes("09:00", 45)
	require.NoError(t, err)
	assert.Equal(t, "09:45", end)

	// Past midnight the result clamps to the last minute of the day.
	end, err = AddMinutes("23:45", 45)
	require.NoError(t, err)
	assert.Equal(t, "23:59", end)

	_, err = ParseClock(end)
	require.NoError(t, err)
}

func TestIsWeekend(t *testing.T) {
	saturday, err := ParseDate("2026-09-05")
	require.NoError(t, err)
	monday, err := ParseDate("2026-09-07")
	require.NoError(t, err)

	assert.True(t, IsWeekend(saturday))
	assert.False(t, IsWeekend(monday))
}

func TestDateOrderingMatchesStringOrdering(t *testing.T) {
	earlier, err := ParseDate("2026-01-31")
	require.NoError(t, err)
	later, err := ParseDate("2026-02-01")
	require.NoError(t, err)

	assert.True(t, earlier.Before(later))
	assert.True(t, FormatDate(earlier) < FormatDate(later))
	assert.Equal(t, "2026-01-31", earlier.Format(time.DateOnly))
}
