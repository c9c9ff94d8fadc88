package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	year, err := ParseYear("", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2025, year)

	year, err = ParseYear(" 2019 ", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2019, year)

	year, err = ParseYear("next year", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2026, year)

	year, err = ParseYear("last year", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2024, year)

	_, err = ParseYear("0", now, time.UTC)
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	for input, want := range map[string]time.Month{
		"1":         time.January,
		"12":        time.December,
		"feb":       time.February,
		"September": time.September,
		" sept ":    time.September,
	} {
		got, err := ParseMonth(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	for _, input := range []string{"0", "13", "ju", "smarch", ""} {
		_, err := ParseMonth(input)
		assert.Error(t, err, input)
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("local")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = LoadLocation("Mars/Olympus")
	assert.Error(t, err)
}
