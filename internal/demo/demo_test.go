package demo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	first := Generate(2024, time.UTC)
	second := Generate(2024, time.UTC)
	assert.Equal(t, first, second)
}

func TestGenerateShape(t *testing.T) {
	for _, year := range []int{2023, 2024, 2025, 2030} {
		events := Generate(year, time.UTC)
		require.GreaterOrEqual(t, len(events), 35, year)
		require.LessOrEqual(t, len(events), 50, year)

		seen := map[string]bool{}
		for _, e := range events {
			assert.True(t, strings.HasPrefix(e.ID, "demo-"), e.ID)
			assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
			seen[e.ID] = true
			assert.Equal(t, "1", e.ColorKey.OrEmpty())
			assert.Equal(t, year, e.StartDate(time.UTC).Year)

			if e.IsAllDay() {
				days := e.StartDate(time.UTC).DaysUntil(e.End.LocalDate(time.UTC))
				assert.GreaterOrEqual(t, days, 2)
				assert.LessOrEqual(t, days, 5)
				assert.True(t, e.IsMultiDay(time.UTC))
				continue
			}
			start := e.Start.Instant(time.UTC)
			d := e.End.Instant(time.UTC).Sub(start)
			assert.Contains(t, durations, d)
			assert.GreaterOrEqual(t, start.Hour(), 8)
			assert.LessOrEqual(t, start.Hour(), 17)
			assert.False(t, e.IsMultiDay(time.UTC))
		}
	}
}

func TestGenerateDiffersByYear(t *testing.T) {
	a := Generate(2024, time.UTC)
	b := Generate(2025, time.UTC)
	assert.NotEqual(t, a[0].ID, b[0].ID)
}
