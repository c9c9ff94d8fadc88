package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")
	c := Default()
	c.CalendarMeta["primary"] = CalendarMeta{Name: "Me", Color: "#123456", Primary: true, Selected: true}
	c.PutYear(2024, &YearCache{
		CalendarOrder: []string{"primary"},
		Calendars: map[string][]*calendar.Event{
			"primary": {{Id: "e1", Summary: "Trip", Start: &calendar.EventDateTime{Date: "2024-05-01"}}},
		},
		SyncedAt: "2024-05-01T10:00:00Z",
	})
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	y, ok := got.Year(2024)
	require.True(t, ok)
	assert.Equal(t, []string{"primary"}, y.CalendarOrder)
	require.Len(t, y.Calendars["primary"], 1)
	assert.Equal(t, "Trip", y.Calendars["primary"][0].Summary)
	assert.Equal(t, "#123456", got.CalendarMeta["primary"].Color)

	_, ok = got.Year(2023)
	assert.False(t, ok)
}

func TestLoadDiscardsCorruptOrOldCache(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{"), 0o600))
	c, err := Load(corrupt)
	require.NoError(t, err)
	assert.Empty(t, c.Years)

	old := filepath.Join(dir, "old.json")
	require.NoError(t, os.WriteFile(old, []byte(`{"version":1,"calendars":{}}`), 0o600))
	c, err = Load(old)
	require.NoError(t, err)
	assert.Equal(t, version, c.Version)
}

func TestFresh(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 10, 0, 0, time.UTC)
	y := &YearCache{SyncedAt: "2024-05-01T10:00:00Z"}
	assert.True(t, y.Fresh(15*time.Minute, now))
	assert.False(t, y.Fresh(5*time.Minute, now))
	assert.False(t, (&YearCache{}).Fresh(time.Hour, now))
	assert.False(t, (*YearCache)(nil).Fresh(time.Hour, now))
}

func TestFreshFalseWithFailedCalendars(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 10, 0, 0, time.UTC)
	y := &YearCache{SyncedAt: "2024-05-01T10:00:00Z", Failed: []string{"work"}}
	assert.False(t, y.Fresh(15*time.Minute, now))
}
