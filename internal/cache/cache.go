// Package cache persists fetched calendar data per year as JSON so views
// can render before the network answers.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"google.golang.org/api/calendar/v3"
)

const version = 2

type Cache struct {
	Version      int                     `json:"version"`
	CalendarMeta map[string]CalendarMeta `json:"calendar_meta"`
	Years        map[string]*YearCache   `json:"years"`
}

type CalendarMeta struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Primary  bool   `json:"primary"`
	Selected bool   `json:"selected"`
}

// YearCache holds the raw API events of one year per calendar.
// CalendarOrder keeps the calendar list order of the fetch. Failed lists
// calendars whose last fetch failed; their items are left from an earlier
// fetch.
type YearCache struct {
	CalendarOrder []string                     `json:"calendar_order"`
	Calendars     map[string][]*calendar.Event `json:"calendars"`
	Failed        []string                     `json:"failed,omitempty"`
	SyncedAt      string                       `json:"synced_at"`
}

func Default() *Cache {
	return &Cache{
		Version:      version,
		CalendarMeta: map[string]CalendarMeta{},
		Years:        map[string]*YearCache{},
	}
}

// Load reads the cache at path. A missing, unreadable or outdated cache
// yields an empty one.
func Load(path string) (*Cache, error) {
	// #nosec G304 -- path is controlled by the app cache location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return Default(), nil
	}
	if c.Version != version {
		return Default(), nil
	}
	ensureDefaults(&c)
	return &c, nil
}

func Save(path string, cache *Cache) error {
	if cache == nil {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func (c *Cache) Year(year int) (*YearCache, bool) {
	y, ok := c.Years[strconv.Itoa(year)]
	return y, ok && y != nil
}

func (c *Cache) PutYear(year int, y *YearCache) {
	c.Years[strconv.Itoa(year)] = y
}

// Fresh reports whether the year was fully synced less than ttl before now.
// A year with failed calendars is never fresh.
func (y *YearCache) Fresh(ttl time.Duration, now time.Time) bool {
	if y == nil || y.SyncedAt == "" || len(y.Failed) > 0 {
		return false
	}
	synced, err := time.Parse(time.RFC3339, y.SyncedAt)
	if err != nil {
		return false
	}
	return now.Sub(synced) < ttl
}

func ensureDefaults(cache *Cache) {
	if cache.CalendarMeta == nil {
		cache.CalendarMeta = map[string]CalendarMeta{}
	}
	if cache.Years == nil {
		cache.Years = map[string]*YearCache{}
	}
	for _, y := range cache.Years {
		if y != nil && y.Calendars == nil {
			y.Calendars = map[string][]*calendar.Event{}
		}
	}
}
