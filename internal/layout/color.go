package layout

import (
	"strings"

	"bigcal/internal/event"
)

// DefaultColor is the built-in fallback when nothing else applies.
const DefaultColor = "#3788d8"

type PaletteEntry struct {
	Key   string
	Name  string
	Color string
}

// Palette is the fixed event color table, keyed "1" through "11".
var Palette = []PaletteEntry{
	{Key: "1", Name: "Lavender", Color: "#a4bdfc"},
	{Key: "2", Name: "Sage", Color: "#7ae7bf"},
	{Key: "3", Name: "Grape", Color: "#dbadff"},
	{Key: "4", Name: "Flamingo", Color: "#ff887c"},
	{Key: "5", Name: "Banana", Color: "#fbd75b"},
	{Key: "6", Name: "Tangerine", Color: "#ffb878"},
	{Key: "7", Name: "Peacock", Color: "#46d6db"},
	{Key: "8", Name: "Graphite", Color: "#e1e1e1"},
	{Key: "9", Name: "Blueberry", Color: "#5484ed"},
	{Key: "10", Name: "Basil", Color: "#51b749"},
	{Key: "11", Name: "Tomato", Color: "#dc2127"},
}

var paletteByKey = func() map[string]PaletteEntry {
	m := make(map[string]PaletteEntry, len(Palette))
	for _, p := range Palette {
		m[p.Key] = p
	}
	return m
}()

// PaletteColor looks up a palette key.
func PaletteColor(key string) (string, bool) {
	p, ok := paletteByKey[strings.TrimSpace(key)]
	return p.Color, ok
}

// ResolveColor picks the display color of e: a known palette key wins, then
// the source calendar color, then fallback. An empty fallback means
// DefaultColor.
func ResolveColor(e *event.Event, fallback string) string {
	if fallback == "" {
		fallback = DefaultColor
	}
	if e == nil {
		return fallback
	}
	if key, ok := e.ColorKey.Get(); ok {
		if color, ok := PaletteColor(key); ok {
			return color
		}
	}
	if color, ok := e.SourceColor.Get(); ok && strings.TrimSpace(color) != "" {
		return color
	}
	return fallback
}
