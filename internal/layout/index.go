package layout

import (
	"sort"
	"time"

	"bigcal/internal/event"
)

// DateIndex buckets events by the dates they occupy. It is read-only once
// built; buckets share the caller's event pointers.
type DateIndex struct {
	buckets map[string][]*event.Event
	keys    []string
}

// GroupByDate appends each event under every date it occupies in loc,
// keeping input order within a bucket.
func GroupByDate(events []*event.Event, loc *time.Location) *DateIndex {
	idx := &DateIndex{buckets: map[string][]*event.Event{}}
	for _, e := range events {
		if e == nil {
			continue
		}
		for _, d := range e.Dates(loc) {
			idx.add(d.Key(), e)
		}
	}
	sort.Strings(idx.keys)
	return idx
}

func (idx *DateIndex) add(key string, e *event.Event) {
	if _, ok := idx.buckets[key]; !ok {
		idx.keys = append(idx.keys, key)
	}
	idx.buckets[key] = append(idx.buckets[key], e)
}

// Get returns the events under a YYYY-MM-DD key. The slice must not be
// modified.
func (idx *DateIndex) Get(key string) []*event.Event {
	if idx == nil {
		return nil
	}
	return idx.buckets[key]
}

func (idx *DateIndex) GetDate(d event.Date) []*event.Event {
	return idx.Get(d.Key())
}

// Keys returns the populated date keys in ascending order.
func (idx *DateIndex) Keys() []string {
	if idx == nil {
		return nil
	}
	return append([]string(nil), idx.keys...)
}

func (idx *DateIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.keys)
}

// Refs returns pointers into events, for callers holding a value slice.
func Refs(events []event.Event) []*event.Event {
	out := make([]*event.Event, len(events))
	for i := range events {
		out[i] = &events[i]
	}
	return out
}
