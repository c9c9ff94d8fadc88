package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestListEventsForYearAttachesSeriesRule(t *testing.T) {
	var lookups atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/work/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		writeJSON(w, map[string]any{
			"items": []map[string]any{
				{"id": "standup_1", "summary": "Standup", "recurringEventId": "standup", "start": map[string]string{"date": "2024-01-01"}},
				{"id": "standup_2", "summary": "Standup", "recurringEventId": "standup", "start": map[string]string{"date": "2024-01-08"}},
				{"id": "gone_1", "summary": "Gone", "recurringEventId": "gone", "start": map[string]string{"date": "2024-01-09"}},
				{"id": "once", "summary": "Once", "start": map[string]string{"date": "2024-01-10"}},
			},
		})
	})
	mux.HandleFunc("/calendars/work/events/standup", func(w http.ResponseWriter, r *http.Request) {
		lookups.Add(1)
		writeJSON(w, map[string]any{"recurrence": []string{"RRULE:FREQ=WEEKLY;BYDAY=MO"}})
	})
	mux.HandleFunc("/calendars/work/events/gone", func(w http.ResponseWriter, r *http.Request) {
		lookups.Add(1)
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	})

	c := newTestClient(t, mux)
	items, err := c.ListEventsForYear(context.Background(), "work", 2024, time.UTC)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;BYDAY=MO"}, items[0].Recurrence)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;BYDAY=MO"}, items[1].Recurrence)
	assert.Empty(t, items[2].Recurrence)
	assert.Empty(t, items[3].Recurrence)
	assert.Equal(t, int32(2), lookups.Load())
}

func TestListEventsForYearRequiresCalendar(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())
	_, err := c.ListEventsForYear(context.Background(), "", 2024, time.UTC)
	assert.ErrorContains(t, err, "calendarID is required")
}
