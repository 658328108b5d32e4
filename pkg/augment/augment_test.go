package augment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
	"github.com/otherjamesbrown/mintel-cli/pkg/temporal"
)

func TestCalendarClientUpcomingEvents(t *testing.T) {
	var gotAuth, gotStart, gotEnd string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/events", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotStart = r.URL.Query().Get("start")
		gotEnd = r.URL.Query().Get("end")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"events": []map[string]interface{}{
				{
					"id":           "ev-1",
					"title":        "Planning",
					"date":         "2025-11-14T10:00:00Z",
					"participants": []string{"Ada"},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewCalendarClient(srv.URL, time.Second,
		func() (string, error) { return "tok-123", nil },
		logging.NewNopLogger(), nil)

	interval := temporal.Interval{
		Start: time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 11, 16, 23, 59, 59, 0, time.UTC),
	}
	events, err := client.UpcomingEvents(context.Background(), interval)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "2025-11-10T00:00:00Z", gotStart)
	assert.Equal(t, "2025-11-16T23:59:59Z", gotEnd)
	require.Len(t, events, 1)
	assert.Equal(t, "Planning", events[0].Title)
	assert.Equal(t, []string{"Ada"}, events[0].Participants)
}

func TestSimilarityClientRelatedMeetings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/related", r.URL.Path)

		var req struct {
			MeetingID string `json:"meeting_id"`
			Limit     int    `json:"limit"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "m1", req.MeetingID)
		assert.Equal(t, 5, req.Limit)

		json.NewEncoder(w).Encode(map[string][]string{"related": {"m7", "m3"}})
	}))
	defer srv.Close()

	client := NewSimilarityClient(srv.URL, time.Second, logging.NewNopLogger(), nil)

	related, err := client.RelatedMeetings(context.Background(), "m1", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"m7", "m3"}, related)
}

func TestCategorizerClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Roadmap review", req.Title)

		json.NewEncoder(w).Encode(map[string][]string{"categories": {"planning", "product"}})
	}))
	defer srv.Close()

	client := NewCategorizerClient(srv.URL, time.Second, logging.NewNopLogger(), nil)

	cats, err := client.Categorize(context.Background(), "Roadmap review", "notes")
	require.NoError(t, err)
	assert.Equal(t, []string{"planning", "product"}, cats)
}

func TestClientNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewSimilarityClient(srv.URL, time.Second, logging.NewNopLogger(), nil)

	_, err := client.RelatedMeetings(context.Background(), "m1", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewSimilarityClient(srv.URL, time.Minute, logging.NewNopLogger(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.RelatedMeetings(ctx, "m1", 5)
	assert.Error(t, err)
}

func TestNopProviders(t *testing.T) {
	ctx := context.Background()

	events, err := NopCalendar{}.UpcomingEvents(ctx, temporal.Interval{})
	require.NoError(t, err)
	assert.Empty(t, events)

	related, err := NopSimilarity{}.RelatedMeetings(ctx, "m1", 5)
	require.NoError(t, err)
	assert.Empty(t, related)

	cats, err := NopCategorizer{}.Categorize(ctx, "t", "c")
	require.NoError(t, err)
	assert.Empty(t, cats)
}
