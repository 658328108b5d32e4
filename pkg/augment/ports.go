// Package augment defines optional enrichment capabilities for query
// results: upcoming calendar events, related-meeting similarity, and
// meeting categorization. Each capability is a small port with a no-op
// default, so the engine works identically with none, some, or all of
// them configured.
package augment

import (
	"context"
	"time"

	"github.com/otherjamesbrown/mintel-cli/pkg/temporal"
)

// CalendarEvent is one scheduled event from the calendar service.
type CalendarEvent struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Participants []string  `json:"participants,omitempty"`
	Location     string    `json:"location,omitempty"`
}

// CalendarProvider fetches scheduled events inside an interval.
type CalendarProvider interface {
	UpcomingEvents(ctx context.Context, interval temporal.Interval) ([]CalendarEvent, error)
}

// SimilarityProvider finds meetings related to a given meeting.
type SimilarityProvider interface {
	RelatedMeetings(ctx context.Context, meetingID string, limit int) ([]string, error)
}

// Categorizer assigns category labels to a meeting from its title and notes.
type Categorizer interface {
	Categorize(ctx context.Context, title, content string) ([]string, error)
}

// NopCalendar is a CalendarProvider that returns no events.
type NopCalendar struct{}

func (NopCalendar) UpcomingEvents(ctx context.Context, interval temporal.Interval) ([]CalendarEvent, error) {
	return nil, nil
}

// NopSimilarity is a SimilarityProvider that returns no related meetings.
type NopSimilarity struct{}

func (NopSimilarity) RelatedMeetings(ctx context.Context, meetingID string, limit int) ([]string, error) {
	return nil, nil
}

// NopCategorizer is a Categorizer that assigns no categories.
type NopCategorizer struct{}

func (NopCategorizer) Categorize(ctx context.Context, title, content string) ([]string, error) {
	return nil, nil
}
