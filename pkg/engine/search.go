package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/cases"

	"github.com/otherjamesbrown/mintel-cli/pkg/dataset"
	mterrors "github.com/otherjamesbrown/mintel-cli/pkg/errors"
	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
	"github.com/otherjamesbrown/mintel-cli/pkg/observability"
	"github.com/otherjamesbrown/mintel-cli/pkg/temporal"
)

// Scoring weights for keyword matches.
const (
	scoreDateMatch   = 10
	scoreTitle       = 2
	scoreParticipant = 1
	scoreTranscript  = 1
)

const defaultSearchLimit = 10

// calendarSource marks results merged in from the calendar service.
const calendarSource = "calendar"

// Result is one scored search hit.
type Result struct {
	Meeting dataset.MeetingRecord `json:"meeting"`
	Score   int                   `json:"score"`
}

// SearchOutput is the full response for one search query.
type SearchOutput struct {
	RequestID string             `json:"request_id"`
	Query     string             `json:"query"`
	Interval  *temporal.Interval `json:"interval,omitempty"`
	Results   []Result           `json:"results"`

	// Upcoming holds future-dated results, earliest first. Populated
	// only when the resolved interval covers the present moment.
	Upcoming []Result `json:"upcoming,omitempty"`
}

// fold lowercases for matching using full Unicode case folding.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Search runs a query. A query containing a date phrase filters by the
// resolved interval and sorts newest first; otherwise keywords score
// against titles, participants, and transcripts.
func (e *Engine) Search(ctx context.Context, query string, limit int) (*SearchOutput, error) {
	ctx, requestID := e.requestContext(ctx)
	ctx, span := observability.StartSpan(ctx, "engine.search",
		attribute.String("query", query),
	)
	defer span.End()

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty: %w", mterrors.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	start := time.Now()
	ds := e.cache.Get(ctx)

	out := &SearchOutput{RequestID: requestID, Query: query}

	path := "keyword"
	if interval, ok := e.resolver.Resolve(query); ok {
		path = "date"
		out.Interval = &interval
		e.searchByDate(ctx, ds, interval, limit, out)
	} else {
		e.searchByKeyword(ds, query, limit, out)
	}

	e.log.WithContext(ctx).Debug("search complete",
		logging.F("path", path),
		logging.F("results", len(out.Results)),
		logging.F("upcoming", len(out.Upcoming)),
		logging.F("elapsed", time.Since(start)),
	)
	if e.metrics != nil {
		e.metrics.SearchesTotal.WithLabelValues(path).Inc()
		e.metrics.SearchSeconds.Observe(time.Since(start).Seconds())
		e.metrics.SearchResults.Observe(float64(len(out.Results) + len(out.Upcoming)))
	}
	return out, nil
}

// searchByDate filters meetings to the interval. Every match carries
// the same fixed score; recency decides the order.
func (e *Engine) searchByDate(ctx context.Context, ds *dataset.Dataset, interval temporal.Interval, limit int, out *SearchOutput) {
	loc := e.resolver.Location()

	var results []Result
	for _, m := range ds.MeetingsInOrder() {
		if interval.Contains(m.Date.In(loc)) {
			results = append(results, Result{Meeting: m, Score: scoreDateMatch})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Meeting.Date.After(results[j].Meeting.Date)
	})
	if len(results) > limit {
		results = results[:limit]
	}

	now := e.now().In(loc)
	if !interval.Contains(now) {
		out.Results = results
		return
	}

	// The interval covers the present: merge scheduled calendar events
	// and split into past and upcoming.
	results = append(results, e.calendarResults(ctx, interval)...)

	var past, upcoming []Result
	for _, r := range results {
		if r.Meeting.Date.In(loc).Before(now) {
			past = append(past, r)
		} else {
			upcoming = append(upcoming, r)
		}
	}

	sort.SliceStable(past, func(i, j int) bool {
		return past[i].Meeting.Date.After(past[j].Meeting.Date)
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Meeting.Date.Before(upcoming[j].Meeting.Date)
	})

	out.Results = past
	out.Upcoming = upcoming
}

// calendarResults fetches scheduled events for the interval. Failures
// log and degrade to no events.
func (e *Engine) calendarResults(ctx context.Context, interval temporal.Interval) []Result {
	events, err := e.calendar.UpcomingEvents(ctx, interval)
	if err != nil {
		e.log.WithContext(ctx).Warn("calendar unavailable", logging.Err(err))
		return nil
	}

	loc := e.resolver.Location()
	var results []Result
	for _, ev := range events {
		if !interval.Contains(ev.Date.In(loc)) {
			continue
		}
		results = append(results, Result{
			Meeting: dataset.MeetingRecord{
				ID:           "calendar_" + ev.ID,
				Title:        ev.Title,
				Date:         ev.Date.UTC(),
				Participants: ev.Participants,
				Source:       calendarSource,
			},
			Score: scoreDateMatch,
		})
	}
	return results
}

// searchByKeyword scores every meeting against the query. Zero scores
// drop out; ties keep snapshot insertion order.
func (e *Engine) searchByKeyword(ds *dataset.Dataset, query string, limit int, out *SearchOutput) {
	needle := fold(query)

	var results []Result
	for _, m := range ds.MeetingsInOrder() {
		score := 0
		if strings.Contains(fold(m.Title), needle) {
			score += scoreTitle
		}
		for _, p := range m.Participants {
			if strings.Contains(fold(p), needle) {
				score += scoreParticipant
			}
		}
		if tr, ok := ds.Transcripts[m.ID]; ok {
			if strings.Contains(fold(tr.Content), needle) {
				score += scoreTranscript
			}
		}
		if score > 0 {
			results = append(results, Result{Meeting: m, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	out.Results = results
}
