// Package engine executes searches and analyses over a normalized
// meeting dataset.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/otherjamesbrown/mintel-cli/pkg/augment"
	"github.com/otherjamesbrown/mintel-cli/pkg/dataset"
	mterrors "github.com/otherjamesbrown/mintel-cli/pkg/errors"
	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
	"github.com/otherjamesbrown/mintel-cli/pkg/observability"
	"github.com/otherjamesbrown/mintel-cli/pkg/temporal"
)

// Options configures an Engine. Cache and Resolver are required; the
// augmentation ports default to no-ops and Metrics may be nil.
type Options struct {
	Cache       *dataset.Cache
	Resolver    *temporal.Resolver
	Calendar    augment.CalendarProvider
	Similarity  augment.SimilarityProvider
	Categorizer augment.Categorizer
	Logger      logging.Logger
	Metrics     *observability.QueryMetrics
}

// Engine answers queries over the cached dataset.
type Engine struct {
	cache       *dataset.Cache
	resolver    *temporal.Resolver
	calendar    augment.CalendarProvider
	similarity  augment.SimilarityProvider
	categorizer augment.Categorizer
	log         logging.Logger
	metrics     *observability.QueryMetrics
	now         func() time.Time
}

// New creates an Engine, filling unset augmentation ports with no-ops.
func New(opts Options) *Engine {
	e := &Engine{
		cache:       opts.Cache,
		resolver:    opts.Resolver,
		calendar:    opts.Calendar,
		similarity:  opts.Similarity,
		categorizer: opts.Categorizer,
		log:         opts.Logger,
		metrics:     opts.Metrics,
		now:         time.Now,
	}
	if e.calendar == nil {
		e.calendar = augment.NopCalendar{}
	}
	if e.similarity == nil {
		e.similarity = augment.NopSimilarity{}
	}
	if e.categorizer == nil {
		e.categorizer = augment.NopCategorizer{}
	}
	if e.log == nil {
		e.log = logging.NewNopLogger()
	}
	return e
}

// requestContext attaches a fresh request id for log correlation.
func (e *Engine) requestContext(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, logging.RequestIDKey, id), id
}

// MeetingDetails is a meeting with its lookups resolved: document
// count, transcript availability, and any augmentation results.
type MeetingDetails struct {
	Meeting       dataset.MeetingRecord `json:"meeting"`
	DocumentCount int                   `json:"document_count"`
	HasTranscript bool                  `json:"has_transcript"`
	Categories    []string              `json:"categories,omitempty"`
	Related       []string              `json:"related,omitempty"`
}

// relatedLimit bounds the similarity lookup for meeting details.
const relatedLimit = 5

// MeetingByID returns details for one meeting.
func (e *Engine) MeetingByID(ctx context.Context, id string) (*MeetingDetails, error) {
	ctx, _ = e.requestContext(ctx)
	ctx, span := observability.StartSpan(ctx, "engine.meeting")
	defer span.End()

	ds := e.cache.Get(ctx)
	meeting, ok := ds.Meetings[id]
	if !ok {
		return nil, fmt.Errorf("meeting %q: %w", id, mterrors.ErrNotFound)
	}

	details := &MeetingDetails{Meeting: meeting}
	if doc, ok := ds.Documents[id]; ok && doc.MeetingID == id {
		details.DocumentCount = 1
	}
	_, details.HasTranscript = ds.Transcripts[id]

	// Augmentation failures degrade to missing fields, never to a
	// failed lookup.
	doc := ds.Documents[id]
	if cats, err := e.categorizer.Categorize(ctx, meeting.Title, doc.Content); err != nil {
		e.log.WithContext(ctx).Warn("categorizer unavailable", logging.Err(err))
	} else {
		details.Categories = cats
	}

	if related, err := e.similarity.RelatedMeetings(ctx, id, relatedLimit); err != nil {
		e.log.WithContext(ctx).Warn("similarity unavailable", logging.Err(err))
	} else {
		details.Related = related
	}

	return details, nil
}

// TranscriptByID returns the transcript for a meeting.
func (e *Engine) TranscriptByID(ctx context.Context, id string) (*dataset.TranscriptRecord, error) {
	ctx, _ = e.requestContext(ctx)

	ds := e.cache.Get(ctx)
	tr, ok := ds.Transcripts[id]
	if !ok {
		return nil, fmt.Errorf("transcript for meeting %q: %w", id, mterrors.ErrNotFound)
	}
	return &tr, nil
}

// DocumentsByMeeting returns all documents attached to a meeting.
func (e *Engine) DocumentsByMeeting(ctx context.Context, id string) ([]dataset.DocumentRecord, error) {
	ctx, _ = e.requestContext(ctx)

	ds := e.cache.Get(ctx)
	var docs []dataset.DocumentRecord
	for _, mid := range ds.IDs {
		if doc, ok := ds.Documents[mid]; ok && doc.MeetingID == id {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("documents for meeting %q: %w", id, mterrors.ErrNotFound)
	}
	return docs, nil
}

// SnapshotInfo summarizes the currently loaded dataset.
type SnapshotInfo struct {
	Meetings    int       `json:"meetings"`
	Documents   int       `json:"documents"`
	Transcripts int       `json:"transcripts"`
	LastUpdated time.Time `json:"last_updated"`
}

// Info returns counts for the loaded snapshot.
func (e *Engine) Info(ctx context.Context) SnapshotInfo {
	ds := e.cache.Get(ctx)
	return SnapshotInfo{
		Meetings:    ds.Len(),
		Documents:   len(ds.Documents),
		Transcripts: len(ds.Transcripts),
		LastUpdated: ds.LastUpdated,
	}
}

// Reload drops the cached dataset so the next query re-reads the
// snapshot file.
func (e *Engine) Reload() {
	e.cache.Invalidate()
}

// Resolver exposes the engine's temporal resolver for commands that
// resolve phrases without searching.
func (e *Engine) Resolver() *temporal.Resolver {
	return e.resolver
}
