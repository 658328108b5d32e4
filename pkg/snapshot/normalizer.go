package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/otherjamesbrown/mintel-cli/pkg/dataset"
	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
)

const (
	defaultTitle       = "Untitled Meeting"
	defaultMeetingType = "meeting"
	documentType       = "meeting_notes"
	sourceName         = "granola"
)

// naiveTimeLayout covers exported timestamps that omit a zone offset.
// Such timestamps anchor to UTC.
const naiveTimeLayout = "2006-01-02T15:04:05"

// normalize converts the unwrapped snapshot into dataset records.
// Malformed records are skipped with a log line; one bad record never
// poisons the load.
func (l *Loader) normalize(ctx context.Context, raw *rawSnapshot) *dataset.Dataset {
	ds := dataset.NewDataset()
	log := l.log.WithContext(ctx)

	for _, id := range raw.documentIDs {
		var doc rawDocument
		if err := json.Unmarshal(raw.documents[id], &doc); err != nil {
			log.Warn("skipping malformed meeting record",
				logging.F("meeting_id", id),
				logging.Err(err),
			)
			l.countSkip("meeting")
			continue
		}

		meeting := l.normalizeMeeting(id, &doc, log)
		content, strategy := resolveContent(&doc)
		if strategy != "" && l.metrics != nil {
			l.metrics.ContentStrategyTotal.WithLabelValues(strategy).Inc()
		}
		if content == "" {
			log.Debug("no content found for meeting",
				logging.F("meeting_id", id),
				logging.F("title", meeting.Title),
			)
		}

		// Every meeting gets a document record, even content-free ones,
		// so document lookups can distinguish "empty" from "missing".
		document := dataset.DocumentRecord{
			ID:           id,
			MeetingID:    id,
			Title:        meeting.Title,
			Content:      content,
			DocumentType: documentType,
			CreatedAt:    meeting.Date,
		}

		ds.Add(meeting, document, nil)
	}

	// Transcripts are keyed by meeting id but parsed independently:
	// a transcript without a matching meeting is still kept.
	for id, trRaw := range raw.transcripts {
		tr := parseTranscript(id, trRaw)
		if tr == nil {
			l.countSkip("transcript")
			continue
		}
		ds.Transcripts[id] = *tr
	}

	return ds
}

// normalizeMeeting builds a MeetingRecord from a raw document. Missing
// fields take defaults; dates normalize to UTC.
func (l *Loader) normalizeMeeting(id string, doc *rawDocument, log logging.Logger) dataset.MeetingRecord {
	title := doc.Title
	if title == "" {
		title = defaultTitle
	}

	meetingType := doc.Type
	if meetingType == "" {
		meetingType = defaultMeetingType
	}

	var participants []string
	for _, p := range doc.People {
		if p.Name != "" {
			participants = append(participants, p.Name)
		}
	}

	date := l.now()
	if doc.CreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, doc.CreatedAt)
		if err != nil {
			parsed, err = time.ParseInLocation(naiveTimeLayout, doc.CreatedAt, time.UTC)
		}
		if err != nil {
			log.Warn("unparseable meeting date, using load time",
				logging.F("meeting_id", id),
				logging.F("created_at", doc.CreatedAt),
			)
		} else {
			date = parsed.UTC()
		}
	}

	return dataset.MeetingRecord{
		ID:           id,
		Title:        title,
		Date:         date,
		Participants: participants,
		MeetingType:  meetingType,
		Source:       sourceName,
	}
}

func (l *Loader) countSkip(kind string) {
	if l.metrics != nil {
		l.metrics.RecordsSkippedTotal.WithLabelValues(kind).Inc()
	}
}
