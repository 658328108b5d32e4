// Package dataset defines the normalized in-memory form of a meeting
// snapshot and a cache that owns its lifecycle.
package dataset

import "time"

// MeetingRecord is one normalized meeting. Date is always UTC.
type MeetingRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Participants []string  `json:"participants"`
	MeetingType  string    `json:"meeting_type"`
	Categories   []string  `json:"categories,omitempty"`
	Source       string    `json:"source"`
}

// DocumentRecord is the normalized notes document for a meeting.
// A meeting always has exactly one, even when no content could be
// extracted (Content is then empty).
type DocumentRecord struct {
	ID           string    `json:"id"`
	MeetingID    string    `json:"meeting_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	DocumentType string    `json:"document_type"`
	CreatedAt    time.Time `json:"created_at"`
	Tags         []string  `json:"tags,omitempty"`
}

// TranscriptRecord is the normalized transcript for a meeting, when one exists.
type TranscriptRecord struct {
	MeetingID  string   `json:"meeting_id"`
	Content    string   `json:"content"`
	Speakers   []string `json:"speakers,omitempty"`
	Language   string   `json:"language,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Dataset holds all normalized records from one snapshot load.
//
// IDs preserves snapshot insertion order; it is the canonical iteration
// order and makes repeated queries over the same snapshot deterministic.
type Dataset struct {
	IDs         []string
	Meetings    map[string]MeetingRecord
	Documents   map[string]DocumentRecord
	Transcripts map[string]TranscriptRecord
	LastUpdated time.Time
}

// NewDataset returns an empty, usable Dataset.
func NewDataset() *Dataset {
	return &Dataset{
		Meetings:    make(map[string]MeetingRecord),
		Documents:   make(map[string]DocumentRecord),
		Transcripts: make(map[string]TranscriptRecord),
	}
}

// Add appends a meeting with its document and optional transcript,
// preserving insertion order. Duplicate ids replace the stored records
// without re-appending to the order.
func (d *Dataset) Add(m MeetingRecord, doc DocumentRecord, tr *TranscriptRecord) {
	if _, exists := d.Meetings[m.ID]; !exists {
		d.IDs = append(d.IDs, m.ID)
	}
	d.Meetings[m.ID] = m
	d.Documents[m.ID] = doc
	if tr != nil {
		d.Transcripts[m.ID] = *tr
	}
}

// Len returns the number of meetings in the dataset.
func (d *Dataset) Len() int {
	return len(d.IDs)
}

// MeetingsInOrder returns all meetings in snapshot insertion order.
func (d *Dataset) MeetingsInOrder() []MeetingRecord {
	out := make([]MeetingRecord, 0, len(d.IDs))
	for _, id := range d.IDs {
		if m, ok := d.Meetings[id]; ok {
			out = append(out, m)
		}
	}
	return out
}
