// Package snapshot loads a point-in-time meeting export and normalizes
// it into the dataset records the query engine works over.
package snapshot

import "encoding/json"

// rawPerson is one entry of a document's people array.
type rawPerson struct {
	Name string `json:"name"`
}

// rawDocument is the export's shape for one meeting record. Notes may
// appear under several fields at once; extraction strategies decide
// which one wins.
type rawDocument struct {
	Title     string      `json:"title"`
	CreatedAt string      `json:"created_at"`
	Type      string      `json:"type"`
	People    []rawPerson `json:"people"`

	NotesPlain    string          `json:"notes_plain"`
	NotesMarkdown string          `json:"notes_markdown"`
	Notes         json.RawMessage `json:"notes"`

	Note    string `json:"note"`
	Content string `json:"content"`
	Body    string `json:"body"`
	Text    string `json:"text"`

	Overview string `json:"overview"`
	Summary  string `json:"summary"`
}

// rawSegment is one speech segment of a list-form transcript.
type rawSegment struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// rawLegacyTranscript is the dict-form transcript shape. Exactly one of
// Content, Text, or Transcript carries the body; Content wins.
type rawLegacyTranscript struct {
	Content    string   `json:"content"`
	Text       string   `json:"text"`
	Transcript string   `json:"transcript"`
	Speakers   []string `json:"speakers"`
	Language   string   `json:"language"`
	Confidence *float64 `json:"confidence"`
}
