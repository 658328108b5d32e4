package snapshot

import (
	"encoding/json"
	"strings"

	"github.com/otherjamesbrown/mintel-cli/pkg/dataset"
)

// parseTranscript converts one raw transcript payload into a record.
// The export carries two shapes: a list of speech segments, or a legacy
// dict with the body under content/text/transcript. Returns nil when no
// usable content exists.
func parseTranscript(meetingID string, raw json.RawMessage) *dataset.TranscriptRecord {
	var segments []rawSegment
	if err := json.Unmarshal(raw, &segments); err == nil {
		return transcriptFromSegments(meetingID, segments)
	}

	var legacy rawLegacyTranscript
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return transcriptFromLegacy(meetingID, &legacy)
	}

	return nil
}

// transcriptFromSegments joins segment texts with single spaces and
// collects speakers from segment sources, deduplicated in first-seen
// order so repeated loads yield identical records.
func transcriptFromSegments(meetingID string, segments []rawSegment) *dataset.TranscriptRecord {
	var parts []string
	var speakers []string
	seen := make(map[string]struct{})

	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
		// A blank segment still names its speaker.
		if seg.Source != "" {
			if _, dup := seen[seg.Source]; !dup {
				seen[seg.Source] = struct{}{}
				speakers = append(speakers, seg.Source)
			}
		}
	}

	if len(parts) == 0 {
		return nil
	}
	return &dataset.TranscriptRecord{
		MeetingID: meetingID,
		Content:   strings.Join(parts, " "),
		Speakers:  speakers,
	}
}

// transcriptFromLegacy picks the first populated body field. Speakers
// come through as-is; language and confidence survive when present.
func transcriptFromLegacy(meetingID string, legacy *rawLegacyTranscript) *dataset.TranscriptRecord {
	var content string
	switch {
	case legacy.Content != "":
		content = legacy.Content
	case legacy.Text != "":
		content = legacy.Text
	case legacy.Transcript != "":
		content = legacy.Transcript
	}
	if content == "" {
		return nil
	}

	var speakers []string
	seen := make(map[string]struct{})
	for _, s := range legacy.Speakers {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			speakers = append(speakers, s)
		}
	}

	return &dataset.TranscriptRecord{
		MeetingID:  meetingID,
		Content:    content,
		Speakers:   speakers,
		Language:   legacy.Language,
		Confidence: legacy.Confidence,
	}
}
