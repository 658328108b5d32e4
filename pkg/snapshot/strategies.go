package snapshot

import (
	"encoding/json"
	"strings"
)

// A contentStrategy extracts candidate body text from one raw document.
// Strategies run in fixed order; the first non-empty result wins.
type contentStrategy struct {
	name    string
	extract func(doc *rawDocument) string
}

// contentStrategies is the ordered extraction chain: plain notes beat
// markdown, markdown beats the structured tree, and the alternate
// field names are the last resort.
var contentStrategies = []contentStrategy{
	{
		name: "notes_plain",
		extract: func(doc *rawDocument) string {
			return strings.TrimSpace(doc.NotesPlain)
		},
	},
	{
		name: "notes_markdown",
		extract: func(doc *rawDocument) string {
			return strings.TrimSpace(doc.NotesMarkdown)
		},
	},
	{
		name: "notes_structured",
		extract: func(doc *rawDocument) string {
			if len(doc.Notes) == 0 {
				return ""
			}
			// The notes field is either a rich-text tree or, in some
			// exports, a bare string.
			var plain string
			if err := json.Unmarshal(doc.Notes, &plain); err == nil {
				return strings.TrimSpace(plain)
			}
			return strings.TrimSpace(extractRichText(doc.Notes))
		},
	},
	{
		name: "alternate_fields",
		extract: func(doc *rawDocument) string {
			for _, v := range []string{doc.Note, doc.Content, doc.Body, doc.Text} {
				if s := strings.TrimSpace(v); s != "" {
					return s
				}
			}
			return ""
		},
	},
}

// resolveContent runs the strategy chain and appends the overview and
// summary paragraphs. Parts are joined with blank lines. The second
// return value names the winning strategy ("" when none produced text).
func resolveContent(doc *rawDocument) (string, string) {
	var parts []string
	var winner string

	for _, s := range contentStrategies {
		if text := s.extract(doc); text != "" {
			parts = append(parts, text)
			winner = s.name
			break
		}
	}

	// Overview and summary always append, regardless of which strategy
	// (if any) produced the body.
	if overview := strings.TrimSpace(doc.Overview); overview != "" {
		parts = append(parts, "Overview: "+overview)
	}
	if summary := strings.TrimSpace(doc.Summary); summary != "" {
		parts = append(parts, "Summary: "+summary)
	}

	return strings.Join(parts, "\n\n"), winner
}
