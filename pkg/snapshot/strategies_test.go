package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveContentStrategyOrder(t *testing.T) {
	tests := []struct {
		name         string
		doc          rawDocument
		wantContent  string
		wantStrategy string
	}{
		{
			name: "plain notes win over everything",
			doc: rawDocument{
				NotesPlain:    "plain",
				NotesMarkdown: "markdown",
				Notes:         json.RawMessage(`{"content": [{"type": "text", "text": "tree"}]}`),
				Note:          "alternate",
			},
			wantContent:  "plain",
			wantStrategy: "notes_plain",
		},
		{
			name: "markdown wins when plain is blank",
			doc: rawDocument{
				NotesPlain:    "   ",
				NotesMarkdown: "# markdown",
			},
			wantContent:  "# markdown",
			wantStrategy: "notes_markdown",
		},
		{
			name: "structured tree flattens",
			doc: rawDocument{
				Notes: json.RawMessage(`{"content": [
					{"type": "paragraph", "content": [{"type": "text", "text": "Action items"}]},
					{"type": "paragraph", "content": [{"type": "text", "text": "follow up"}]}
				]}`),
			},
			wantContent:  "Action items follow up",
			wantStrategy: "notes_structured",
		},
		{
			name: "notes as bare string",
			doc: rawDocument{
				Notes: json.RawMessage(`"just a string"`),
			},
			wantContent:  "just a string",
			wantStrategy: "notes_structured",
		},
		{
			name: "alternate fields scan in order",
			doc: rawDocument{
				Body: "from body",
				Text: "from text",
			},
			wantContent:  "from body",
			wantStrategy: "alternate_fields",
		},
		{
			name:         "nothing extractable",
			doc:          rawDocument{},
			wantContent:  "",
			wantStrategy: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, strategy := resolveContent(&tt.doc)
			assert.Equal(t, tt.wantContent, content)
			assert.Equal(t, tt.wantStrategy, strategy)
		})
	}
}

func TestResolveContentAppendsOverviewAndSummary(t *testing.T) {
	doc := rawDocument{
		NotesPlain: "body",
		Overview:   "the big picture",
		Summary:    "wrapped up",
	}

	content, _ := resolveContent(&doc)
	assert.Equal(t, "body\n\nOverview: the big picture\n\nSummary: wrapped up", content)
}

func TestResolveContentOverviewWithoutBody(t *testing.T) {
	doc := rawDocument{Overview: "only an overview"}

	content, strategy := resolveContent(&doc)
	assert.Equal(t, "Overview: only an overview", content)
	assert.Equal(t, "", strategy)
}

func TestExtractRichTextDepthBound(t *testing.T) {
	// Build a tree nested past the depth bound with a text leaf at the bottom.
	leaf := `{"type": "text", "text": "deep"}`
	node := leaf
	for i := 0; i < maxRichTextDepth+5; i++ {
		node = `{"type": "paragraph", "content": [` + node + `]}`
	}
	doc := `{"content": [` + node + `]}`

	assert.Equal(t, "", extractRichText(json.RawMessage(doc)))
}

func TestExtractRichTextMixedNodes(t *testing.T) {
	doc := `{"content": [
		{"type": "heading", "content": [{"type": "text", "text": "Agenda"}]},
		{"type": "bulletList", "content": [
			{"type": "listItem", "content": [
				{"type": "paragraph", "content": [{"type": "text", "text": "item one"}]}
			]}
		]},
		{"type": "text", "text": "trailing"}
	]}`

	assert.Equal(t, "Agenda item one trailing", extractRichText(json.RawMessage(doc)))
}

func TestExtractRichTextAttributeText(t *testing.T) {
	// Some node kinds carry their text in an attrs slot instead of a
	// leaf text field.
	doc := `{"content": [
		{"type": "text", "text": "before"},
		{"type": "mention", "attrs": {"text": "@ada"}},
		{"type": "paragraph", "content": [{"type": "text", "text": "after"}]}
	]}`

	assert.Equal(t, "before @ada after", extractRichText(json.RawMessage(doc)))
}

func TestExtractRichTextMalformed(t *testing.T) {
	assert.Equal(t, "", extractRichText(json.RawMessage(`[1,2,3]`)))
	assert.Equal(t, "", extractRichText(json.RawMessage(`{"content": "not a list"}`)))
}
