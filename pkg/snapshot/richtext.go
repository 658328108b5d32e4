package snapshot

import (
	"encoding/json"
	"strings"
)

// Rich-text notes are a recursive node tree with three node variants:
// leaf text nodes hold words directly, attributed nodes carry text in
// an attrs slot, and containers hold child lists to descend through.
const (
	nodeTypeText      = "text"
	nodeTypeParagraph = "paragraph"
)

// maxRichTextDepth bounds descent so a cyclic or adversarially deep
// tree cannot blow the stack. Real exports nest a handful of levels.
const maxRichTextDepth = 20

// richTextNode is one node of a structured notes tree.
type richTextNode struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Attrs struct {
		Text string `json:"text"`
	} `json:"attrs"`
	Content []richTextNode `json:"content"`
}

// richTextDoc is the root of a structured notes tree.
type richTextDoc struct {
	Content []richTextNode `json:"content"`
}

// extractRichText flattens a structured notes tree into plain text.
// Returns "" when the payload is not a well-formed tree or carries no
// text nodes.
func extractRichText(raw json.RawMessage) string {
	var doc richTextDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	var parts []string
	collectText(doc.Content, 0, &parts)
	return strings.Join(parts, " ")
}

// collectText walks nodes depth-first, appending text node contents in
// document order.
func collectText(nodes []richTextNode, depth int, parts *[]string) {
	if depth >= maxRichTextDepth {
		return
	}
	for _, n := range nodes {
		switch {
		case n.Type == nodeTypeText && n.Text != "":
			*parts = append(*parts, n.Text)
		case n.Attrs.Text != "":
			*parts = append(*parts, n.Attrs.Text)
		case len(n.Content) > 0:
			// Paragraphs and every other container variant descend the same way.
			collectText(n.Content, depth+1, parts)
		}
	}
}
