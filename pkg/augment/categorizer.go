package augment

import (
	"context"
	"time"

	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
	"github.com/otherjamesbrown/mintel-cli/pkg/observability"
)

// CategorizerClient assigns category labels over HTTP.
type CategorizerClient struct {
	http *httpClient
}

// NewCategorizerClient creates a categorizer client for the given base URL.
func NewCategorizerClient(baseURL string, timeout time.Duration, log logging.Logger, metrics *observability.QueryMetrics) *CategorizerClient {
	return &CategorizerClient{http: newHTTPClient(baseURL, timeout, log, metrics)}
}

// Categorize returns category labels for a meeting's title and notes.
func (c *CategorizerClient) Categorize(ctx context.Context, title, content string) ([]string, error) {
	req := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{Title: title, Content: content}

	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := c.http.doJSON(ctx, "categorizer", "/categorize", req, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
