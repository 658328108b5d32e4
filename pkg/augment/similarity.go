package augment

import (
	"context"
	"time"

	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
	"github.com/otherjamesbrown/mintel-cli/pkg/observability"
)

// SimilarityClient finds related meetings over HTTP.
type SimilarityClient struct {
	http *httpClient
}

// NewSimilarityClient creates a similarity client for the given base URL.
func NewSimilarityClient(baseURL string, timeout time.Duration, log logging.Logger, metrics *observability.QueryMetrics) *SimilarityClient {
	return &SimilarityClient{http: newHTTPClient(baseURL, timeout, log, metrics)}
}

// RelatedMeetings returns ids of meetings related to meetingID, most
// similar first.
func (c *SimilarityClient) RelatedMeetings(ctx context.Context, meetingID string, limit int) ([]string, error) {
	req := struct {
		MeetingID string `json:"meeting_id"`
		Limit     int    `json:"limit"`
	}{MeetingID: meetingID, Limit: limit}

	var resp struct {
		Related []string `json:"related"`
	}
	if err := c.http.doJSON(ctx, "similarity", "/related", req, &resp); err != nil {
		return nil, err
	}
	return resp.Related, nil
}
