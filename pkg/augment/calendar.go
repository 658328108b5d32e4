package augment

import (
	"context"
	"net/url"
	"time"

	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
	"github.com/otherjamesbrown/mintel-cli/pkg/observability"
	"github.com/otherjamesbrown/mintel-cli/pkg/temporal"
)

// CalendarClient fetches scheduled events over HTTP. Requests carry a
// bearer token from the configured TokenFunc.
type CalendarClient struct {
	http *httpClient
}

// TokenFunc supplies the calendar bearer token.
type TokenFunc func() (string, error)

// NewCalendarClient creates a calendar client for the given base URL.
func NewCalendarClient(baseURL string, timeout time.Duration, token TokenFunc, log logging.Logger, metrics *observability.QueryMetrics) *CalendarClient {
	c := newHTTPClient(baseURL, timeout, log, metrics)
	if token != nil {
		c.token = token
	}
	return &CalendarClient{http: c}
}

// UpcomingEvents returns events scheduled inside the interval.
func (c *CalendarClient) UpcomingEvents(ctx context.Context, interval temporal.Interval) ([]CalendarEvent, error) {
	query := url.Values{}
	query.Set("start", interval.Start.Format(time.RFC3339))
	query.Set("end", interval.End.Format(time.RFC3339))

	var resp struct {
		Events []CalendarEvent `json:"events"`
	}
	if err := c.http.doJSON(ctx, "calendar", "/events?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}
