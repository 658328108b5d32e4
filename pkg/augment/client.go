package augment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
	"github.com/otherjamesbrown/mintel-cli/pkg/observability"
)

const defaultTimeout = 10 * time.Second

// maxResponseBytes caps augmentation responses. These services return
// small JSON payloads; anything larger is a misbehaving endpoint.
const maxResponseBytes = 1 << 20

// httpClient is the shared transport for augmentation services.
type httpClient struct {
	baseURL string
	client  *http.Client
	token   func() (string, error)
	log     logging.Logger
	metrics *observability.QueryMetrics
}

func newHTTPClient(baseURL string, timeout time.Duration, log logging.Logger, metrics *observability.QueryMetrics) *httpClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
		metrics: metrics,
	}
}

// doJSON performs one request and decodes the JSON response into out.
// A nil body means GET, otherwise POST.
func (c *httpClient) doJSON(ctx context.Context, capability, path string, body, out interface{}) error {
	start := time.Now()
	err := c.roundTrip(ctx, path, body, out)
	c.observe(capability, start, err)
	return err
}

func (c *httpClient) roundTrip(ctx context.Context, path string, body, out interface{}) error {
	method := http.MethodGet
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		method = http.MethodPost
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		token, err := c.token()
		if err != nil {
			return fmt.Errorf("obtaining token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *httpClient) observe(capability string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.AugmentCallsTotal.WithLabelValues(capability, status).Inc()
	c.metrics.AugmentCallSeconds.WithLabelValues(capability).Observe(time.Since(start).Seconds())
}
