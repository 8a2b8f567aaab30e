package terminal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/punch"
)

// Client talks to the attendance-terminal gateway, a small agent sitting next
// to the biometric device that exposes its punch log over HTTP. One blocking
// round-trip per fetch; no retries here.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type recordsResponse struct {
	Records []struct {
		UserID    string `json:"user_id"`
		Timestamp string `json:"timestamp"`
	} `json:"records"`
}

// FetchRange implements punch.Source.
func (c *Client) FetchRange(ctx context.Context, start, end time.Time) ([]punch.Event, error) {
	endpoint := fmt.Sprintf("%s/api/records?%s", c.baseURL, url.Values{
		"start": {start.Format("2006-01-02")},
		"end":   {end.Format("2006-01-02")},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body recordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	events := make([]punch.Event, 0, len(body.Records))
	for _, rec := range body.Records {
		ts, err := parseGatewayTime(rec.Timestamp)
		if err != nil {
			// Row-level damage from the gateway is absorbed the same
			// way the normalizer absorbs it.
			continue
		}
		events = append(events, punch.Event{UserID: rec.UserID, Timestamp: ts})
	}
	return events, nil
}

func parseGatewayTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
