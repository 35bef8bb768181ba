package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/futureatoms/summitwire/internal/ports"
)

// Client talks to the transcript service, which proxies caption tracks for a
// video id. The service returns the track as timed segments; callers get the
// joined plain text.
type Client struct {
	endpoint string
	language string
	http     *http.Client
}

var _ ports.TranscriptFetcher = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{endpoint: endpoint, language: "en", http: client}
}

// Fetch retrieves and joins the transcript segments for a video.
func (c *Client) Fetch(ctx context.Context, videoID string) (string, error) {
	params := url.Values{}
	params.Set("videoId", videoID)
	params.Set("lang", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript service returned %s", resp.Status)
	}

	var payload struct {
		Segments []struct {
			Text string `json:"text"`
		} `json:"segments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}

	parts := make([]string, 0, len(payload.Segments))
	for _, seg := range payload.Segments {
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}

	return strings.TrimSpace(strings.Join(parts, " ")), nil
}
