package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// StreamSource resolves a camera entity to its native stream address using the
// platform's stream-source endpoint. The endpoint returns the URL as plain
// text, sometimes quoted.
func (c *Client) StreamSource(ctx context.Context, entityID string) (string, error) {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		Get("/api/camera_stream_source/" + entityID)

	if err != nil {
		return "", err
	}

	if resp.StatusCode() == 404 {
		return "", fmt.Errorf("stream source endpoint not available for %s", entityID)
	}

	if resp.IsError() {
		return "", fmt.Errorf("failed to resolve stream for %s: %s", entityID, resp.String())
	}

	streamURL := strings.Trim(strings.TrimSpace(resp.String()), `"`)
	if streamURL == "" {
		return "", errors.New("platform returned empty stream source")
	}

	return streamURL, nil
}
