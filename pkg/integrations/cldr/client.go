// Package cldr downloads the CLDR likely-subtags table.
package cldr

import (
	"context"
	"fmt"

	"github.com/lahtis/glfm/pkg/integrations"
	"github.com/lahtis/glfm/pkg/source"
)

// DefaultURL is the likelySubtags.json file of the cldr-json repository.
const DefaultURL = "https://raw.githubusercontent.com/unicode-org/cldr-json/main/cldr-json/cldr-core/supplemental/likelySubtags.json"

// Client downloads likely subtags.
type Client struct {
	*integrations.Client
	url string
}

// NewClient creates a client for the table at url (DefaultURL when empty).
func NewClient(url, userAgent string) *Client {
	if url == "" {
		url = DefaultURL
	}
	if userAgent == "" {
		userAgent = integrations.DefaultUserAgent
	}
	return &Client{
		Client: integrations.NewClient(nil, map[string]string{"User-Agent": userAgent}),
		url:    url,
	}
}

// Fetch downloads the table and checks that it parses. It returns the raw
// document, ready to be written to disk, and the number of entries.
func (c *Client) Fetch(ctx context.Context) ([]byte, int, error) {
	data, err := c.GetBytes(ctx, c.url)
	if err != nil {
		return nil, 0, fmt.Errorf("download likely subtags: %w", err)
	}
	parsed, err := source.ParseLikelySubtags(data)
	if err != nil {
		return nil, 0, err
	}
	return data, len(parsed), nil
}
