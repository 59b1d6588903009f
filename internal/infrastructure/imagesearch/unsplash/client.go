// Package unsplash implements photo search against the Unsplash API.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/weemeal/server/internal/ports/outbound"
)

const (
	defaultBaseURL = "https://api.unsplash.com"
	perPage        = 5
)

// Client searches Unsplash for recipe photos. With an empty access key
// the client reports itself disabled and every search returns no hit.
type Client struct {
	accessKey string
	baseURL   string
	client    *http.Client
	logger    *zap.Logger
}

// NewClient creates a new Unsplash client.
func NewClient(accessKey string, logger *zap.Logger) *Client {
	if accessKey == "" {
		logger.Info("Unsplash access key not configured, photo search disabled")
	}
	return &Client{
		accessKey: accessKey,
		baseURL:   defaultBaseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.Named("unsplash"),
	}
}

// Enabled reports whether an access key is configured
func (c *Client) Enabled() bool {
	return c.accessKey != ""
}

type searchResponse struct {
	Results []photoResult `json:"results"`
}

type photoResult struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
}

// SearchPhoto looks up landscape photos for a query and picks one of
// the top results at random so repeated recipes do not all share the
// same stock photo. A nil result with nil error means no hit.
func (c *Client) SearchPhoto(ctx context.Context, query string) (*outbound.Photo, error) {
	if !c.Enabled() {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", fmt.Sprintf("%d", perPage))
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call unsplash api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash api status %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Results) == 0 {
		c.logger.Debug("No Unsplash results", zap.String("query", query))
		return nil, nil
	}

	n := len(parsed.Results)
	if n > perPage {
		n = perPage
	}
	// The top level rand functions are safe for concurrent use.
	photo := parsed.Results[rand.Intn(n)]

	return &outbound.Photo{
		URL:         photo.URLs.Regular,
		Attribution: fmt.Sprintf("Photo by %s on Unsplash", photo.User.Name),
	}, nil
}
