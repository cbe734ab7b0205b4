// Package geocode resolves free-text locations into map coordinates via
// the Mapbox forward-geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// Geometry is the GeoJSON point a feature resolves to.
// Coordinates are [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Feature is one geocoding result.
type Feature struct {
	PlaceName string   `json:"place_name"`
	Geometry  Geometry `json:"geometry"`
}

type forwardResponse struct {
	Features []Feature `json:"features"`
}

// Client talks to the geocoding API.
type Client struct {
	httpClient *http.Client
	token      string

	// Overridable URL for testing.
	baseURL string
}

// NewClient creates a geocoding client with the given access token.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("MAPBOX_TOKEN is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		baseURL:    defaultBaseURL,
	}, nil
}

// Forward geocodes a free-text query and returns up to limit features.
// An unresolvable location yields an empty slice, not an error.
func (c *Client) Forward(ctx context.Context, query string, limit int) ([]Feature, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if limit <= 0 {
		limit = 1
	}

	params := url.Values{
		"access_token": {c.token},
		"limit":        {strconv.Itoa(limit)},
	}
	endpoint := fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geocoding API returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed forwardResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding geocoding response: %w", err)
	}
	return parsed.Features, nil
}
