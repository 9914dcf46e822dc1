// Package serpapi implements the search provider port against the SerpAPI
// Google endpoints (image, organic, and shopping searches).
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/datahunter/backend/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client handles communication with the SerpAPI search endpoint
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
}

// searchResponse covers the three result shapes a search can return; only
// the list matching the requested type is populated.
type searchResponse struct {
	ImagesResults   []domain.ImageResult    `json:"images_results"`
	OrganicResults  []domain.OrganicResult  `json:"organic_results"`
	ShoppingResults []domain.ShoppingResult `json:"shopping_results"`
}

// NewClient creates a new SerpAPI client. An empty API key is valid: the
// client then reports itself disabled and every search returns no results.
func NewClient(apiKey, baseURL string, logger zerolog.Logger) *Client {
	// SerpAPI free tier budgets are small; keep requests well spaced.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		logger:      logger.With().Str("component", "serpapi").Logger(),
	}
}

// Enabled reports whether the client holds a usable credential.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// SearchImages runs a Google image search and returns the candidate images.
func (c *Client) SearchImages(ctx context.Context, query, region string) ([]domain.ImageResult, error) {
	resp, err := c.search(ctx, query, "isch", region)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.ImagesResults, nil
}

// SearchOrganic runs a standard Google search and returns the organic hits.
func (c *Client) SearchOrganic(ctx context.Context, query, region string) ([]domain.OrganicResult, error) {
	resp, err := c.search(ctx, query, "", region)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.OrganicResults, nil
}

// SearchShopping runs a Google Shopping search and returns the listings.
func (c *Client) SearchShopping(ctx context.Context, query, region string) ([]domain.ShoppingResult, error) {
	resp, err := c.search(ctx, query, "shop", region)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.ShoppingResults, nil
}

// search executes one search call. tbm selects the result type ("isch" for
// images, "shop" for shopping, empty for organic).
func (c *Client) search(ctx context.Context, query, tbm, region string) (*searchResponse, error) {
	if !c.Enabled() {
		// No credential: degrade to "no results", never an error.
		return nil, nil
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/search.json", c.baseURL)
	params := url.Values{}
	params.Add("engine", "google")
	params.Add("q", query)
	params.Add("gl", region)
	params.Add("api_key", c.apiKey)
	if tbm != "" {
		params.Add("tbm", tbm)
	}

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("tbm", tbm).
			Msg("search API returned non-200")
		return nil, fmt.Errorf("search API status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	c.logger.Debug().
		Str("tbm", tbm).
		Str("gl", region).
		Int("images", len(searchResp.ImagesResults)).
		Int("organic", len(searchResp.OrganicResults)).
		Int("shopping", len(searchResp.ShoppingResults)).
		Msg("search completed")

	return &searchResp, nil
}
