// Package nutrition resolves free-text food names to canonical products and
// their energy density via an OpenFoodFacts-compatible search API.
package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/akaretnikov/aquabalance/internal/models"
)

// Default client configuration constants
const (
	// DefaultBaseURL is the OpenFoodFacts search endpoint.
	DefaultBaseURL = "https://world.openfoodfacts.org/cgi/search.pl"
	// DefaultTimeout bounds a lookup round trip. Expiry is reported as ErrUnavailable.
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrNotFound indicates the search returned no matching products.
	ErrNotFound = errors.New("food not found")
	// ErrUnavailable indicates the nutrition service failed or timed out.
	ErrUnavailable = errors.New("nutrition unavailable")
)

// Opts holds configuration options for the nutrition client.
type Opts struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Option defines a configuration option for the nutrition client.
type Option func(*Opts)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(o *Opts) {
		o.BaseURL = u
	}
}

// WithTimeout overrides the lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) {
		o.Timeout = d
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Opts) {
		o.HTTPClient = c
	}
}

// Client searches the product database by free-text query.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a nutrition client, applying any provided options.
func NewClient(opts ...Option) *Client {
	cfg := Opts{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	slog.Debug("Nutrition NewClient options set", "baseURL", cfg.BaseURL, "timeout", cfg.Timeout)
	return &Client{baseURL: cfg.BaseURL, http: httpClient}
}

// searchResult mirrors the subset of the API response we read.
type searchResult struct {
	Products []struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
		} `json:"nutriments"`
	} `json:"products"`
}

// Search resolves a free-text food name to the first matching product.
// An empty product list is ErrNotFound; service failures are ErrUnavailable.
func (c *Client) Search(ctx context.Context, query string) (*models.Food, error) {
	q := url.Values{}
	q.Set("action", "process")
	q.Set("search_terms", query)
	q.Set("json", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		slog.Error("Nutrition Search request build failed", "error", err, "query", query)
		return nil, fmt.Errorf("failed to build nutrition request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("Nutrition Search request failed", "error", err, "query", query)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("Nutrition Search non-OK status", "status", resp.StatusCode, "query", query)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var data searchResult
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		slog.Error("Nutrition Search decode failed", "error", err, "query", query)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(data.Products) == 0 {
		slog.Debug("Nutrition Search no products", "query", query)
		return nil, ErrNotFound
	}

	first := data.Products[0]
	name := first.ProductName
	if name == "" {
		name = query
	}
	food := &models.Food{Name: name, CaloriesPer100g: first.Nutriments.EnergyKcal100g}
	slog.Debug("Nutrition Search resolved", "query", query, "name", food.Name, "kcal_per_100g", food.CaloriesPer100g)
	return food, nil
}
