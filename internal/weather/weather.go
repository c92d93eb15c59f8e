// Package weather resolves a city name to the current temperature via an
// OpenWeatherMap-compatible API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Default client configuration constants
const (
	// DefaultBaseURL is the OpenWeatherMap current weather endpoint.
	DefaultBaseURL = "http://api.openweathermap.org/data/2.5/weather"
	// DefaultTimeout bounds a lookup round trip. Expiry is reported as ErrUnavailable.
	DefaultTimeout = 10 * time.Second
)

// ErrUnavailable indicates the weather service could not resolve the city:
// unknown city, non-200 response, transport failure or timeout.
var ErrUnavailable = errors.New("weather unavailable")

// Opts holds configuration options for the weather client.
type Opts struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Option defines a configuration option for the weather client.
type Option func(*Opts)

// WithAPIKey sets the OpenWeatherMap API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) {
		o.APIKey = key
	}
}

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

// Client queries current weather for a city.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a weather client, applying any provided options.
func NewClient(opts ...Option) *Client {
	cfg := Opts{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	slog.Debug("Weather NewClient options set", "APIKey_set", cfg.APIKey != "", "baseURL", cfg.BaseURL, "timeout", cfg.Timeout)
	return &Client{apiKey: cfg.APIKey, baseURL: cfg.BaseURL, http: httpClient}
}

// currentWeather mirrors the subset of the API response we read.
type currentWeather struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Temperature resolves a city name to its current temperature in Celsius.
// Any failure to resolve is reported as ErrUnavailable.
func (c *Client) Temperature(ctx context.Context, city string) (float64, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		slog.Error("Weather Temperature request build failed", "error", err, "city", city)
		return 0, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("Weather Temperature request failed", "error", err, "city", city)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("Weather Temperature non-OK status", "status", resp.StatusCode, "city", city)
		return 0, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var data currentWeather
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		slog.Error("Weather Temperature decode failed", "error", err, "city", city)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	slog.Debug("Weather Temperature resolved", "city", city, "temp", data.Main.Temp)
	return data.Main.Temp, nil
}
