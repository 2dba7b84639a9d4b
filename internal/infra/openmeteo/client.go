package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	defaultTimeout     = 10 * time.Second
)

// Config points the client at the Open-Meteo endpoints.
type Config struct {
	GeocodeBaseURL  string
	ForecastBaseURL string
	Language        string
	Timeout         time.Duration
	UserAgent       string
}

// Client talks to the Open-Meteo geocoding and forecast APIs. It implements
// weather.Geocoder and weather.ForecastFetcher.
type Client struct {
	geocodeURL  string
	forecastURL string
	language    string
	userAgent   string
	httpClient  *http.Client
}

// NewClient builds an API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	language := strings.TrimSpace(cfg.Language)
	if language == "" {
		language = "en"
	}
	return &Client{
		geocodeURL:  baseURL(cfg.GeocodeBaseURL, defaultGeocodeURL),
		forecastURL: baseURL(cfg.ForecastBaseURL, defaultForecastURL),
		language:    language,
		userAgent:   strings.TrimSpace(cfg.UserAgent),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func baseURL(raw, fallback string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		u = fallback
	}
	return strings.TrimRight(u, "/")
}

// getJSON issues a GET and decodes the body into out. Non-2xx responses are
// errors carrying a truncated body.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
