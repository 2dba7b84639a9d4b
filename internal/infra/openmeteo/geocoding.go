package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yanqian/vibe-weather/internal/domain/weather"
)

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Resolve looks up the best match for city. A response without results
// yields weather.ErrCityNotFound.
func (c *Client) Resolve(ctx context.Context, city string) (weather.Resolution, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return weather.Resolution{}, weather.ErrCityNotFound
	}

	query := url.Values{}
	query.Set("name", city)
	query.Set("count", "1")
	query.Set("language", c.language)
	query.Set("format", "json")

	var raw geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL, query, &raw); err != nil {
		return weather.Resolution{}, fmt.Errorf("geocode %q: %w", city, err)
	}
	if len(raw.Results) == 0 {
		return weather.Resolution{}, weather.ErrCityNotFound
	}

	top := raw.Results[0]
	return weather.Resolution{
		Coordinates: weather.Coordinates{Latitude: top.Latitude, Longitude: top.Longitude},
		Place:       weather.Place{DisplayName: displayName(top)},
	}, nil
}

func displayName(r geocodeResult) string {
	return r.Name + ", " + r.Country
}
