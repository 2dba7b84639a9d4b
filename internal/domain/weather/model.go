package weather

import (
	"context"
	"errors"
	"fmt"
)

// MyLocation is the place name shown for device geolocation lookups.
const MyLocation = "My Location 📍"

// ErrCityNotFound is returned by a Geocoder when the provider has no match.
var ErrCityNotFound = errors.New("city not found")

// Coordinates locate a forecast request.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the display label for the current forecast.
type Place struct {
	DisplayName string `json:"displayName"`
}

// Resolution is the single best geocoding match for a city name.
type Resolution struct {
	Coordinates
	Place
}

// Current holds the instantaneous conditions.
type Current struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	Precipitation float64 `json:"precipitation"`
	IsDay         bool    `json:"isDay"`
	WeatherCode   int     `json:"weatherCode"`
}

// Hourly is a set of index-aligned hourly series in chronological order.
type Hourly struct {
	Times                      []string  `json:"times"`
	Temperatures               []float64 `json:"temperatures"`
	WeatherCodes               []int     `json:"weatherCodes"`
	PrecipitationProbabilities []float64 `json:"precipitationProbabilities"`
	UVIndices                  []float64 `json:"uvIndices"`
}

// Len reports the number of hourly entries.
func (h Hourly) Len() int { return len(h.Times) }

// Daily is a set of index-aligned series, one entry per calendar day.
type Daily struct {
	Times            []string  `json:"times"`
	WeatherCodes     []int     `json:"weatherCodes"`
	TempMax          []float64 `json:"tempMax"`
	TempMin          []float64 `json:"tempMin"`
	Sunrise          []string  `json:"sunrise"`
	Sunset           []string  `json:"sunset"`
	PrecipitationSum []float64 `json:"precipitationSum"`
}

// Len reports the number of days.
func (d Daily) Len() int { return len(d.Times) }

// Forecast is the weather snapshot a session renders and chats about.
type Forecast struct {
	Timezone string  `json:"timezone"`
	Current  Current `json:"current"`
	Hourly   Hourly  `json:"hourly"`
	Daily    Daily   `json:"daily"`
}

// Validate checks that the parallel series agree in length.
func (f Forecast) Validate() error {
	n := f.Hourly.Len()
	hourly := map[string]int{
		"temperatures":               len(f.Hourly.Temperatures),
		"weatherCodes":               len(f.Hourly.WeatherCodes),
		"precipitationProbabilities": len(f.Hourly.PrecipitationProbabilities),
		"uvIndices":                  len(f.Hourly.UVIndices),
	}
	for name, got := range hourly {
		if got != n {
			return fmt.Errorf("hourly.%s has %d entries, want %d", name, got, n)
		}
	}
	d := f.Daily.Len()
	daily := map[string]int{
		"weatherCodes":     len(f.Daily.WeatherCodes),
		"tempMax":          len(f.Daily.TempMax),
		"tempMin":          len(f.Daily.TempMin),
		"sunrise":          len(f.Daily.Sunrise),
		"sunset":           len(f.Daily.Sunset),
		"precipitationSum": len(f.Daily.PrecipitationSum),
	}
	for name, got := range daily {
		if got != d {
			return fmt.Errorf("daily.%s has %d entries, want %d", name, got, d)
		}
	}
	return nil
}

// Geocoder resolves free text to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, city string) (Resolution, error)
}

// ForecastFetcher loads a forecast for coordinates.
type ForecastFetcher interface {
	Fetch(ctx context.Context, coords Coordinates) (Forecast, error)
}
