package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/yanqian/vibe-weather/internal/domain/weather"
)

// Field lists requested from the forecast endpoint.
const (
	CurrentFields = "temperature_2m,relative_humidity_2m,is_day,precipitation,weather_code,wind_speed_10m"
	HourlyFields  = "temperature_2m,weather_code,precipitation_probability,uv_index"
	DailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset,precipitation_sum"
)

// null entries in the series decode as zero
type forecastResponse struct {
	Timezone string       `json:"timezone"`
	Current  currentBlock `json:"current"`
	Hourly   hourlyBlock  `json:"hourly"`
	Daily    dailyBlock   `json:"daily"`
	Error    bool         `json:"error"`
	Reason   string       `json:"reason"`
}

type currentBlock struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature_2m"`
	Humidity      float64 `json:"relative_humidity_2m"`
	IsDay         int     `json:"is_day"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed     float64 `json:"wind_speed_10m"`
}

type hourlyBlock struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	WeatherCode              []int     `json:"weather_code"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	UVIndex                  []float64 `json:"uv_index"`
}

type dailyBlock struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	Sunrise          []string  `json:"sunrise"`
	Sunset           []string  `json:"sunset"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

// Fetch loads current, hourly and daily conditions for coords in the
// location's own time zone.
func (c *Client) Fetch(ctx context.Context, coords weather.Coordinates) (weather.Forecast, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	query.Set("current", CurrentFields)
	query.Set("hourly", HourlyFields)
	query.Set("daily", DailyFields)
	query.Set("timezone", "auto")

	var raw forecastResponse
	if err := c.getJSON(ctx, c.forecastURL, query, &raw); err != nil {
		return weather.Forecast{}, fmt.Errorf("forecast: %w", err)
	}
	if raw.Error {
		return weather.Forecast{}, fmt.Errorf("forecast api error: %s", raw.Reason)
	}

	forecast := normalizeForecast(raw)
	if err := forecast.Validate(); err != nil {
		return weather.Forecast{}, fmt.Errorf("forecast: %w", err)
	}
	return forecast, nil
}

func normalizeForecast(raw forecastResponse) weather.Forecast {
	return weather.Forecast{
		Timezone: raw.Timezone,
		Current: weather.Current{
			Time:          raw.Current.Time,
			Temperature:   raw.Current.Temperature,
			Humidity:      raw.Current.Humidity,
			WindSpeed:     raw.Current.WindSpeed,
			Precipitation: raw.Current.Precipitation,
			IsDay:         raw.Current.IsDay == 1,
			WeatherCode:   raw.Current.WeatherCode,
		},
		Hourly: weather.Hourly{
			Times:                      nonNil(raw.Hourly.Time),
			Temperatures:               nonNil(raw.Hourly.Temperature),
			WeatherCodes:               nonNil(raw.Hourly.WeatherCode),
			PrecipitationProbabilities: nonNil(raw.Hourly.PrecipitationProbability),
			UVIndices:                  nonNil(raw.Hourly.UVIndex),
		},
		Daily: weather.Daily{
			Times:            nonNil(raw.Daily.Time),
			WeatherCodes:     nonNil(raw.Daily.WeatherCode),
			TempMax:          nonNil(raw.Daily.TemperatureMax),
			TempMin:          nonNil(raw.Daily.TemperatureMin),
			Sunrise:          nonNil(raw.Daily.Sunrise),
			Sunset:           nonNil(raw.Daily.Sunset),
			PrecipitationSum: nonNil(raw.Daily.PrecipitationSum),
		},
	}
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
