package openmeteo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/vibe-weather/internal/domain/weather"
)

func TestResolve(t *testing.T) {
	var (
		query url.Values
		agent string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		agent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"São Paulo","country":"Brazil","latitude":-23.5475,"longitude":-46.63611}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{GeocodeBaseURL: srv.URL, UserAgent: "vibe-weather/test"})
	res, err := client.Resolve(context.Background(), "São Paulo")
	require.NoError(t, err)
	require.Equal(t, "São Paulo", query.Get("name"))
	require.Equal(t, "1", query.Get("count"))
	require.Equal(t, "en", query.Get("language"))
	require.Equal(t, "json", query.Get("format"))
	require.Equal(t, "vibe-weather/test", agent)
	require.Equal(t, "São Paulo, Brazil", res.DisplayName)
	require.Equal(t, -23.5475, res.Latitude)
	require.Equal(t, -46.63611, res.Longitude)
}

func TestResolveNoResults(t *testing.T) {
	for name, body := range map[string]string{
		"missing": `{"generationtime_ms":0.5}`,
		"empty":   `{"results":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := NewClient(Config{GeocodeBaseURL: srv.URL}).Resolve(context.Background(), "Atlantis")
			require.ErrorIs(t, err, weather.ErrCityNotFound)
		})
	}
}

func TestResolveUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(Config{GeocodeBaseURL: srv.URL}).Resolve(context.Background(), "Paris")
	require.Error(t, err)
	require.False(t, errors.Is(err, weather.ErrCityNotFound))
	require.Contains(t, err.Error(), "status=502")
}

func TestResolveMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{GeocodeBaseURL: srv.URL}).Resolve(context.Background(), "Paris")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode response")
}

func TestFetch(t *testing.T) {
	var q url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.Query()
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	client := NewClient(Config{ForecastBaseURL: srv.URL})
	f, err := client.Fetch(context.Background(), weather.Coordinates{Latitude: 51.5, Longitude: -0.12})
	require.NoError(t, err)
	require.Equal(t, "51.5", q.Get("latitude"))
	require.Equal(t, "-0.12", q.Get("longitude"))
	require.Equal(t, CurrentFields, q.Get("current"))
	require.Equal(t, HourlyFields, q.Get("hourly"))
	require.Equal(t, DailyFields, q.Get("daily"))
	require.Equal(t, "auto", q.Get("timezone"))

	require.Equal(t, "Europe/London", f.Timezone)
	require.Equal(t, 14.6, f.Current.Temperature)
	require.Equal(t, 81.0, f.Current.Humidity)
	require.Equal(t, 9.4, f.Current.WindSpeed)
	require.True(t, f.Current.IsDay)
	require.Equal(t, 61, f.Current.WeatherCode)

	require.Equal(t, 3, f.Hourly.Len())
	require.Equal(t, []float64{20, 0, 65}, f.Hourly.PrecipitationProbabilities)
	require.Equal(t, []float64{0, 0.35, 1.2}, f.Hourly.UVIndices)
	require.Equal(t, []int{3, 61, 63}, f.Hourly.WeatherCodes)

	require.Equal(t, 2, f.Daily.Len())
	require.Equal(t, []string{"2024-07-16T05:02", "2024-07-17T05:03"}, f.Daily.Sunrise)
	require.Equal(t, []float64{19.8, 21.1}, f.Daily.TempMax)
}

func TestFetchRejectsMisalignedSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hourly":{"time":["2024-07-16T00:00"],"temperature_2m":[]}}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{ForecastBaseURL: srv.URL}).Fetch(context.Background(), weather.Coordinates{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "hourly.")
}

func TestFetchProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{ForecastBaseURL: srv.URL}).Fetch(context.Background(), weather.Coordinates{Latitude: 120})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=400")
}

func TestFetchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(Config{ForecastBaseURL: srv.URL}).Fetch(ctx, weather.Coordinates{})
	require.ErrorIs(t, err, context.Canceled)
}

const forecastFixture = `{
  "latitude": 51.5,
  "longitude": -0.12,
  "timezone": "Europe/London",
  "current": {
    "time": "2024-07-16T13:00",
    "temperature_2m": 14.6,
    "relative_humidity_2m": 81,
    "is_day": 1,
    "precipitation": 0.3,
    "weather_code": 61,
    "wind_speed_10m": 9.4
  },
  "hourly": {
    "time": ["2024-07-16T00:00", "2024-07-16T01:00", "2024-07-16T02:00"],
    "temperature_2m": [13.1, 12.8, 12.4],
    "weather_code": [3, 61, 63],
    "precipitation_probability": [20, null, 65],
    "uv_index": [0, 0.35, 1.2]
  },
  "daily": {
    "time": ["2024-07-16", "2024-07-17"],
    "weather_code": [61, 3],
    "temperature_2m_max": [19.8, 21.1],
    "temperature_2m_min": [12.0, 11.4],
    "sunrise": ["2024-07-16T05:02", "2024-07-17T05:03"],
    "sunset": ["2024-07-16T21:10", "2024-07-17T21:09"],
    "precipitation_sum": [2.4, 0]
  }
}`
