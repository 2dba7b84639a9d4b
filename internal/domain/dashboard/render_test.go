package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/vibe-weather/internal/domain/weather"
)

func TestRenderHero(t *testing.T) {
	f := sampleForecast(48, 7)
	f.Current = weather.Current{Temperature: 21.5, Humidity: 63, WindSpeed: 12.3, IsDay: true, WeatherCode: 61}

	view := NewRenderer().Render(f, midnight())

	require.Equal(t, "22°", view.Hero.Temperature)
	require.Equal(t, "63%", view.Hero.Humidity)
	require.Equal(t, "12.3 km/h", view.Hero.Wind)
	require.Equal(t, "Rainy", view.Hero.Description)
	require.Equal(t, "🌧️", view.Hero.Emoji)
	require.Equal(t, "05:31", view.Hero.Sunrise)
	require.Equal(t, "20:27", view.Hero.Sunset)
}

func TestRenderIsIdempotent(t *testing.T) {
	f := sampleForecast(30, 7)
	r := NewRenderer()

	first := r.Render(f, midnight())
	second := r.Render(f, midnight())

	require.Equal(t, first, second)
	require.Len(t, second.Hourly, 24)
	require.Len(t, second.Daily, 7)
}

func TestRenderHourlyLengthShortSeries(t *testing.T) {
	f := sampleForecast(10, 3)
	view := NewRenderer().Render(f, midnight())
	require.Len(t, view.Hourly, 10)
	require.Len(t, view.Daily, 3)
}

func TestRenderHourlyStartsAtHourOfDayIndex(t *testing.T) {
	f := sampleForecast(48, 2)
	// the series starts at 06:00, so index 9 is 15:00, not 09:00
	for i := range f.Hourly.Times {
		f.Hourly.Times[i] = time.Date(2024, time.July, 1, 6, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04")
	}
	now := time.Date(2024, time.July, 1, 9, 42, 0, 0, time.UTC)

	view := NewRenderer().Render(f, now)

	require.Len(t, view.Hourly, 24)
	require.Equal(t, "15:00", view.Hourly[0].Label)
	require.Equal(t, "14:00", view.Hourly[23].Label)
}

func TestRenderHourlyStopsAtSeriesEnd(t *testing.T) {
	f := sampleForecast(30, 1)
	now := time.Date(2024, time.July, 1, 20, 0, 0, 0, time.UTC)
	view := NewRenderer().Render(f, now)
	require.Len(t, view.Hourly, 10)

	late := sampleForecast(12, 1)
	require.Empty(t, NewRenderer().Render(late, now).Hourly)
}

func TestRenderHourlyAlwaysUsesDayIcon(t *testing.T) {
	f := sampleForecast(24, 1)
	f.Hourly.WeatherCodes[0] = 95
	view := NewRenderer().Render(f, midnight())
	require.Equal(t, "⛈️", view.Hourly[0].Emoji)
	require.Equal(t, "0:00", view.Hourly[0].Label)
	require.Equal(t, "☀️", view.Hourly[1].Emoji)
}

func TestRenderStatsUseFirst24Entries(t *testing.T) {
	f := sampleForecast(30, 1)
	f.Hourly.UVIndices[25] = 11
	f.Hourly.PrecipitationProbabilities[25] = 99
	view := NewRenderer().Render(f, midnight())
	require.Equal(t, "1.0", view.Hero.UVIndex)
	require.Equal(t, "5%", view.Hero.RainChance)

	f.Hourly.UVIndices[10] = 7.25
	f.Hourly.PrecipitationProbabilities[10] = 80
	view = NewRenderer().Render(f, midnight())
	require.Equal(t, "7.3", view.Hero.UVIndex)
	require.Equal(t, "80%", view.Hero.RainChance)
}

func TestRenderEmptySeriesUsesPlaceholders(t *testing.T) {
	view := NewRenderer().Render(weather.Forecast{}, midnight())
	require.Equal(t, "--", view.Hero.UVIndex)
	require.Equal(t, "--", view.Hero.RainChance)
	require.Equal(t, "--", view.Hero.Sunrise)
	require.Equal(t, "Clear", view.Hero.Description)
	require.Empty(t, view.Hourly)
	require.Empty(t, view.Daily)
}

func TestRenderDaily(t *testing.T) {
	f := sampleForecast(24, 2)
	f.Daily.Times = []string{"2024-07-01", "2024-07-02"}
	f.Daily.WeatherCodes = []int{2, 73}
	f.Daily.TempMax = []float64{24.5, -1.5}
	f.Daily.TempMin = []float64{14.4, -7.6}

	view := NewRenderer().Render(f, midnight())

	require.Equal(t, []DailyEntry{
		{Label: "Mon", Emoji: "☁️", Max: "25°", Min: "14°"},
		{Label: "Tue", Emoji: "❄️", Max: "-1°", Min: "-8°"},
	}, view.Daily)
}

func TestRoundHalfUp(t *testing.T) {
	require.Equal(t, 3, RoundHalfUp(2.5))
	require.Equal(t, -2, RoundHalfUp(-2.5))
	require.Equal(t, 0, RoundHalfUp(-0.4))
	require.Equal(t, 15, RoundHalfUp(14.9))
}

func TestMaxLeading(t *testing.T) {
	_, ok := MaxLeading(nil, 24)
	require.False(t, ok)
	got, ok := MaxLeading([]float64{1, 9, 3}, 2)
	require.True(t, ok)
	require.Equal(t, 9.0, got)
	got, _ = MaxLeading([]float64{1, 2, 30}, 2)
	require.Equal(t, 2.0, got)
}

func midnight() time.Time {
	return time.Date(2024, time.July, 1, 0, 15, 0, 0, time.UTC)
}

func sampleForecast(hours, days int) weather.Forecast {
	f := weather.Forecast{}
	start := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < hours; i++ {
		f.Hourly.Times = append(f.Hourly.Times, start.Add(time.Duration(i)*time.Hour).Format("2006-01-02T15:04"))
		f.Hourly.Temperatures = append(f.Hourly.Temperatures, 18+float64(i%5))
		f.Hourly.WeatherCodes = append(f.Hourly.WeatherCodes, 0)
		f.Hourly.PrecipitationProbabilities = append(f.Hourly.PrecipitationProbabilities, float64(i%6))
		f.Hourly.UVIndices = append(f.Hourly.UVIndices, float64(i%2))
	}
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		f.Daily.Times = append(f.Daily.Times, day.Format("2006-01-02"))
		f.Daily.WeatherCodes = append(f.Daily.WeatherCodes, 1)
		f.Daily.TempMax = append(f.Daily.TempMax, 25)
		f.Daily.TempMin = append(f.Daily.TempMin, 15)
		f.Daily.Sunrise = append(f.Daily.Sunrise, fmt.Sprintf("%sT05:31", day.Format("2006-01-02")))
		f.Daily.Sunset = append(f.Daily.Sunset, fmt.Sprintf("%sT20:27", day.Format("2006-01-02")))
		f.Daily.PrecipitationSum = append(f.Daily.PrecipitationSum, 0)
	}
	return f
}
