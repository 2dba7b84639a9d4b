package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/yanqian/vibe-weather/internal/domain/weather"
)

const (
	// statWindow is how many leading hourly entries feed the UV and rain stats.
	statWindow = 24
	// stripLength caps the hourly strip.
	stripLength = 24

	placeholder = "--"
)

var localLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339}

// Renderer turns a forecast into a View. It holds no state, so rendering the
// same forecast at the same instant always yields the same View.
type Renderer struct{}

// NewRenderer constructs the render pipeline.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the hero block and both strips. now is the viewer's local
// time; its hour of day is used as the first hourly index.
func (r *Renderer) Render(f weather.Forecast, now time.Time) View {
	cond := weather.Classify(f.Current.WeatherCode, f.Current.IsDay)

	hero := Hero{
		Temperature: formatDegrees(f.Current.Temperature),
		Humidity:    formatNumber(f.Current.Humidity) + "%",
		Wind:        formatNumber(f.Current.WindSpeed) + " km/h",
		UVIndex:     placeholder,
		RainChance:  placeholder,
		Sunrise:     placeholder,
		Sunset:      placeholder,
		Description: cond.Description,
		Emoji:       cond.Emoji,
		IconURL:     cond.IconURL,
	}
	if uv, ok := MaxLeading(f.Hourly.UVIndices, statWindow); ok {
		hero.UVIndex = formatTenths(uv)
	}
	if rain, ok := MaxLeading(f.Hourly.PrecipitationProbabilities, statWindow); ok {
		hero.RainChance = formatNumber(rain) + "%"
	}
	if len(f.Daily.Sunrise) > 0 {
		hero.Sunrise = formatClock(f.Daily.Sunrise[0])
	}
	if len(f.Daily.Sunset) > 0 {
		hero.Sunset = formatClock(f.Daily.Sunset[0])
	}

	return View{
		Hero:   hero,
		Hourly: r.hourly(f.Hourly, now.Hour()),
		Daily:  r.daily(f.Daily),
	}
}

// hourly uses the hour of day as an array offset rather than matching
// timestamps, so a series that does not start at local midnight is shifted.
func (r *Renderer) hourly(h weather.Hourly, start int) []HourlyEntry {
	entries := make([]HourlyEntry, 0, stripLength)
	for i := start; i < start+stripLength; i++ {
		if i >= h.Len() {
			break
		}
		label := h.Times[i]
		if ts, ok := parseLocal(h.Times[i]); ok {
			label = fmt.Sprintf("%d:00", ts.Hour())
		}
		entries = append(entries, HourlyEntry{
			Label:       label,
			Emoji:       weather.Classify(valueAt(h.WeatherCodes, i), true).Emoji,
			Temperature: formatDegrees(floatAt(h.Temperatures, i)),
		})
	}
	return entries
}

func (r *Renderer) daily(d weather.Daily) []DailyEntry {
	entries := make([]DailyEntry, 0, d.Len())
	for i, day := range d.Times {
		label := day
		if ts, err := time.Parse("2006-01-02", day); err == nil {
			label = ts.Format("Mon")
		}
		entries = append(entries, DailyEntry{
			Label: label,
			Emoji: weather.Classify(valueAt(d.WeatherCodes, i), true).Emoji,
			Max:   formatDegrees(floatAt(d.TempMax, i)),
			Min:   formatDegrees(floatAt(d.TempMin, i)),
		})
	}
	return entries
}

// MaxLeading returns the maximum of the first n values (all of them when the
// series is shorter). ok is false for an empty series.
func MaxLeading(values []float64, n int) (float64, bool) {
	if n > len(values) {
		n = len(values)
	}
	if n <= 0 {
		return 0, false
	}
	maxVal := values[0]
	for _, v := range values[1:n] {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal, true
}

// RoundHalfUp rounds .5 towards positive infinity.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func formatDegrees(v float64) string {
	return strconv.Itoa(RoundHalfUp(v)) + "°"
}

// formatTenths keeps one decimal, rounding halves up.
func formatTenths(v float64) string {
	return strconv.FormatFloat(math.Floor(v*10+0.5)/10, 'f', 1, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatClock renders a provider-local timestamp as HH:MM without shifting zones.
func formatClock(raw string) string {
	ts, ok := parseLocal(raw)
	if !ok {
		return placeholder
	}
	return ts.Format("15:04")
}

func parseLocal(raw string) (time.Time, bool) {
	for _, layout := range localLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func valueAt(values []int, i int) int {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func floatAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
