package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{-4, "Clear"},
		{0, "Clear"},
		{1, "Cloudy"},
		{3, "Cloudy"},
		{4, "Clear"},
		{44, "Clear"},
		{45, "Foggy"},
		{48, "Foggy"},
		{49, "Clear"},
		{51, "Rainy"},
		{67, "Rainy"},
		{68, "Clear"},
		{71, "Snow"},
		{72, "Snow"},
		{80, "Snow"},
		{94, "Snow"},
		{95, "Storm"},
		{96, "Storm"},
		{99, "Storm"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Classify(tc.code, true).Description, "code %d", tc.code)
		require.Equal(t, tc.want, Classify(tc.code, false).Description, "code %d at night", tc.code)
	}
}

func TestClassifyBundle(t *testing.T) {
	sunny := Classify(0, true)
	require.Equal(t, Condition{Description: "Clear", Emoji: "☀️", IconURL: iconClear}, sunny)

	fog := Classify(45, true)
	require.Equal(t, "🌫️", fog.Emoji)
	require.Equal(t, iconClear, fog.IconURL)

	storm := Classify(95, false)
	require.Equal(t, "⛈️", storm.Emoji)
	require.Equal(t, iconStorm, storm.IconURL)
}

func TestClassifyDescriptionsAreClosedSet(t *testing.T) {
	allowed := map[string]bool{"Clear": true, "Cloudy": true, "Foggy": true, "Rainy": true, "Snow": true, "Storm": true}
	for code := -10; code <= 120; code++ {
		require.True(t, allowed[Classify(code, code%2 == 0).Description], "code %d", code)
	}
}
