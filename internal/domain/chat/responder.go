package chat

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/vibe-weather/internal/domain/dashboard"
	"github.com/yanqian/vibe-weather/internal/domain/weather"
)

const (
	rainWindow    = 12
	rainThreshold = 30.0
	warmThreshold = 15.0
)

// Canned replies.
const (
	ReplyLocateFirst = "Let me locate you first! 🌍"
	ReplyDry         = "Nah, dry vibes ahead. ☀️"
	ReplyJacket      = "It's giving chilly. Wear a jacket! 🧥"
	ReplyTShirt      = "It's warm! T-shirt time. 👕"
	ReplyUnknown     = "I'm just a vibe bot, I don't know that! 💀"
)

// Quick reply shortcuts.
const (
	QuickOutfit = "outfit"
	QuickRain   = "rain"
)

var quickPrompts = map[string]string{
	QuickOutfit: "What should I wear?",
	QuickRain:   "Will it rain?",
}

// QuickPrompt returns the message a shortcut stands for.
func QuickPrompt(kind string) (string, bool) {
	prompt, ok := quickPrompts[strings.ToLower(strings.TrimSpace(kind))]
	return prompt, ok
}

// Respond answers text using simple keyword rules. The first rule that
// matches wins: rain, then clothing, then a fallback.
func Respond(text string, f *weather.Forecast) string {
	if f == nil {
		return ReplyLocateFirst
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "rain"):
		prob, _ := dashboard.MaxLeading(f.Hourly.PrecipitationProbabilities, rainWindow)
		if prob > rainThreshold {
			return fmt.Sprintf("Yep, %s%% chance coming up. Bring an umbrella! ☔", strconv.FormatFloat(prob, 'f', -1, 64))
		}
		return ReplyDry
	case strings.Contains(lower, "wear") || strings.Contains(lower, "clothes"):
		if f.Current.Temperature < warmThreshold {
			return ReplyJacket
		}
		return ReplyTShirt
	default:
		return ReplyUnknown
	}
}

// DelayFor reports how long the assistant "types" before replying.
func (c Config) DelayFor(f *weather.Forecast) time.Duration {
	if f == nil {
		return c.GuidanceDelay
	}
	return c.ReplyDelay
}
