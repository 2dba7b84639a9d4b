package weather

const (
	iconClear  = "https://cdn-icons-png.flaticon.com/512/869/869869.png"
	iconCloudy = "https://cdn-icons-png.flaticon.com/512/1146/1146869.png"
	iconRainy  = "https://cdn-icons-png.flaticon.com/512/3351/3351979.png"
	iconSnow   = "https://cdn-icons-png.flaticon.com/512/2315/2315309.png"
	iconStorm  = "https://cdn-icons-png.flaticon.com/512/1146/1146860.png"
)

// Condition is the display bundle for a WMO weather code.
type Condition struct {
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	IconURL     string `json:"iconUrl"`
}

// Classify maps a WMO code to a Condition. The first matching band wins:
// 1-3, 45-48, 51-67, >=95, >=71; anything else is clear. isDay does not
// change the result.
func Classify(code int, isDay bool) Condition {
	switch {
	case code >= 1 && code <= 3:
		return Condition{Description: "Cloudy", Emoji: "☁️", IconURL: iconCloudy}
	case code >= 45 && code <= 48:
		// fog has no icon of its own
		return Condition{Description: "Foggy", Emoji: "🌫️", IconURL: iconClear}
	case code >= 51 && code <= 67:
		return Condition{Description: "Rainy", Emoji: "🌧️", IconURL: iconRainy}
	case code >= 95:
		return Condition{Description: "Storm", Emoji: "⛈️", IconURL: iconStorm}
	case code >= 71:
		return Condition{Description: "Snow", Emoji: "❄️", IconURL: iconSnow}
	default:
		return Condition{Description: "Clear", Emoji: "☀️", IconURL: iconClear}
	}
}
