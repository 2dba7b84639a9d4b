package dashboard

// View is the presentation-neutral output of one render pass.
type View struct {
	Hero   Hero          `json:"hero"`
	Hourly []HourlyEntry `json:"hourly"`
	Daily  []DailyEntry  `json:"daily"`
}

// Hero holds the headline fields of the dashboard.
type Hero struct {
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
	UVIndex     string `json:"uvIndex"`
	RainChance  string `json:"rainChance"`
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	IconURL     string `json:"iconUrl"`
}

// HourlyEntry is one card of the hourly strip.
type HourlyEntry struct {
	Label       string `json:"label"`
	Emoji       string `json:"emoji"`
	Temperature string `json:"temperature"`
}

// DailyEntry is one card of the daily forecast.
type DailyEntry struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Max   string `json:"max"`
	Min   string `json:"min"`
}
