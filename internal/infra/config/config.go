package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/vibe-weather/internal/domain/effects"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	OpenMeteo OpenMeteoConfig `yaml:"openMeteo"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Chat      ChatConfig      `yaml:"chat"`
	Clock     ClockConfig     `yaml:"clock"`
	Effects   EffectsConfig   `yaml:"effects"`
	Session   SessionConfig   `yaml:"session"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
}

// LogConfig selects the slog level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// OpenMeteoConfig points the geocoding and forecast clients at their endpoints.
type OpenMeteoConfig struct {
	GeocodeBaseURL  string        `yaml:"geocodeBaseUrl"`
	ForecastBaseURL string        `yaml:"forecastBaseUrl"`
	Language        string        `yaml:"language"`
	Timeout         time.Duration `yaml:"timeout"`
	UserAgent       string        `yaml:"userAgent"`
}

// DashboardConfig holds what a fresh session shows.
type DashboardConfig struct {
	DefaultCity string `yaml:"defaultCity"`
	Timezone    string `yaml:"timezone"`
}

// ChatConfig controls the typing delay and log size of the chat assistant.
type ChatConfig struct {
	ReplyDelay    time.Duration `yaml:"replyDelay"`
	GuidanceDelay time.Duration `yaml:"guidanceDelay"`
	MaxMessages   int           `yaml:"maxMessages"`
}

// ClockConfig drives the date/time header.
type ClockConfig struct {
	Interval   time.Duration `yaml:"interval"`
	TimeLayout string        `yaml:"timeLayout"`
	DateLayout string        `yaml:"dateLayout"`
	Separator  string        `yaml:"separator"`
}

// EffectsConfig sizes the decorative background.
type EffectsConfig struct {
	ParticleCount int `yaml:"particleCount"`
}

// SessionConfig controls where live sessions are kept and for how long.
type SessionConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	Valkey ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the session store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("PORT"); v != "" && os.Getenv("HTTP_ADDRESS") == "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_SHUTDOWN_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ShutdownTimeout = parsed
		}
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("OPEN_METEO_GEOCODE_URL"); v != "" {
		cfg.OpenMeteo.GeocodeBaseURL = v
	}
	if v := os.Getenv("OPEN_METEO_FORECAST_URL"); v != "" {
		cfg.OpenMeteo.ForecastBaseURL = v
	}
	if v := os.Getenv("OPEN_METEO_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.OpenMeteo.Timeout = parsed
		}
	}
	if v := os.Getenv("OPEN_METEO_USER_AGENT"); v != "" {
		cfg.OpenMeteo.UserAgent = v
	}
	if v := os.Getenv("DASHBOARD_DEFAULT_CITY"); v != "" {
		cfg.Dashboard.DefaultCity = v
	}
	if v := os.Getenv("DASHBOARD_TIMEZONE"); v != "" {
		cfg.Dashboard.Timezone = v
	}
	if v := os.Getenv("CHAT_REPLY_DELAY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Chat.ReplyDelay = parsed
		}
	}
	if v := os.Getenv("CHAT_GUIDANCE_DELAY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Chat.GuidanceDelay = parsed
		}
	}
	if v := os.Getenv("CHAT_MAX_MESSAGES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.MaxMessages = parsed
		}
	}
	if v := os.Getenv("CLOCK_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Clock.Interval = parsed
		}
	}
	if v := os.Getenv("EFFECTS_PARTICLE_COUNT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Effects.ParticleCount = parsed
		}
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.TTL = parsed
		}
	}
	if v := os.Getenv("SESSION_VALKEY_ENABLED"); v != "" {
		cfg.Session.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SESSION_VALKEY_ADDR"); v != "" {
		cfg.Session.Valkey.Addr = v
	}
	if v := os.Getenv("SESSION_VALKEY_PREFIX"); v != "" {
		cfg.Session.Valkey.Prefix = v
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if clean := strings.TrimSpace(p); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    0,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		OpenMeteo: OpenMeteoConfig{
			GeocodeBaseURL:  "https://geocoding-api.open-meteo.com/v1/search",
			ForecastBaseURL: "https://api.open-meteo.com/v1/forecast",
			Language:        "en",
			Timeout:         0,
			UserAgent:       "vibe-weather/1.0",
		},
		Dashboard: DashboardConfig{
			DefaultCity: "New York",
			Timezone:    "Local",
		},
		Chat: ChatConfig{
			ReplyDelay:    600 * time.Millisecond,
			GuidanceDelay: 500 * time.Millisecond,
			MaxMessages:   50,
		},
		Clock: ClockConfig{
			Interval:   time.Minute,
			TimeLayout: "15:04",
			DateLayout: "Monday 2",
			Separator:  " • ",
		},
		Effects: EffectsConfig{
			ParticleCount: effects.DefaultParticleCount,
		},
		Session: SessionConfig{
			TTL: 12 * time.Hour,
			Valkey: ValkeyConfig{
				Enabled: false,
				Addr:    "",
				Prefix:  "vibe-weather:session",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.OpenMeteo.GeocodeBaseURL) == "" {
		return errors.New("openMeteo.geocodeBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.OpenMeteo.ForecastBaseURL) == "" {
		return errors.New("openMeteo.forecastBaseUrl cannot be empty")
	}
	if c.OpenMeteo.Timeout < 0 {
		return errors.New("openMeteo.timeout cannot be negative")
	}
	if c.Chat.ReplyDelay < 0 || c.Chat.GuidanceDelay < 0 {
		return errors.New("chat delays cannot be negative")
	}
	if c.Chat.MaxMessages <= 0 {
		return errors.New("chat.maxMessages must be positive")
	}
	if c.Clock.Interval <= 0 {
		return errors.New("clock.interval must be positive")
	}
	if c.Clock.TimeLayout == "" || c.Clock.DateLayout == "" {
		return errors.New("clock layouts cannot be empty")
	}
	if c.Effects.ParticleCount <= 0 {
		return errors.New("effects.particleCount must be positive")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Session.Valkey.Enabled && strings.TrimSpace(c.Session.Valkey.Addr) == "" {
		return errors.New("session.valkey.addr cannot be empty when valkey is enabled")
	}
	if _, err := time.LoadLocation(c.Dashboard.Timezone); err != nil {
		return fmt.Errorf("dashboard.timezone: %w", err)
	}
	return nil
}
