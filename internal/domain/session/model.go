package session

import (
	"time"

	"github.com/yanqian/vibe-weather/internal/domain/chat"
	"github.com/yanqian/vibe-weather/internal/domain/dashboard"
	"github.com/yanqian/vibe-weather/internal/domain/effects"
	"github.com/yanqian/vibe-weather/internal/domain/weather"
)

// Status tracks the outcome of the latest location lookup.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusAPIError Status = "api_error"
)

// NoticeCityNotFound is shown when geocoding has no match.
const NoticeCityNotFound = "City not found 💀"

// Panel names a toggleable overlay.
type Panel string

const (
	PanelSearch Panel = "search"
	PanelChat   Panel = "chat"
)

// Panels records overlay visibility.
type Panels struct {
	Search bool `json:"search"`
	Chat   bool `json:"chat"`
}

// State is everything one dashboard session holds. Forecast is nil until the
// first successful fetch and is replaced wholesale afterwards.
type State struct {
	ID          string             `json:"id"`
	Place       weather.Place      `json:"place"`
	Forecast    *weather.Forecast  `json:"forecast,omitempty"`
	ThemeIndex  int                `json:"themeIndex"`
	AntiGravity bool               `json:"antiGravity"`
	Status      Status             `json:"status"`
	Notice      string             `json:"notice,omitempty"`
	Panels      Panels             `json:"panels"`
	Messages    []chat.Message     `json:"messages"`
	Particles   []effects.Particle `json:"particles"`
	Timezone    string             `json:"timezone"`
	Generation  uint64             `json:"generation"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// CreateRequest opens a session.
type CreateRequest struct {
	Timezone string `json:"timezone"`
}

// Snapshot is the client-facing view of a session.
type Snapshot struct {
	ID          string             `json:"id"`
	Place       string             `json:"place"`
	Clock       string             `json:"clock"`
	Description string             `json:"description"`
	Status      Status             `json:"status"`
	Notice      string             `json:"notice,omitempty"`
	Theme       ThemeView          `json:"theme"`
	AntiGravity bool               `json:"antiGravity"`
	Panels      Panels             `json:"panels"`
	Dashboard   *dashboard.View    `json:"dashboard,omitempty"`
	Messages    []chat.Message     `json:"messages"`
	Particles   []effects.Particle `json:"particles"`
}

// Config wires runtime knobs for the session service.
type Config struct {
	DefaultCity   string
	Location      *time.Location
	TTL           time.Duration
	MaxMessages   int
	ParticleCount int
	Chat          chat.Config
}
