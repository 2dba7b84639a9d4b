package clock

import (
	"context"
	"strings"
	"time"
)

// Config controls how the header clock is rendered.
type Config struct {
	TimeLayout string
	DateLayout string
	Separator  string
	Interval   time.Duration
}

// Formatter renders the wall clock for one time zone.
type Formatter struct {
	cfg      Config
	location *time.Location
	now      func() time.Time
}

// NewFormatter builds a Formatter; a nil location means time.Local.
func NewFormatter(cfg Config, location *time.Location) *Formatter {
	if location == nil {
		location = time.Local
	}
	if cfg.TimeLayout == "" {
		cfg.TimeLayout = "15:04"
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = "Monday 2"
	}
	if cfg.Separator == "" {
		cfg.Separator = " • "
	}
	return &Formatter{cfg: cfg, location: location, now: time.Now}
}

// In returns a copy of the formatter bound to another zone.
func (f *Formatter) In(location *time.Location) *Formatter {
	clone := *f
	if location != nil {
		clone.location = location
	}
	return &clone
}

// Location reports the zone used for formatting.
func (f *Formatter) Location() *time.Location {
	return f.location
}

// FormatNow renders the current time and date, e.g. "09:41 • Tuesday 16".
func (f *Formatter) FormatNow() string {
	return f.Format(f.now())
}

// Format renders t using the configured layouts.
func (f *Formatter) Format(t time.Time) string {
	t = t.In(f.location)
	return t.Format(f.cfg.TimeLayout) + f.cfg.Separator + t.Format(f.cfg.DateLayout)
}

// Run calls fn with the formatted time once immediately and then on every
// tick until ctx is done.
func (f *Formatter) Run(ctx context.Context, fn func(string)) {
	interval := f.cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	fn(f.FormatNow())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(f.FormatNow())
		}
	}
}

// LoadLocation resolves an IANA zone name; blank or unknown names fall back.
func LoadLocation(name string, fallback *time.Location) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
