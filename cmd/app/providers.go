package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/vibe-weather/internal/domain/chat"
	"github.com/yanqian/vibe-weather/internal/domain/clock"
	"github.com/yanqian/vibe-weather/internal/domain/session"
	"github.com/yanqian/vibe-weather/internal/infra/config"
	"github.com/yanqian/vibe-weather/internal/infra/openmeteo"
	"github.com/yanqian/vibe-weather/internal/infra/sessionstore"
)

func provideLocation(cfg *config.Config) *time.Location {
	return clock.LoadLocation(cfg.Dashboard.Timezone, time.Local)
}

func provideClockFormatter(cfg *config.Config, loc *time.Location) *clock.Formatter {
	return clock.NewFormatter(clock.Config{
		TimeLayout: cfg.Clock.TimeLayout,
		DateLayout: cfg.Clock.DateLayout,
		Separator:  cfg.Clock.Separator,
		Interval:   cfg.Clock.Interval,
	}, loc)
}

func provideSessionConfig(cfg *config.Config, loc *time.Location) session.Config {
	return session.Config{
		DefaultCity:   cfg.Dashboard.DefaultCity,
		Location:      loc,
		TTL:           cfg.Session.TTL,
		MaxMessages:   cfg.Chat.MaxMessages,
		ParticleCount: cfg.Effects.ParticleCount,
		Chat: chat.Config{
			ReplyDelay:    cfg.Chat.ReplyDelay,
			GuidanceDelay: cfg.Chat.GuidanceDelay,
		},
	}
}

func provideOpenMeteoClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(openmeteo.Config{
		GeocodeBaseURL:  cfg.OpenMeteo.GeocodeBaseURL,
		ForecastBaseURL: cfg.OpenMeteo.ForecastBaseURL,
		Language:        cfg.OpenMeteo.Language,
		Timeout:         cfg.OpenMeteo.Timeout,
		UserAgent:       cfg.OpenMeteo.UserAgent,
	})
}

func provideSessionStore(cfg *config.Config, logger *slog.Logger) (session.Store, func()) {
	noop := func() {}
	if !cfg.Session.Valkey.Enabled {
		return sessionstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return sessionstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return sessionstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return sessionstore.NewMemoryStore(), noop
	}
	logger.Info("session valkey store enabled", "addr", cfg.Session.Valkey.Addr)
	return sessionstore.NewValkeyStore(client, cfg.Session.Valkey.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Session.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Session.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Session.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
