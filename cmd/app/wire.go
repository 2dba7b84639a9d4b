//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/vibe-weather/internal/bootstrap"
	"github.com/yanqian/vibe-weather/internal/domain/chat"
	"github.com/yanqian/vibe-weather/internal/domain/session"
	"github.com/yanqian/vibe-weather/internal/domain/weather"
	"github.com/yanqian/vibe-weather/internal/infra/config"
	"github.com/yanqian/vibe-weather/internal/infra/openmeteo"
	httpiface "github.com/yanqian/vibe-weather/internal/interface/http"
	"github.com/yanqian/vibe-weather/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideLocation,
		provideClockFormatter,
		provideSessionConfig,
		provideOpenMeteoClient,
		provideSessionStore,
		chat.NewScheduler,
		session.NewService,
		wire.Bind(new(weather.Geocoder), new(*openmeteo.Client)),
		wire.Bind(new(weather.ForecastFetcher), new(*openmeteo.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
