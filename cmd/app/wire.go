//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/lunara/astro-api/internal/bootstrap"
	"github.com/lunara/astro-api/internal/domain/auth"
	"github.com/lunara/astro-api/internal/domain/dream"
	"github.com/lunara/astro-api/internal/domain/natal"
	"github.com/lunara/astro-api/internal/domain/profile"
	"github.com/lunara/astro-api/internal/infra/config"
	"github.com/lunara/astro-api/internal/infra/ephemeris/freeastro"
	"github.com/lunara/astro-api/internal/infra/llm/gateway"
	httpiface "github.com/lunara/astro-api/internal/interface/http"
	"github.com/lunara/astro-api/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideGatewayClient,
		provideDreamConfig,
		provideAuthConfig,
		provideEphemerisClient,
		providePostgresPool,
		provideUserRepository,
		provideProfileRepository,
		provideDreamRepository,
		provideInsightStore,
		provideHoroscopeService,
		natal.NewService,
		dream.NewService,
		profile.NewService,
		auth.NewService,
		wire.Bind(new(dream.ChatClient), new(*gateway.Client)),
		wire.Bind(new(natal.EphemerisClient), new(*freeastro.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
