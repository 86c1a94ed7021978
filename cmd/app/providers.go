package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/lunara/astro-api/internal/domain/auth"
	"github.com/lunara/astro-api/internal/domain/dream"
	"github.com/lunara/astro-api/internal/domain/horoscope"
	"github.com/lunara/astro-api/internal/domain/profile"
	"github.com/lunara/astro-api/internal/infra/config"
	"github.com/lunara/astro-api/internal/infra/dreamrepo"
	"github.com/lunara/astro-api/internal/infra/ephemeris/freeastro"
	"github.com/lunara/astro-api/internal/infra/insightstore"
	"github.com/lunara/astro-api/internal/infra/llm/gateway"
	"github.com/lunara/astro-api/internal/infra/profilerepo"
	"github.com/lunara/astro-api/internal/infra/userrepo"
)

func provideGatewayClient(cfg *config.Config) (*gateway.Client, error) {
	return gateway.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, 0)
}

func provideHoroscopeConfig(cfg *config.Config) (horoscope.Config, error) {
	windows, err := cfg.Horoscope.SlowPlanetWindows()
	if err != nil {
		return horoscope.Config{}, fmt.Errorf("slow planet config: %w", err)
	}
	return horoscope.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Prompt:      cfg.Horoscope.Prompt,
		SlowPlanets: windows,
	}, nil
}

func provideHoroscopeService(cfg *config.Config, client *gateway.Client, store horoscope.Store, logger *slog.Logger) (horoscope.Service, error) {
	horoscopeCfg, err := provideHoroscopeConfig(cfg)
	if err != nil {
		return nil, err
	}
	inner := horoscope.NewService(horoscopeCfg, client, logger)
	return horoscope.NewCachedService(inner, store, horoscope.CacheConfig{
		DailyTTL:    cfg.Horoscope.DailyTTL,
		InsightsTTL: cfg.Horoscope.InsightsTTL,
	}, logger), nil
}

func provideDreamConfig(cfg *config.Config) dream.Config {
	return dream.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Prompt:      cfg.Dream.Prompt,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func provideEphemerisClient(cfg *config.Config) *freeastro.Client {
	return freeastro.NewClient(cfg.Ephemeris.APIKey, cfg.Ephemeris.BaseURL, cfg.Ephemeris.Timeout)
}

// providePostgresPool returns nil when Postgres is not configured or not
// reachable; repository providers fall back to memory implementations.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideProfileRepository(pool *pgxpool.Pool) profile.Repository {
	if pool == nil {
		return profilerepo.NewMemoryRepository()
	}
	return profilerepo.NewPostgresRepository(pool)
}

func provideDreamRepository(pool *pgxpool.Pool) dream.Repository {
	if pool == nil {
		return dreamrepo.NewMemoryRepository()
	}
	return dreamrepo.NewPostgresRepository(pool)
}

func provideInsightStore(cfg *config.Config, logger *slog.Logger) horoscope.Store {
	if cfg.Horoscope.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return insightstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return insightstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey insight store enabled", "addr", cfg.Horoscope.Valkey.Addr)
			return insightstore.NewValkeyStore(client, "astro")
		}
	}
	return insightstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Horoscope.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Horoscope.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Horoscope.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
