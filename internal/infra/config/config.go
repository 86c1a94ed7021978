package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lunara/astro-api/internal/astro"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Horoscope HoroscopeConfig `yaml:"horoscope"`
	Dream     DreamConfig     `yaml:"dream"`
	Ephemeris EphemerisConfig `yaml:"ephemeris"`
	Auth      AuthConfig      `yaml:"auth"`
	Postgres  PostgresConfig  `yaml:"postgres"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains AI gateway settings.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// HoroscopeConfig controls the daily transit and insight domain.
type HoroscopeConfig struct {
	Prompt      string             `yaml:"prompt"`
	DailyTTL    time.Duration      `yaml:"dailyTtl"`
	InsightsTTL time.Duration      `yaml:"insightsTtl"`
	SlowPlanets []SlowPlanetConfig `yaml:"slowPlanets"`
	Valkey      ValkeyConfig       `yaml:"valkey"`
}

// SlowPlanetConfig is the hand-maintained position of a slow body. Entries
// carry a version tag and a validity window so an expired ephemeris update
// is detected instead of silently served.
type SlowPlanetConfig struct {
	Planet          string `yaml:"planet"`
	Sign            string `yaml:"sign"`
	Retrograde      bool   `yaml:"retrograde"`
	Degree          int    `yaml:"degree"`
	StartOffsetDays int    `yaml:"startOffsetDays"`
	EndOffsetDays   int    `yaml:"endOffsetDays"`
	LifeArea        string `yaml:"lifeArea"`
	ValidFrom       string `yaml:"validFrom"`
	ValidUntil      string `yaml:"validUntil"`
	Version         string `yaml:"version"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DreamConfig controls the dream interpretation domain.
type DreamConfig struct {
	Prompt string `yaml:"prompt"`
}

// EphemerisConfig points at the precise natal chart provider.
type EphemerisConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// AuthConfig carries token signing settings.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"tokenTtl"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
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
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("HOROSCOPE_PROMPT"); v != "" {
		cfg.Horoscope.Prompt = v
	}
	if v := os.Getenv("HOROSCOPE_DAILY_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Horoscope.DailyTTL = parsed
		}
	}
	if v := os.Getenv("HOROSCOPE_INSIGHTS_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Horoscope.InsightsTTL = parsed
		}
	}
	if v := os.Getenv("HOROSCOPE_VALKEY_ENABLED"); v != "" {
		cfg.Horoscope.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HOROSCOPE_VALKEY_ADDR"); v != "" {
		cfg.Horoscope.Valkey.Addr = v
	}
	if v := os.Getenv("DREAM_PROMPT"); v != "" {
		cfg.Dream.Prompt = v
	}
	if v := os.Getenv("EPHEMERIS_API_KEY"); v != "" {
		cfg.Ephemeris.APIKey = v
	}
	if v := os.Getenv("EPHEMERIS_BASE_URL"); v != "" {
		cfg.Ephemeris.BaseURL = v
	}
	if v := os.Getenv("EPHEMERIS_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Ephemeris.Timeout = parsed
		}
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		LLM: LLMConfig{
			BaseURL:     "https://ai.gateway.lovable.dev/v1",
			Model:       "google/gemini-2.5-flash",
			Temperature: 0.7,
		},
		Horoscope: HoroscopeConfig{
			DailyTTL:    6 * time.Hour,
			InsightsTTL: 12 * time.Hour,
		},
		Ephemeris: EphemerisConfig{
			BaseURL: "https://json.freeastrologyapi.com",
			Timeout: 12 * time.Second,
		},
		Auth: AuthConfig{
			Secret:   "dev-secret-change-me",
			TokenTTL: 24 * time.Hour,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
			MinConns: 0,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.Horoscope.DailyTTL < 0 {
		return errors.New("horoscope.dailyTtl cannot be negative")
	}
	if c.Horoscope.InsightsTTL < 0 {
		return errors.New("horoscope.insightsTtl cannot be negative")
	}
	if c.Horoscope.Valkey.Enabled && strings.TrimSpace(c.Horoscope.Valkey.Addr) == "" {
		return errors.New("horoscope.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if _, err := c.Horoscope.SlowPlanetWindows(); err != nil {
		return fmt.Errorf("horoscope.slowPlanets: %w", err)
	}
	if strings.TrimSpace(c.Ephemeris.BaseURL) == "" {
		return errors.New("ephemeris.baseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTtl must be positive")
	}
	return nil
}

// SlowPlanetWindows converts the configured entries into domain windows.
// An empty list means the built-in defaults apply.
func (h HoroscopeConfig) SlowPlanetWindows() ([]astro.SlowPlanetWindow, error) {
	if len(h.SlowPlanets) == 0 {
		return nil, nil
	}
	windows := make([]astro.SlowPlanetWindow, 0, len(h.SlowPlanets))
	for _, entry := range h.SlowPlanets {
		planet, ok := astro.ParsePlanet(entry.Planet)
		if !ok {
			return nil, fmt.Errorf("unknown planet %q", entry.Planet)
		}
		sign, ok := astro.ParseSign(entry.Sign)
		if !ok {
			return nil, fmt.Errorf("unknown sign %q", entry.Sign)
		}
		validFrom, err := time.Parse("2006-01-02", entry.ValidFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid validFrom for %s: %w", entry.Planet, err)
		}
		validUntil, err := time.Parse("2006-01-02", entry.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("invalid validUntil for %s: %w", entry.Planet, err)
		}
		if entry.Version == "" {
			return nil, fmt.Errorf("missing version for %s", entry.Planet)
		}
		windows = append(windows, astro.SlowPlanetWindow{
			Planet:          planet,
			Sign:            sign,
			Retrograde:      entry.Retrograde,
			Degree:          entry.Degree,
			StartOffsetDays: entry.StartOffsetDays,
			EndOffsetDays:   entry.EndOffsetDays,
			LifeArea:        entry.LifeArea,
			ValidFrom:       validFrom,
			ValidUntil:      validUntil,
			Version:         entry.Version,
		})
	}
	return windows, nil
}
