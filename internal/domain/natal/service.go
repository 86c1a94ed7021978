// Package natal generates natal charts: precise when the external ephemeris
// provider answers, approximate otherwise. Chart generation never hard-fails
// because of a provider outage.
package natal

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/lunara/astro-api/internal/astro"
	"github.com/lunara/astro-api/internal/domain/profile"
	apperrors "github.com/lunara/astro-api/pkg/errors"
)

// Result pairs the chart with the approximation flag the UI must branch on.
type Result struct {
	Chart           astro.Chart `json:"astroData"`
	IsApproximation bool        `json:"isApproximation"`
}

// BirthInput carries the parameters forwarded to the ephemeris provider.
type BirthInput struct {
	Date      time.Time
	Time      string
	Latitude  float64
	Longitude float64
}

// EphemerisClient is the precise chart provider boundary.
type EphemerisClient interface {
	NatalChart(ctx context.Context, input BirthInput) (astro.Chart, error)
}

// Service generates and persists natal charts.
type Service interface {
	Generate(ctx context.Context, userID int64) (Result, error)
}

type service struct {
	repo      profile.Repository
	ephemeris EphemerisClient
	logger    *slog.Logger
}

// NewService wires up the natal chart domain.
func NewService(repo profile.Repository, ephemeris EphemerisClient, logger *slog.Logger) Service {
	return &service{
		repo:      repo,
		ephemeris: ephemeris,
		logger:    logger.With("component", "natal.service"),
	}
}

// Generate reads the user's birth data, tries the precise provider and falls
// back to the local approximation on any provider failure. The resulting
// signs and chart are written back to the profile before returning.
func (s *service) Generate(ctx context.Context, userID int64) (Result, error) {
	p, found, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Result{}, apperrors.Wrap("profile_error", "falha ao buscar perfil", err)
	}
	if !found {
		return Result{}, apperrors.Wrap("profile_not_found", "Perfil não encontrado", nil)
	}
	if !p.HasBirthData() {
		return Result{}, apperrors.Wrap("invalid_input", "Dados de nascimento incompletos", nil)
	}

	var latitude, longitude float64
	if p.BirthLatitude != nil {
		latitude = *p.BirthLatitude
	}
	if p.BirthLongitude != nil {
		longitude = *p.BirthLongitude
	}

	chart, err := s.ephemeris.NatalChart(ctx, BirthInput{
		Date:      *p.BirthDate,
		Time:      p.BirthTime,
		Latitude:  latitude,
		Longitude: longitude,
	})
	isApproximation := false
	if err != nil {
		s.logger.Warn("ephemeris provider failed, falling back to approximation", "error", err)
		chart, err = astro.ApproximateChart(*p.BirthDate, p.BirthTime, latitude)
		if err != nil {
			return Result{}, apperrors.Wrap("invalid_input", "dados de nascimento inválidos", err)
		}
		isApproximation = true
	}
	chart.IsApproximation = isApproximation

	payload, err := json.Marshal(chart)
	if err != nil {
		return Result{}, apperrors.Wrap("chart_error", "falha ao serializar mapa astral", err)
	}
	update := profile.ChartUpdate{
		SunSign:       chart.Sun.Sign.String(),
		MoonSign:      chart.Moon.Sign.String(),
		AscendantSign: chart.Ascendant.Sign.String(),
		AstroData:     payload,
	}
	if err := s.repo.SaveChart(ctx, userID, update); err != nil {
		return Result{}, apperrors.Wrap("profile_error", "Erro ao salvar mapa astral", err)
	}

	s.logger.Info("natal chart generated", "userId", userID, "approximation", isApproximation)
	return Result{Chart: chart, IsApproximation: isApproximation}, nil
}
