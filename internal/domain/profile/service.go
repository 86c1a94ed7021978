package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/lunara/astro-api/pkg/errors"
)

// UpdateRequest carries the editable birth data fields.
type UpdateRequest struct {
	BirthDate      string   `json:"birthDate"`
	BirthTime      string   `json:"birthTime"`
	BirthLatitude  *float64 `json:"birthLatitude"`
	BirthLongitude *float64 `json:"birthLongitude"`
}

// Service manages per-user profile records.
type Service interface {
	Get(ctx context.Context, userID int64) (Profile, error)
	Update(ctx context.Context, userID int64, req UpdateRequest) (Profile, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires up the profile domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "profile.service"),
	}
}

func (s *service) Get(ctx context.Context, userID int64) (Profile, error) {
	p, found, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Profile{}, apperrors.Wrap("profile_error", "falha ao buscar perfil", err)
	}
	if !found {
		return Profile{}, apperrors.Wrap("profile_not_found", "Perfil não encontrado", nil)
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, userID int64, req UpdateRequest) (Profile, error) {
	p := Profile{UserID: userID}

	if req.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return Profile{}, apperrors.Wrap("invalid_input", "data de nascimento inválida", err)
		}
		p.BirthDate = &parsed
	}
	if req.BirthTime != "" {
		if _, err := time.Parse("15:04", strings.TrimSpace(req.BirthTime)); err != nil {
			return Profile{}, apperrors.Wrap("invalid_input", "hora de nascimento inválida", err)
		}
		p.BirthTime = strings.TrimSpace(req.BirthTime)
	}
	if req.BirthLatitude != nil {
		if *req.BirthLatitude < -90 || *req.BirthLatitude > 90 {
			return Profile{}, apperrors.Wrap("invalid_input", "latitude fora do intervalo", nil)
		}
		p.BirthLatitude = req.BirthLatitude
	}
	if req.BirthLongitude != nil {
		if *req.BirthLongitude < -180 || *req.BirthLongitude > 180 {
			return Profile{}, apperrors.Wrap("invalid_input", "longitude fora do intervalo", nil)
		}
		p.BirthLongitude = req.BirthLongitude
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, apperrors.Wrap("storage_error", "falha ao salvar perfil", err)
	}
	s.logger.Info("profile updated", "userId", userID)

	updated, found, err := s.repo.GetByUserID(ctx, userID)
	if err != nil || !found {
		return p, nil
	}
	return updated, nil
}
