package profile

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/lunara/astro-api/pkg/errors"
)

type fakeRepo struct {
	profiles map[int64]Profile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[int64]Profile)}
}

func (r *fakeRepo) GetByUserID(_ context.Context, userID int64) (Profile, bool, error) {
	p, ok := r.profiles[userID]
	return p, ok, nil
}

func (r *fakeRepo) Upsert(_ context.Context, p Profile) error {
	existing := r.profiles[p.UserID]
	existing.UserID = p.UserID
	existing.BirthDate = p.BirthDate
	existing.BirthTime = p.BirthTime
	existing.BirthLatitude = p.BirthLatitude
	existing.BirthLongitude = p.BirthLongitude
	r.profiles[p.UserID] = existing
	return nil
}

func (r *fakeRepo) SaveChart(_ context.Context, userID int64, update ChartUpdate) error {
	existing := r.profiles[userID]
	existing.UserID = userID
	existing.SunSign = update.SunSign
	existing.MoonSign = update.MoonSign
	existing.AscendantSign = update.AscendantSign
	existing.AstroData = update.AstroData
	r.profiles[userID] = existing
	return nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestUpdateAndGet(t *testing.T) {
	svc := newTestService(newFakeRepo())
	lat := -23.55

	p, err := svc.Update(context.Background(), 7, UpdateRequest{
		BirthDate:     "1990-11-25",
		BirthTime:     "08:30",
		BirthLatitude: &lat,
	})
	require.NoError(t, err)
	require.NotNil(t, p.BirthDate)
	require.Equal(t, "08:30", p.BirthTime)
	require.True(t, p.HasBirthData())

	fetched, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), fetched.UserID)
	require.Equal(t, "08:30", fetched.BirthTime)
}

func TestGetMissingProfile(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	require.Equal(t, "profile_not_found", apperrors.Code(err))
}

func TestUpdateValidation(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Update(context.Background(), 7, UpdateRequest{BirthDate: "25/11/1990"})
	require.Equal(t, "invalid_input", apperrors.Code(err))

	_, err = svc.Update(context.Background(), 7, UpdateRequest{BirthTime: "morning"})
	require.Equal(t, "invalid_input", apperrors.Code(err))

	lat := 123.0
	_, err = svc.Update(context.Background(), 7, UpdateRequest{BirthLatitude: &lat})
	require.Equal(t, "invalid_input", apperrors.Code(err))
}
