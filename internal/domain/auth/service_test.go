package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/lunara/astro-api/pkg/errors"
)

type memoryRepo struct {
	users  map[string]User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]User), nextID: 1}
}

func (r *memoryRepo) Create(_ context.Context, email, nickname, passwordHash string) (User, error) {
	if _, ok := r.users[email]; ok {
		return User{}, ErrEmailExists
	}
	user := User{
		ID:           r.nextID,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.nextID++
	r.users[email] = user
	return user, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	user, ok := r.users[email]
	return user, ok, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (User, bool, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

func newTestService(repo Repository) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(Config{Secret: "test-secret", TokenTTL: time.Hour}, repo, logger)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	view, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Luna@Example.com",
		Password: "starlight8",
		Nickname: "Luna",
	})
	require.NoError(t, err)
	require.Equal(t, "luna@example.com", view.Email)
	require.Equal(t, "Luna", view.Nickname)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "luna@example.com",
		Password: "starlight8",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, view.ID, resp.User.ID)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, view.ID, claims.UserID)
	require.Equal(t, "luna@example.com", claims.Email)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestRegisterDefaultsNickname(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	view, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "sol@example.com",
		Password: "password1",
	})
	require.NoError(t, err)
	require.Equal(t, "sol", view.Nickname)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "password2"})
	require.Error(t, err)
	require.Equal(t, "email_exists", apperrors.Code(err))
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "password1"})
	require.Equal(t, "invalid_input", apperrors.Code(err))

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "ok@example.com", Password: "short"})
	require.Equal(t, "invalid_input", apperrors.Code(err))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "wrong-pass"})
	require.Equal(t, "invalid_credentials", apperrors.Code(err))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "missing@b.com", Password: "password1"})
	require.Equal(t, "invalid_credentials", apperrors.Code(err))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.ValidateToken(context.Background(), "")
	require.Equal(t, "invalid_token", apperrors.Code(err))

	_, err = svc.ValidateToken(context.Background(), "not.a.token")
	require.Equal(t, "invalid_token", apperrors.Code(err))
}
