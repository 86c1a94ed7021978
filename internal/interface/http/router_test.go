package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lunara/astro-api/internal/domain/auth"
	"github.com/lunara/astro-api/internal/domain/dream"
	"github.com/lunara/astro-api/internal/domain/horoscope"
	"github.com/lunara/astro-api/internal/domain/natal"
	"github.com/lunara/astro-api/internal/domain/profile"
	"github.com/lunara/astro-api/internal/infra/config"
	"github.com/lunara/astro-api/internal/infra/userrepo"
	apperrors "github.com/lunara/astro-api/pkg/errors"
)

type routerFixture struct {
	server    *http.Server
	horoscope *stubHoroscope
	natal     *stubNatal
	dream     *stubDream
	profile   *stubProfile
}

func TestRouter_DailyTransitsSuccess(t *testing.T) {
	fixture := newRouterUnderTest(t)
	fixture.horoscope.dailyFn = func(context.Context) (horoscope.DailyTransits, error) {
		return horoscope.DailyTransits{Date: "2025-11-22"}, nil
	}

	rec := performRequest(http.MethodPost, "/functions/get-daily-transits", `{}`, "", fixture.server)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]horoscope.DailyTransits
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "2025-11-22", body["transits"].Date)
}

func TestRouter_TransitInsightsRateLimited(t *testing.T) {
	fixture := newRouterUnderTest(t)
	fixture.horoscope.insightsFn = func(context.Context) (horoscope.TransitInsights, error) {
		return horoscope.TransitInsights{}, apperrors.Wrap("rate_limited", "limite excedido", nil)
	}

	rec := performRequest(http.MethodPost, "/functions/get-transit-insights", `{}`, "", fixture.server)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "rate_limited", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "Limite de requisições")
}

func TestRouter_TransitInsightsQuotaExhausted(t *testing.T) {
	fixture := newRouterUnderTest(t)
	fixture.horoscope.insightsFn = func(context.Context) (horoscope.TransitInsights, error) {
		return horoscope.TransitInsights{}, apperrors.Wrap("quota_exhausted", "sem créditos", nil)
	}

	rec := performRequest(http.MethodPost, "/functions/get-transit-insights", `{}`, "", fixture.server)
	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "quota_exhausted", errBody["error"]["code"])
}

func TestRouter_GenerateAstroMapRequiresAuth(t *testing.T) {
	fixture := newRouterUnderTest(t)

	rec := performRequest(http.MethodPost, "/functions/generate-astro-map", `{}`, "", fixture.server)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = performRequest(http.MethodPost, "/functions/generate-astro-map", `{}`, "Bearer garbage", fixture.server)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_GenerateAstroMapProfileNotFound(t *testing.T) {
	fixture := newRouterUnderTest(t)
	fixture.natal.generateFn = func(_ context.Context, userID int64) (natal.Result, error) {
		require.Positive(t, userID)
		return natal.Result{}, apperrors.Wrap("profile_not_found", "Perfil não encontrado", nil)
	}

	token := registerAndLogin(t, fixture.server)
	rec := performRequest(http.MethodPost, "/functions/generate-astro-map", `{}`, "Bearer "+token, fixture.server)
	require.Equal(t, http.StatusNotFound, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "profile_not_found", errBody["error"]["code"])
}

func TestRouter_AnalyzeDreamSuccess(t *testing.T) {
	fixture := newRouterUnderTest(t)
	fixture.dream.analyzeFn = func(_ context.Context, userID int64, text string) (dream.Dream, error) {
		require.Equal(t, "sonhei com o mar", text)
		return dream.Dream{UserID: userID, DreamText: text, Analysis: dream.Analysis{Tema: "Águas profundas"}}, nil
	}

	token := registerAndLogin(t, fixture.server)
	rec := performRequest(http.MethodPost, "/functions/analyze-dream", `{"dreamText":"sonhei com o mar"}`, "Bearer "+token, fixture.server)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Analysis dream.Analysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Águas profundas", body.Analysis.Tema)
}

func TestRouter_AnalyzeDreamEmptyText(t *testing.T) {
	fixture := newRouterUnderTest(t)
	fixture.dream.analyzeFn = func(context.Context, int64, string) (dream.Dream, error) {
		return dream.Dream{}, apperrors.Wrap("invalid_input", "O texto do sonho é obrigatório", nil)
	}

	token := registerAndLogin(t, fixture.server)
	rec := performRequest(http.MethodPost, "/functions/analyze-dream", `{"dreamText":""}`, "Bearer "+token, fixture.server)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UpdateProfile(t *testing.T) {
	fixture := newRouterUnderTest(t)
	fixture.profile.updateFn = func(_ context.Context, userID int64, req profile.UpdateRequest) (profile.Profile, error) {
		require.Equal(t, "1990-11-25", req.BirthDate)
		return profile.Profile{UserID: userID, BirthTime: req.BirthTime}, nil
	}

	token := registerAndLogin(t, fixture.server)
	rec := performRequest(http.MethodPut, "/api/v1/profile", `{"birthDate":"1990-11-25","birthTime":"08:30"}`, "Bearer "+token, fixture.server)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RegisterDuplicate(t *testing.T) {
	fixture := newRouterUnderTest(t)

	rec := performRequest(http.MethodPost, "/api/v1/auth/register", `{"email":"luna@example.com","password":"starlight8"}`, "", fixture.server)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = performRequest(http.MethodPost, "/api/v1/auth/register", `{"email":"luna@example.com","password":"starlight8"}`, "", fixture.server)
	require.Equal(t, http.StatusConflict, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "email_exists", errBody["error"]["code"])
}

func TestRouter_LoginInvalidCredentials(t *testing.T) {
	fixture := newRouterUnderTest(t)

	rec := performRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"ghost@example.com","password":"whatever1"}`, "", fixture.server)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	fixture := newRouterUnderTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/functions/get-daily-transits", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	fixture.server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func performRequest(method, path, body, authorization string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, server *http.Server) string {
	t.Helper()
	rec := performRequest(http.MethodPost, "/api/v1/auth/register", `{"email":"user@example.com","password":"starlight8"}`, "", server)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = performRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"user@example.com","password":"starlight8"}`, "", server)
	require.Equal(t, http.StatusOK, rec.Code)

	var body auth.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func newRouterUnderTest(t *testing.T) *routerFixture {
	t.Helper()
	logger := newTestLogger()
	fixture := &routerFixture{
		horoscope: &stubHoroscope{},
		natal:     &stubNatal{},
		dream:     &stubDream{},
		profile:   &stubProfile{},
	}
	authSvc := auth.NewService(auth.Config{Secret: "test-secret", TokenTTL: time.Hour}, userrepo.NewMemoryRepository(), logger)
	handler := NewHandler(fixture.horoscope, fixture.natal, fixture.dream, fixture.profile, authSvc, logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	fixture.server = NewRouter(cfg, handler, authSvc, logger)
	return fixture
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubHoroscope struct {
	dailyFn    func(ctx context.Context) (horoscope.DailyTransits, error)
	insightsFn func(ctx context.Context) (horoscope.TransitInsights, error)
}

func (s *stubHoroscope) DailyTransits(ctx context.Context) (horoscope.DailyTransits, error) {
	if s.dailyFn != nil {
		return s.dailyFn(ctx)
	}
	return horoscope.DailyTransits{}, nil
}

func (s *stubHoroscope) TransitInsights(ctx context.Context) (horoscope.TransitInsights, error) {
	if s.insightsFn != nil {
		return s.insightsFn(ctx)
	}
	return horoscope.TransitInsights{}, nil
}

type stubNatal struct {
	generateFn func(ctx context.Context, userID int64) (natal.Result, error)
}

func (s *stubNatal) Generate(ctx context.Context, userID int64) (natal.Result, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, userID)
	}
	return natal.Result{}, nil
}

type stubDream struct {
	analyzeFn func(ctx context.Context, userID int64, text string) (dream.Dream, error)
	listFn    func(ctx context.Context, userID int64, limit int) ([]dream.Dream, error)
}

func (s *stubDream) Analyze(ctx context.Context, userID int64, text string) (dream.Dream, error) {
	if s.analyzeFn != nil {
		return s.analyzeFn(ctx, userID, text)
	}
	return dream.Dream{}, nil
}

func (s *stubDream) List(ctx context.Context, userID int64, limit int) ([]dream.Dream, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, limit)
	}
	return nil, nil
}

type stubProfile struct {
	getFn    func(ctx context.Context, userID int64) (profile.Profile, error)
	updateFn func(ctx context.Context, userID int64, req profile.UpdateRequest) (profile.Profile, error)
}

func (s *stubProfile) Get(ctx context.Context, userID int64) (profile.Profile, error) {
	if s.getFn != nil {
		return s.getFn(ctx, userID)
	}
	return profile.Profile{}, nil
}

func (s *stubProfile) Update(ctx context.Context, userID int64, req profile.UpdateRequest) (profile.Profile, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, userID, req)
	}
	return profile.Profile{}, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
