package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunara/astro-api/internal/domain/auth"
	"github.com/lunara/astro-api/internal/domain/dream"
	"github.com/lunara/astro-api/internal/domain/horoscope"
	"github.com/lunara/astro-api/internal/domain/natal"
	"github.com/lunara/astro-api/internal/domain/profile"
	apperrors "github.com/lunara/astro-api/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	horoscopeSvc horoscope.Service
	natalSvc     natal.Service
	dreamSvc     dream.Service
	profileSvc   profile.Service
	authSvc      auth.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(horoscopeSvc horoscope.Service, natalSvc natal.Service, dreamSvc dream.Service, profileSvc profile.Service, authSvc auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		horoscopeSvc: horoscopeSvc,
		natalSvc:     natalSvc,
		dreamSvc:     dreamSvc,
		profileSvc:   profileSvc,
		authSvc:      authSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// DailyTransits returns today's sun, moon and daily energy payload.
func (h *Handler) DailyTransits(c *gin.Context) {
	resp, err := h.horoscopeSvc.DailyTransits(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "transits_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"transits": resp})
}

// TransitInsights returns the day's luminary snapshot plus the five
// enriched planetary transit windows.
func (h *Handler) TransitInsights(c *gin.Context) {
	resp, err := h.horoscopeSvc.TransitInsights(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		code := "insights_failed"
		message := errMessage(err)
		switch {
		case apperrors.IsCode(err, "rate_limited"):
			status = http.StatusTooManyRequests
			code = "rate_limited"
			message = "Limite de requisições excedido, tente novamente em alguns minutos."
		case apperrors.IsCode(err, "quota_exhausted"):
			status = http.StatusPaymentRequired
			code = "quota_exhausted"
			message = "Créditos de IA esgotados."
		case apperrors.IsCode(err, "enrichment_unavailable"):
			status = http.StatusBadGateway
			code = "enrichment_unavailable"
		}
		abortWithError(c, NewHTTPError(status, code, message, err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateAstroMap computes and persists the caller's natal chart.
func (h *Handler) GenerateAstroMap(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	resp, err := h.natalSvc.Generate(c.Request.Context(), claims.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "astro_map_failed"
		switch {
		case apperrors.IsCode(err, "profile_not_found"):
			status = http.StatusNotFound
			code = "profile_not_found"
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_input"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnalyzeDream interprets a dream report and stores it in the journal.
func (h *Handler) AnalyzeDream(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	var req struct {
		DreamText string `json:"dreamText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	entry, err := h.dreamSvc.Analyze(c.Request.Context(), claims.UserID, req.DreamText)
	if err != nil {
		status := http.StatusInternalServerError
		code := "dream_failed"
		message := errMessage(err)
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "rate_limited"):
			status = http.StatusTooManyRequests
			code = "rate_limited"
			message = "Limite de requisições excedido, tente novamente em alguns minutos."
		case apperrors.IsCode(err, "quota_exhausted"):
			status = http.StatusPaymentRequired
			code = "quota_exhausted"
			message = "Créditos de IA esgotados."
		case apperrors.IsCode(err, "enrichment_error"):
			status = http.StatusBadGateway
			code = "enrichment_error"
		}
		abortWithError(c, NewHTTPError(status, code, message, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"dream": entry, "analysis": entry.Analysis})
}

// ListDreams returns the caller's dream journal, newest first.
func (h *Handler) ListDreams(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	dreams, err := h.dreamSvc.List(c.Request.Context(), claims.UserID, 0)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "dream_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"dreams": dreams})
}

// GetProfile returns the caller's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	p, err := h.profileSvc.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "profile_failed"
		if apperrors.IsCode(err, "profile_not_found") {
			status = http.StatusNotFound
			code = "profile_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile overwrites the caller's birth data.
func (h *Handler) UpdateProfile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	p, err := h.profileSvc.Update(c.Request.Context(), claims.UserID, req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "profile_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, p)
}

// Register creates a new account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	view, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "auth_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "email_exists"):
			status = http.StatusConflict
			code = "email_exists"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Login exchanges credentials for a signed token.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "auth_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "invalid_credentials"):
			status = http.StatusUnauthorized
			code = "invalid_credentials"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
