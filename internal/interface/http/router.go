package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunara/astro-api/internal/domain/auth"
	"github.com/lunara/astro-api/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		errorHandlingMiddleware(logger),
		corsMiddleware(nil),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	// The functions group mirrors the serverless layout the web client was
	// built against.
	functions := router.Group("/functions")
	{
		functions.POST("/get-daily-transits", handler.DailyTransits)
		functions.POST("/get-transit-insights", handler.TransitInsights)

		protected := functions.Group("", authMiddleware(authSvc))
		protected.POST("/generate-astro-map", handler.GenerateAstroMap)
		protected.POST("/analyze-dream", handler.AnalyzeDream)
	}

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)

		protected := api.Group("", authMiddleware(authSvc))
		protected.GET("/profile", handler.GetProfile)
		protected.PUT("/profile", handler.UpdateProfile)
		protected.GET("/dreams", handler.ListDreams)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
