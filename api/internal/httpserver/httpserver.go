package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"survey-relay/api/internal/handle"
	"survey-relay/api/internal/middleware"
)

// WebhookPaths are the submission endpoints. Both answer POST, OPTIONS and GET.
var WebhookPaths = []string{"/api/webhook", "/webhook/tally"}

// New builds the HTTP server with middleware and routes.
func New(h *handle.Handle, logger zerolog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.BodyLimit("4M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		// webhook preflights are answered by the handler with 200
		Skipper: func(c echo.Context) bool {
			return c.Request().Method == http.MethodOptions && isWebhook(c.Path())
		},
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, middleware.RequestIDHeader},
	}))

	for _, p := range WebhookPaths {
		e.Any(p, h.Webhook)
	}
	e.POST("/api/analyze", h.Analyze)
	e.GET("/health", h.Health)
	e.GET("/healthz", h.Health)

	return e
}

func isWebhook(path string) bool {
	for _, p := range WebhookPaths {
		if p == path {
			return true
		}
	}
	return false
}
