// Package api provides HTTP handlers for the shopping assistant.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmate/orchestrator/chat"
	"github.com/shopmate/orchestrator/config"
	"github.com/shopmate/orchestrator/session"
	"github.com/shopmate/orchestrator/store"
)

// Handler handles HTTP requests.
type Handler struct {
	registry     *session.Registry
	orchestrator *chat.Orchestrator
	store        store.Store
	config       *config.Config
}

// NewHandler creates a new handler.
func NewHandler(registry *session.Registry, orchestrator *chat.Orchestrator, st store.Store, cfg *config.Config) *Handler {
	return &Handler{
		registry:     registry,
		orchestrator: orchestrator,
		store:        st,
		config:       cfg,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	e.POST("/api/config", h.Configure)
	e.POST("/api/chat", h.Chat)
	e.GET("/api/messages/:session_id", h.GetMessages)
	e.POST("/api/clear/:session_id", h.ClearSession)
	e.DELETE("/api/session/:session_id", h.DeleteSession)
	e.GET("/api/sessions", h.ListSessions)
	e.POST("/api/upload-image/:session_id", h.UploadImage)
	e.GET("/api/history/:session_id", h.GetHistory)
}

// Root returns the service banner.
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "E-commerce Shopping Assistant API",
	})
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "1.0.0",
	})
}
