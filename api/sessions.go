package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmate/orchestrator/domain"
)

// Configure initializes a session's engines from the supplied credentials.
// POST /api/config
func (h *Handler) Configure(c echo.Context) error {
	var cfg domain.EngineConfig
	if err := c.Bind(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	sess, err := h.registry.Create(cfg)
	if err != nil {
		log.Printf("ERROR: failed to create session: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, domain.SessionResponse{
		SessionID: sess.ID,
		Success:   true,
		Message:   "Agents initialized successfully",
	})
}

// ClearSession empties a session's history and resets its conversation
// engine, keeping the session alive.
// POST /api/clear/:session_id
func (h *Handler) ClearSession(c echo.Context) error {
	if err := h.registry.Clear(c.Param("session_id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Conversation cleared",
	})
}

// DeleteSession removes a session entirely.
// DELETE /api/session/:session_id
func (h *Handler) DeleteSession(c echo.Context) error {
	if err := h.registry.Delete(c.Param("session_id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Session deleted",
	})
}

// ListSessions returns a snapshot of all sessions.
// GET /api/sessions
func (h *Handler) ListSessions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessions": h.registry.List(),
	})
}
