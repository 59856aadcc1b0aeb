package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopmate/orchestrator/domain"
)

// GetMessages returns a session's message history. Unknown ids yield an
// empty list rather than an error.
// GET /api/messages/:session_id
func (h *Handler) GetMessages(c echo.Context) error {
	sess, err := h.registry.Get(c.Param("session_id"))
	if err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"messages": []domain.Message{},
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": sess.Log.Snapshot(),
	})
}

// GetHistory returns the archived turns and messages for a session. The
// archive survives session deletion.
// GET /api/history/:session_id
func (h *Handler) GetHistory(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 100
	}

	turns, err := h.store.GetTurns(ctx, sessionID, limit)
	if err != nil {
		log.Printf("ERROR: failed to get archived turns: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get history"})
	}
	if turns == nil {
		turns = []domain.TurnRecord{}
	}

	messages, err := h.store.GetMessages(ctx, sessionID, limit)
	if err != nil {
		log.Printf("ERROR: failed to get archived messages: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get history"})
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"turns":    turns,
		"messages": messages,
	})
}
