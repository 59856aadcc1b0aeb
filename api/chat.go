package api

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmate/orchestrator/domain"
)

// Chat runs one turn of the shopping conversation.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	sess, err := h.registry.Get(req.SessionID)
	if err != nil {
		return errorResponse(c, err)
	}

	ctx := c.Request().Context()
	if h.config != nil && h.config.TurnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.TurnTimeout)
		defer cancel()
	}

	result, err := h.orchestrator.ProcessTurn(ctx, sess, req.Message, req.ImageData)
	if err != nil {
		log.Printf("ERROR: chat turn failed for session %s: %v", sess.ID, err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
