package api

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// UploadImage extracts product text from an uploaded image file.
// POST /api/upload-image/:session_id
func (h *Handler) UploadImage(c echo.Context) error {
	sess, err := h.registry.Get(c.Param("session_id"))
	if err != nil {
		return errorResponse(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file must be an image"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to read file"})
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to read file"})
	}

	extracted, err := sess.Engines.Image.Interpret(c.Request().Context(), content, "")
	if err != nil {
		log.Printf("ERROR: image processing failed for session %s: %v", sess.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "image processing failed"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":        true,
		"extracted_text": extracted,
		"filename":       fileHeader.Filename,
	})
}
