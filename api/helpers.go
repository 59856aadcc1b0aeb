package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmate/orchestrator/domain"
)

// errorResponse maps a pipeline error to its HTTP status and JSON body.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.ErrorKindConfiguration, domain.ErrorKindInvalidImage:
		status = http.StatusBadRequest
	case domain.ErrorKindNotFound:
		status = http.StatusNotFound
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
