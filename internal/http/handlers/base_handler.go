// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelai/internal/modules/planner"
	"travelai/internal/modules/session"
	"travelai/internal/modules/usage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeTurnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, usage.ErrQuotaExhausted):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, planner.ErrInference):
		writeError(c, http.StatusInternalServerError, "inference failed")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
