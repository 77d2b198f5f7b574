package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondWithError maps the error taxonomy onto HTTP statuses. Upstream
// failures surface as 502 so clients can tell them from our own faults.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr) && appErr.Code != 0:
		logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUpstreamUnavailable), errors.Is(err, apperrors.ErrUpstreamData):
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Exchange rate provider error"})
	default:
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
