package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solana_analyst/internal/pkg/apperrors"
)

// respondError writes err as {"error": ...}. Categorized errors keep their status and public
// message; anything else becomes a 500 with fallbackMessage. Causes are logged, never sent.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallbackMessage string) {
	status := http.StatusInternalServerError
	message := fallbackMessage

	if catErr, ok := apperrors.As(err); ok {
		status = catErr.StatusCode
		if catErr.Message != "" {
			message = catErr.Message
		}
	}

	fields := []zap.Field{
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.String("requestId", requestIDFrom(c)),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
	} else {
		logger.Info("Request rejected", fields...)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
