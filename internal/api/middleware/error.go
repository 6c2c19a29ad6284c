package middleware

import (
	"log/slog"
	"net/http"

	"macro-sim/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware handles panics
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
