package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JGunda88/battery-trade-optimiser/internal/api/models"
)

// ErrorHandler recovers from panics and renders the standard error envelope.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			msg = s
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: msg},
		})
		c.Abort()
	})
}
