package middleware

import (
	"fmt"
	"net/http"

	"cell-dashboard/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts panics into the standard JSON error envelope.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			msg = v
		case error:
			msg = v.Error()
		default:
			if v != nil {
				msg = fmt.Sprint(v)
			}
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: msg,
			},
		})
		c.Abort()
	})
}
