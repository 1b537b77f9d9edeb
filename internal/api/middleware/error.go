package middleware

import (
	"net/http"

	"virtual-battery/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts panics anywhere in the handler chain into the same
// error envelope the handlers emit, so clients never see a bare 500.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "an unexpected error occurred"
		switch v := recovered.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: msg},
		})
	})
}
