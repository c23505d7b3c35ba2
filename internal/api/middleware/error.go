package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"budget-control/internal/api/models"
)

// ErrorHandler recovers from panics in handlers and answers with the API error
// envelope. The request ID set by Logger is echoed in the details.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			message = v
		case error:
			message = v.Error()
		}

		rid := c.GetString("request_id")
		log.Printf("[API] panic in %s %s rid=%s: %v", c.Request.Method, c.Request.URL.Path, rid, recovered)

		resp := models.ErrorResponse{Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: message}}
		if rid != "" {
			resp.Error.Details = map[string]interface{}{"request_id": rid}
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	})
}

