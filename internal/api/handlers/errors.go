package handlers

import (
	"errors"
	"log"
	"net/http"

	"budget-control/internal/api/models"
	"budget-control/internal/data"
	"budget-control/internal/model"
	"budget-control/internal/store"

	"github.com/gin-gonic/gin"
)

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

// respondError maps domain errors to status codes and error codes.
func respondError(c *gin.Context, op string, err error) {
	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s: %v", op, err)
	}
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func classify(err error) (int, models.ErrorDetail) {
	detail := models.ErrorDetail{Message: err.Error()}

	var (
		ve  *model.ValidationError
		pe  *model.InvalidParameterError
		nr  *model.NoRootInBracketError
		src *data.SourceError
	)
	switch {
	case errors.As(err, &ve):
		detail.Code = "VALIDATION_ERROR"
		if ve.Field != "" {
			detail.Details = map[string]interface{}{"field": ve.Field}
		}
		return http.StatusUnprocessableEntity, detail
	case errors.Is(err, model.ErrDegenerateInput):
		detail.Code = "DEGENERATE_INPUT"
		return http.StatusUnprocessableEntity, detail
	case errors.As(err, &pe):
		detail.Code = "INVALID_PARAMETER"
		detail.Details = map[string]interface{}{"name": pe.Name, "value": pe.Value}
		return http.StatusUnprocessableEntity, detail
	case errors.As(err, &nr):
		detail.Code = "NO_ROOT_IN_BRACKET"
		detail.Details = map[string]interface{}{"low": nr.Low, "high": nr.High}
		return http.StatusUnprocessableEntity, detail
	case errors.Is(err, data.ErrSeriesNotFound), errors.Is(err, store.ErrNotFound):
		detail.Code = "NOT_FOUND"
		return http.StatusNotFound, detail
	case errors.As(err, &src):
		detail.Code = src.Code
		detail.Details = map[string]interface{}{"status_code": src.StatusCode}
		if src.StatusCode == http.StatusUnauthorized || src.StatusCode == http.StatusForbidden {
			return http.StatusUnauthorized, detail
		}
		return http.StatusBadGateway, detail
	}
	detail.Code = "INTERNAL_ERROR"
	return http.StatusInternalServerError, detail
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: msg,
		},
	})
}

func unavailable(c *gin.Context, what string) {
	c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_CONFIGURED",
			Message: what + " is not configured on this server",
		},
	})
}
