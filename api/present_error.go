package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

type errorResponse struct {
	Message string `json:"message"`
}

// presentError writes the http response matching err and reports whether it did.
func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	logger := utils.LoggerFromContext(ctx)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.BadParameterError):
		status = http.StatusBadRequest
	case errors.Is(err, models.UnAuthorizedError):
		status = http.StatusUnauthorized
		c.Header("WWW-Authenticate", "Bearer")
	case errors.Is(err, models.ForbiddenError):
		status = http.StatusForbidden
	case errors.Is(err, models.NotFoundError):
		status = http.StatusNotFound
	case errors.Is(err, models.ConflictError):
		status = http.StatusConflict
	case errors.Is(err, models.RateLimitedError):
		status = http.StatusTooManyRequests
	case errors.Is(err, models.UnavailableError):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	}

	switch {
	case status == http.StatusInternalServerError:
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(status, errorResponse{Message: "Internal server error"})
		return true
	case status >= http.StatusInternalServerError:
		logger.WarnContext(ctx, "service unavailable", "error", err.Error())
	default:
		logger.InfoContext(ctx, "request error", "status", status, "error", err.Error())
	}

	_ = c.Error(err)
	c.JSON(status, errorResponse{Message: err.Error()})
	return true
}
