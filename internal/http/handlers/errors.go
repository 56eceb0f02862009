package handlers

import (
	"context"
	"errors"
	"net/http"

	"admindash/internal/domain"
	"admindash/internal/http/middleware"
	"admindash/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondDomainError maps domain errors to HTTP responses. Upstream and internal
// details are logged and replaced by a generic message.
func RespondDomainError(c *gin.Context, err error) {
	if ae, ok := domain.AsAuth(err); ok {
		if ae.Forbidden {
			RespondError(c, http.StatusForbidden, "forbidden", ae.Error())
			return
		}
		RespondError(c, http.StatusUnauthorized, "unauthorized", ae.Error())
		return
	}

	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsInvalidState(err):
		RespondError(c, http.StatusBadRequest, "invalid_state", err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, context.Canceled):
		c.Abort()
	default:
		utils.Logger().Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
