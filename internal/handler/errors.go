package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/response"
)

// respondError converts domain errors to HTTP responses. Unrecognized errors
// surface as a generic 500; the detail only goes to the server log.
func respondError(c *gin.Context, err error) {
	var code string
	switch {
	case errors.Is(err, domain.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrMenuNotFound),
		errors.Is(err, domain.ErrNoActiveMenu),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		code = response.ErrCodeNotFound
	case errors.Is(err, domain.ErrMenuItemNotFound):
		code = response.ErrCodeMenuItemUnknown
	case errors.Is(err, domain.ErrNotOwner):
		code = response.ErrCodeForbidden
	case errors.Is(err, domain.ErrTableNumberTaken):
		code = response.ErrCodeTableNumberTaken
	case errors.Is(err, domain.ErrInvalidTransition):
		code = response.ErrCodeInvalidTransition
	case errors.Is(err, domain.ErrOrderFinalized):
		code = response.ErrCodeOrderFinalized
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", zap.Error(err))
		c.JSON(response.GetHTTPStatus(response.ErrCodeInternalError), response.InternalError(""))
		return
	}

	c.JSON(response.GetHTTPStatus(code), response.Error(code, err.Error()))
}

// requireUserID extracts the authenticated user or writes a 401
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(response.GetHTTPStatus(response.ErrCodeUnauthorized), response.Unauthorized(""))
		return "", false
	}
	return userID, true
}
