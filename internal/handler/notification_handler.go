package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/service"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/response"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/telemetry"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService service.NotificationService
	restaurantService   service.RestaurantService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService service.NotificationService, restaurantService service.RestaurantService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		restaurantService:   restaurantService,
	}
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.notification.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	restaurant, err := h.restaurantService.ResolveOwned(ctx, userID, c.Query("restaurant_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	notifications, err := h.notificationService.List(ctx, userID, restaurant.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(notifications))
}

// MarkRead handles PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.notification.mark_read")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(ctx, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(nil))
}

// Delete handles DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.notification.delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.Delete(ctx, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
