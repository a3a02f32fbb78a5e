package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/service"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/response"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/telemetry"
)

// OrderHandler handles order HTTP requests. Public and owner operations are
// separate methods on separate routes; the public ones never read the
// authenticated user and the owner ones always do.
type OrderHandler struct {
	orderService      service.OrderService
	restaurantService service.RestaurantService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService service.OrderService, restaurantService service.RestaurantService) *OrderHandler {
	return &OrderHandler{
		orderService:      orderService,
		restaurantService: restaurantService,
	}
}

// Place handles POST /public/orders
func (h *OrderHandler) Place(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.order.place")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	order, err := h.orderService.Place(ctx, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	span.SetAttributes(
		attribute.String("order_id", order.ID),
		attribute.String("table_id", order.TableID),
	)
	c.JSON(http.StatusCreated, response.Success(&dto.PlaceOrderResponse{OrderID: order.ID}))
}

// GetPublic handles GET /public/orders/:id
func (h *OrderHandler) GetPublic(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.order.get")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	order, err := h.orderService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(order))
}

// ListForTable handles GET /public/tables/:id/orders
func (h *OrderHandler) ListForTable(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.order.list_table")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	orders, err := h.orderService.ListForTable(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(orders))
}

// List handles GET /orders. The optional restaurant_id query selects one of
// the caller's restaurants; by default the oldest one is used.
func (h *OrderHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.order.list")
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

	orders, err := h.orderService.ListForRestaurant(ctx, userID, restaurant.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(orders))
}

// SetStatus handles PUT /orders/status
func (h *OrderHandler) SetStatus(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.order.set_status")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	order, err := h.orderService.SetStatus(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	span.SetAttributes(
		attribute.String("order_id", order.ID),
		attribute.String("status", string(order.Status)),
	)
	c.JSON(http.StatusOK, response.Success(order))
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.order.delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(ctx, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
