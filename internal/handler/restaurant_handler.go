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

// RestaurantHandler handles restaurant HTTP requests
type RestaurantHandler struct {
	restaurantService service.RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(restaurantService service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// Create handles POST /restaurants
func (h *RestaurantHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.restaurant.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	restaurant, err := h.restaurantService.Create(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	span.SetAttributes(attribute.String("restaurant_id", restaurant.ID))
	c.JSON(http.StatusCreated, response.Success(restaurant))
}

// Get handles GET /restaurants/:id
func (h *RestaurantHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.restaurant.get")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	restaurant, err := h.restaurantService.Get(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(restaurant))
}

// List handles GET /restaurants
func (h *RestaurantHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.restaurant.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurantService.List(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(restaurants))
}

// Update handles PATCH /restaurants/:id
func (h *RestaurantHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.restaurant.update")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	restaurant, err := h.restaurantService.Update(ctx, userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(restaurant))
}
