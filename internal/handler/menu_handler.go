package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/service"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/response"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/telemetry"
)

// MenuHandler handles menu, category and item HTTP requests
type MenuHandler struct {
	menuService service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// CreateMenu handles POST /menus
func (h *MenuHandler) CreateMenu(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	menu, err := h.menuService.CreateMenu(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(menu))
}

// ListMenus handles GET /restaurants/:id/menus
func (h *MenuHandler) ListMenus(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	menus, err := h.menuService.ListMenus(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(menus))
}

// UpdateMenu handles PATCH /menus/:id
func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.update")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	menu, err := h.menuService.UpdateMenu(ctx, userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(menu))
}

// DeleteMenu handles DELETE /menus/:id
func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.menuService.DeleteMenu(ctx, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateCategory handles POST /categories
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.category.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	category, err := h.menuService.CreateCategory(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(category))
}

// ReorderCategory handles PUT /categories/reorder
func (h *MenuHandler) ReorderCategory(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.category.reorder")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ReorderCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	if err := h.menuService.ReorderCategory(ctx, userID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(nil))
}

// DeleteCategory handles DELETE /categories/:id
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.category.delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.menuService.DeleteCategory(ctx, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateItem handles POST /menu-items
func (h *MenuHandler) CreateItem(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.item.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	item, err := h.menuService.CreateItem(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(item))
}

// UpdateItem handles PATCH /menu-items/:id
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.item.update")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	item, err := h.menuService.UpdateItem(ctx, userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(item))
}

// DeleteItem handles DELETE /menu-items/:id
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.item.delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.menuService.DeleteItem(ctx, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PublicMenu handles GET /public/restaurants/:id/menu. Customers reach this
// after QR resolution; no authentication, read-only.
func (h *MenuHandler) PublicMenu(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.public")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	menu, err := h.menuService.PublicActiveMenu(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(menu))
}
