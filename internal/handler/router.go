package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Health       *HealthHandler
	Restaurant   *RestaurantHandler
	Table        *TableHandler
	Menu         *MenuHandler
	Order        *OrderHandler
	Stream       *StreamHandler
	Notification *NotificationHandler
	Webhook      *WebhookHandler
}

// SetupRoutes mounts all routes. Public customer routes and owner dashboard
// routes live in separate groups so an unauthenticated path can never reach
// an owner operation.
func SetupRoutes(router *gin.Engine, h *Handlers, jwtSecret string) {
	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)

	// Signed by the identity provider, not by user JWTs
	router.POST("/webhooks/identity", h.Webhook.Identity)

	public := router.Group("/api/v1/public")
	{
		public.GET("/tables/resolve", h.Table.Resolve)
		public.GET("/tables/:id/orders", h.Order.ListForTable)
		public.GET("/restaurants/:id/menu", h.Menu.PublicMenu)
		public.POST("/orders", h.Order.Place)
		public.GET("/orders/:id", h.Order.GetPublic)
	}

	owner := router.Group("/api/v1")
	owner.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: jwtSecret}))
	{
		owner.POST("/restaurants", h.Restaurant.Create)
		owner.GET("/restaurants", h.Restaurant.List)
		owner.GET("/restaurants/:id", h.Restaurant.Get)
		owner.PATCH("/restaurants/:id", h.Restaurant.Update)

		owner.POST("/tables", h.Table.Create)
		owner.GET("/restaurants/:id/tables", h.Table.List)
		owner.DELETE("/tables/:id", h.Table.Delete)
		owner.GET("/tables/:id/qrcode", h.Table.QRCode)

		owner.POST("/menus", h.Menu.CreateMenu)
		owner.GET("/restaurants/:id/menus", h.Menu.ListMenus)
		owner.PATCH("/menus/:id", h.Menu.UpdateMenu)
		owner.DELETE("/menus/:id", h.Menu.DeleteMenu)

		owner.POST("/categories", h.Menu.CreateCategory)
		owner.PUT("/categories/reorder", h.Menu.ReorderCategory)
		owner.DELETE("/categories/:id", h.Menu.DeleteCategory)

		owner.POST("/menu-items", h.Menu.CreateItem)
		owner.PATCH("/menu-items/:id", h.Menu.UpdateItem)
		owner.DELETE("/menu-items/:id", h.Menu.DeleteItem)

		owner.GET("/orders", h.Order.List)
		owner.PUT("/orders/status", h.Order.SetStatus)
		owner.DELETE("/orders/:id", h.Order.Delete)
		owner.GET("/orders/stream", h.Stream.Stream)

		owner.GET("/notifications", h.Notification.List)
		owner.PUT("/notifications/:id/read", h.Notification.MarkRead)
		owner.DELETE("/notifications/:id", h.Notification.Delete)
	}
}
