package dto

import (
	"strings"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
)

// OrderItemInput is one line of a customer's cart. Prices are never accepted
// from the client; the server looks up the authoritative price at insert time.
type OrderItemInput struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest represents the public order placement request
type PlaceOrderRequest struct {
	TableID      string           `json:"table_id" binding:"required"`
	CustomerName string           `json:"customer_name" binding:"required"`
	Observations string           `json:"observations"`
	Items        []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// Validate validates the PlaceOrderRequest
func (r *PlaceOrderRequest) Validate() (bool, string) {
	if r.TableID == "" {
		return false, "Table ID is required"
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return false, "Customer name is required"
	}
	if len(r.Items) == 0 {
		return false, "Order must contain at least one item"
	}
	for _, item := range r.Items {
		if item.MenuItemID == "" {
			return false, "Every item must reference a menu item"
		}
		if item.Quantity <= 0 {
			return false, "Item quantity must be a positive integer"
		}
	}
	return true, ""
}

// PlaceOrderResponse is returned on successful order placement
type PlaceOrderResponse struct {
	OrderID string `json:"order_id"`
}

// SetStatusRequest represents the dashboard status transition request
type SetStatusRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	NewStatus string `json:"new_status" binding:"required"`
}

// Validate validates the SetStatusRequest
func (r *SetStatusRequest) Validate() (bool, string) {
	if r.OrderID == "" {
		return false, "Order ID is required"
	}
	if !domain.OrderStatus(r.NewStatus).IsValid() {
		return false, "Unknown order status"
	}
	return true, ""
}
