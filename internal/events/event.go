package events

import (
	"time"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
)

// Order event types carried on the realtime channel and the Kafka topic.
// OrderResync is hub-local: it tells connected dashboards that events may
// have been missed while the upstream subscription was down, so they should
// refetch the order list.
const (
	OrderCreated = "order.created"
	OrderUpdated = "order.updated"
	OrderDeleted = "order.deleted"
	OrderResync  = "order.resync"
)

// channelPrefix scopes pub/sub channels per restaurant so one tenant's
// dashboard never receives another tenant's orders.
const channelPrefix = "orders:events:"

// ChannelPattern matches every restaurant's order channel
const ChannelPattern = channelPrefix + "*"

// ChannelForRestaurant returns the pub/sub channel of one restaurant
func ChannelForRestaurant(restaurantID string) string {
	return channelPrefix + restaurantID
}

// RestaurantFromChannel extracts the restaurant id from a channel name.
// Returns "" when the channel does not carry the expected prefix.
func RestaurantFromChannel(channel string) string {
	if len(channel) <= len(channelPrefix) || channel[:len(channelPrefix)] != channelPrefix {
		return ""
	}
	return channel[len(channelPrefix):]
}

// OrderEvent is the payload published when an order is created, changes
// status, or is deleted.
type OrderEvent struct {
	Type         string             `json:"type"`
	OrderID      string             `json:"order_id"`
	RestaurantID string             `json:"restaurant_id"`
	TableNumber  int                `json:"table_number"`
	CustomerName string             `json:"customer_name"`
	TotalAmount  float64            `json:"total_amount"`
	Status       domain.OrderStatus `json:"status"`
	OccurredAt   time.Time          `json:"occurred_at"`
}

// NewOrderEvent builds an event from an order snapshot
func NewOrderEvent(eventType string, order *domain.Order) OrderEvent {
	return OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount,
		Status:       order.Status,
		OccurredAt:   time.Now(),
	}
}
