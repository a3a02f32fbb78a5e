package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/events"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/realtime"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/service"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/response"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/telemetry"
)

// StreamHandler serves the dashboard's realtime order feed over SSE
type StreamHandler struct {
	hub               *realtime.Hub
	restaurantService service.RestaurantService
	keepalive         time.Duration
	refreshMargin     time.Duration
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(hub *realtime.Hub, restaurantService service.RestaurantService, keepalive, refreshMargin time.Duration) *StreamHandler {
	if keepalive <= 0 {
		keepalive = 15 * time.Second
	}
	if refreshMargin <= 0 {
		refreshMargin = 5 * time.Minute
	}
	return &StreamHandler{
		hub:               hub,
		restaurantService: restaurantService,
		keepalive:         keepalive,
		refreshMargin:     refreshMargin,
	}
}

// Stream handles GET /orders/stream (SSE). Instead of the dashboard polling
// the order list, it holds one connection per session and receives an event
// whenever an order in the caller's restaurant is created, advanced or
// deleted. Keepalive comments prevent proxies from reaping idle connections.
//
// A session never outlives its credential: the stream sends a refresh hint
// at token expiry minus the refresh margin and closes at expiry, so the
// client reconnects with a renewed token.
func (h *StreamHandler) Stream(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.order.stream")
	defer span.End()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	restaurant, err := h.restaurantService.ResolveOwned(ctx, userID, c.Query("restaurant_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	session := realtime.NewRefresher(nil, h.refreshMargin, logger.Get())
	if err := session.Authenticate(bearerToken(c)); err != nil {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Token has no usable expiry"))
		return
	}
	defer session.SignOut()
	deadline, _ := session.Deadline()

	span.SetAttributes(attribute.String("restaurant_id", restaurant.ID))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

	sub := h.hub.Subscribe(restaurant.ID)
	defer h.hub.Unsubscribe(sub)

	// Tell the client the subscription is live before any event arrives
	c.Writer.WriteString(fmt.Sprintf("event: ready\ndata: {\"restaurant_id\":%q}\n\n", restaurant.ID))
	c.Writer.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	refreshHint := time.NewTimer(time.Until(deadline.Add(-h.refreshMargin)))
	defer refreshHint.Stop()
	expired := time.NewTimer(time.Until(deadline))
	defer expired.Stop()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return

		case event, ok := <-sub.C:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			name := "order"
			if event.Type == events.OrderResync {
				name = "resync"
			}
			c.Writer.WriteString(fmt.Sprintf("event: %s\ndata: %s\n\n", name, data))
			c.Writer.Flush()

		case <-refreshHint.C:
			c.Writer.WriteString("event: refresh\ndata: {\"reason\":\"token_expiring\"}\n\n")
			c.Writer.Flush()

		case <-expired.C:
			c.Writer.WriteString("event: expired\ndata: {\"reason\":\"token_expired\"}\n\n")
			c.Writer.Flush()
			return

		case <-keepalive.C:
			c.Writer.WriteString(":keepalive\n\n")
			c.Writer.Flush()
		}
	}
}

// bearerToken returns the raw token the JWT middleware already verified
func bearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}
