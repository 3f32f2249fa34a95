package api

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const keepAliveInterval = 30 * time.Second

// GET /api/v1/bookings/events
// Server-sent events об изменениях бронирований. Клиент получает события своих
// бронирований, барбер события своих барбершопов.
func (h *Handler) BookingEvents(c *gin.Context) {
	visible, ok := h.eventFilter(c)
	if !ok {
		return
	}

	events, cancel := h.events.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	h.logger.Debug("Event stream opened", zap.String("user_id", subject(c)))

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("Event stream closed", zap.String("user_id", subject(c)))
			return
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			if !visible(event) {
				continue
			}
			c.SSEvent(string(event.Type), event)
			c.Writer.Flush()
		}
	}
}

func (h *Handler) eventFilter(c *gin.Context) (func(model.BookingEvent) bool, bool) {
	sub := subject(c)

	if role(c) == RoleCustomer {
		return func(e model.BookingEvent) bool { return e.Booking.CustomerID == sub }, true
	}

	shops, err := h.shops.ListShops(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	owned := make(map[string]bool)
	for _, shop := range shops {
		if shop.OwnerUserID == sub {
			owned[shop.ID] = true
		}
	}
	return func(e model.BookingEvent) bool { return owned[e.Booking.ShopID] }, true
}
