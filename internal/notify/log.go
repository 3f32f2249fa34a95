package notify

import (
	"context"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"go.uber.org/zap"
)

// LogNotifier пишет события в лог
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event model.BookingEvent) error {
	n.logger.Info("Booking event",
		zap.String("event", string(event.Type)),
		zap.String("booking_id", event.Booking.ID),
		zap.String("shop_id", event.Booking.ShopID),
		zap.String("customer_id", event.Booking.CustomerID),
		zap.String("status", string(event.Booking.Status)),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
