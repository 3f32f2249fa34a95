package notify

import (
	"context"
	"errors"

	"github.com/Freeeeeet/barber_booking/internal/model"
)

// Notifier получатель событий бронирования
type Notifier interface {
	Notify(ctx context.Context, event model.BookingEvent) error
}

// Fanout рассылает событие всем получателям; ошибка одного не мешает остальным
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, event model.BookingEvent) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
