package model

import "time"

type BookingEventType string

const (
	BookingCreated   BookingEventType = "booking.created"
	BookingConfirmed BookingEventType = "booking.confirmed"
	BookingCompleted BookingEventType = "booking.completed"
	BookingCancelled BookingEventType = "booking.cancelled"
)

// EventTypeFor возвращает тип события для перехода в статус
func EventTypeFor(status BookingStatus) BookingEventType {
	switch status {
	case BookingStatusConfirmed:
		return BookingConfirmed
	case BookingStatusCompleted:
		return BookingCompleted
	case BookingStatusCancelled:
		return BookingCancelled
	default:
		return BookingCreated
	}
}

// BookingEvent сигнал об изменении бронирования для подписчиков (UI, очереди)
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	Booking    Booking          `json:"booking"`
	OccurredAt time.Time        `json:"occurred_at"`
}
