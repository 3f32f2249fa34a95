package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения барбершопом
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCompleted BookingStatus = "completed" // Завершено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено
)

// bookingTransitions описывает допустимые переходы статусов.
// completed и cancelled терминальные: из них переходов нет.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// IsValid проверяет что статус входит в известный набор
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// IsActive возвращает true если бронирование занимает слот
func (s BookingStatus) IsActive() bool {
	return s.IsValid() && s != BookingStatusCancelled
}

// IsTerminal возвращает true для статусов без исходящих переходов
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo проверяет допустимость перехода s -> next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              string        `json:"booking_id"`
	ShopID          string        `json:"shop_id"`
	CustomerID      string        `json:"customer_id"`
	ServiceName     string        `json:"service_name"`
	Price           int           `json:"price"`            // в копейках/центах, снимок на момент записи
	DurationMinutes int           `json:"duration_minutes"` // снимок длительности услуги
	Date            Date          `json:"date"`
	Time            Clock         `json:"time"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// SlotEnd возвращает момент окончания слота в указанной локации
func (b *Booking) SlotEnd(loc *time.Location) time.Time {
	return b.Date.At(b.Time, loc).Add(SlotDuration)
}

// BookingFilter фильтр для выборки бронирований.
// Пустые поля не участвуют в фильтрации.
type BookingFilter struct {
	CustomerID string
	ShopID     string
	Status     BookingStatus
	Date       *Date
	Limit      int
	Offset     int
}

const (
	DefaultBookingPageSize = 50
	MaxBookingPageSize     = 200
)

// Normalize приводит пагинацию к допустимым границам
func (f BookingFilter) Normalize() BookingFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultBookingPageSize
	}
	if f.Limit > MaxBookingPageSize {
		f.Limit = MaxBookingPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
