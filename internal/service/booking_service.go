package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingRequest запрос на создание бронирования.
// Дата и время приходят строками, чтобы некорректный формат давал ErrInvalidRequest.
type CreateBookingRequest struct {
	ShopID          string `json:"shop_id"`
	CustomerID      string `json:"customer_id"`
	ServiceName     string `json:"service_name"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // HH:MM
	Price           int    `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
}

type BookingService struct {
	bookings BookingStore
	slots    *SlotService
	catalog  ServiceCatalog
	notifier Notifier
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	bookings BookingStore,
	slots *SlotService,
	catalog ServiceCatalog,
	notifier Notifier,
	location *time.Location,
	logger *zap.Logger,
) *BookingService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if location == nil {
		location = time.Local
	}
	return &BookingService{
		bookings: bookings,
		slots:    slots,
		catalog:  catalog,
		notifier: notifier,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// Location часовой пояс барбершопа
func (s *BookingService) Location() *time.Location {
	return s.location
}

// Today текущая дата по местному времени барбершопа
func (s *BookingService) Today() model.Date {
	return model.DateOf(s.now().In(s.location))
}

// CreateBooking создаёт бронирование в статусе pending.
// Перед записью слот заново проверяется по актуальным бронированиям,
// а сама запись защищена уникальностью активного слота в хранилище.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*model.Booking, error) {
	req.ShopID = strings.TrimSpace(req.ShopID)
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.ServiceName = strings.TrimSpace(req.ServiceName)

	switch {
	case req.ShopID == "":
		return nil, invalidRequest("shop_id is required")
	case req.CustomerID == "":
		return nil, invalidRequest("customer_id is required")
	case req.ServiceName == "":
		return nil, invalidRequest("service_name is required")
	case strings.TrimSpace(req.Date) == "":
		return nil, invalidRequest("date is required")
	case strings.TrimSpace(req.Time) == "":
		return nil, invalidRequest("time is required")
	case req.Price < 0:
		return nil, invalidRequest("price must not be negative")
	case req.DurationMinutes < 0:
		return nil, invalidRequest("duration_minutes must not be negative")
	}

	date, err := model.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, invalidRequest("%v", err)
	}
	at, err := model.ParseClock(req.Time)
	if err != nil {
		return nil, invalidRequest("%v", err)
	}
	if !at.OnGrid() || at >= model.NewClock(24, 0) {
		return nil, invalidRequest("time %s is not a slot start", at)
	}

	if today := s.Today(); date.Before(today) {
		return nil, invalidRequest("date %s is in the past (today is %s)", date, today)
	}

	booking := &model.Booking{
		ID:              uuid.NewString(),
		ShopID:          req.ShopID,
		CustomerID:      req.CustomerID,
		ServiceName:     req.ServiceName,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Date:            date,
		Time:            at,
		Status:          model.BookingStatusPending,
	}

	if err := s.snapshotService(ctx, booking); err != nil {
		return nil, err
	}

	// Повторная проверка доступности прямо перед записью
	available, err := s.slots.AvailableSlots(ctx, booking.ShopID, date)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(available, at) {
		s.logger.Info("Slot is not available",
			zap.String("shop_id", booking.ShopID),
			zap.Stringer("date", date),
			zap.Stringer("time", at),
		)
		return nil, fmt.Errorf("%w: %s %s", ErrSlotUnavailable, date, at)
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			s.logger.Info("Slot taken concurrently",
				zap.String("shop_id", booking.ShopID),
				zap.Stringer("date", date),
				zap.Stringer("time", at),
			)
			return nil, fmt.Errorf("%w: %s %s", ErrSlotUnavailable, date, at)
		}
		return nil, unavailable("create booking", err)
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("shop_id", booking.ShopID),
		zap.String("customer_id", booking.CustomerID),
		zap.String("service", booking.ServiceName),
		zap.Stringer("date", date),
		zap.Stringer("time", at),
	)

	s.publish(ctx, model.BookingCreated, booking)

	return booking, nil
}

// snapshotService фиксирует цену и длительность услуги на момент записи.
// Если каталог барбершопа пуст, используются значения из запроса.
func (s *BookingService) snapshotService(ctx context.Context, booking *model.Booking) error {
	services, err := s.catalog.GetByShopID(ctx, booking.ShopID)
	if err != nil {
		return unavailable("get services", err)
	}

	if len(services) == 0 {
		if booking.DurationMinutes == 0 {
			booking.DurationMinutes = model.DefaultServiceDuration
		}
		return nil
	}

	for _, service := range services {
		if strings.EqualFold(service.Name, booking.ServiceName) {
			booking.ServiceName = service.Name
			booking.Price = service.Price
			booking.DurationMinutes = service.DurationMinutes
			if booking.DurationMinutes == 0 {
				booking.DurationMinutes = model.DefaultServiceDuration
			}
			return nil
		}
	}

	return invalidRequest("shop %s does not offer service %q", booking.ShopID, booking.ServiceName)
}

// TransitionStatus переводит бронирование в новый статус по таблице допустимых переходов
func (s *BookingService) TransitionStatus(ctx context.Context, bookingID string, next model.BookingStatus) (*model.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, invalidRequest("booking_id is required")
	}
	if !next.IsValid() {
		return nil, invalidRequest("unknown status %q", next)
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, unavailable("get booking", err)
	}
	if booking == nil {
		return nil, notFound("booking %s", bookingID)
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, next)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, booking.Status, next)
	if err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, fmt.Errorf("%w: booking %s changed concurrently", ErrIllegalTransition, bookingID)
		}
		return nil, unavailable("update booking status", err)
	}
	if updated == nil {
		return nil, notFound("booking %s", bookingID)
	}

	s.logger.Info("Booking status changed",
		zap.String("booking_id", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(next)),
	)

	s.publish(ctx, model.EventTypeFor(next), updated)

	return updated, nil
}

// CancelBooking отменяет бронирование, слот сразу становится свободным
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	return s.TransitionStatus(ctx, bookingID, model.BookingStatusCancelled)
}

// GetBooking получает бронирование по ID
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, strings.TrimSpace(bookingID))
	if err != nil {
		return nil, unavailable("get booking", err)
	}
	if booking == nil {
		return nil, notFound("booking %s", bookingID)
	}
	return booking, nil
}

// ListBookings получает бронирования по фильтру, упорядоченные по дате и времени
func (s *BookingService) ListBookings(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, invalidRequest("unknown status %q", filter.Status)
	}

	bookings, err := s.bookings.List(ctx, filter.Normalize())
	if err != nil {
		return nil, unavailable("list bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

// CompleteDueBookings завершает подтверждённые бронирования, чей слот уже закончился.
// Ошибки по отдельным бронированиям логируются и пропускаются.
func (s *BookingService) CompleteDueBookings(ctx context.Context) (int, error) {
	now := s.now().In(s.location)

	due, err := s.bookings.ListByStatusThrough(ctx, model.BookingStatusConfirmed, model.DateOf(now))
	if err != nil {
		return 0, unavailable("list confirmed bookings", err)
	}

	completed := 0
	for _, booking := range due {
		if booking.SlotEnd(s.location).After(now) {
			continue
		}
		if _, err := s.TransitionStatus(ctx, booking.ID, model.BookingStatusCompleted); err != nil {
			s.logger.Warn("Failed to auto-complete booking",
				zap.String("booking_id", booking.ID),
				zap.Error(err),
			)
			continue
		}
		completed++
	}

	return completed, nil
}

func (s *BookingService) publish(ctx context.Context, eventType model.BookingEventType, booking *model.Booking) {
	event := model.BookingEvent{
		Type:       eventType,
		Booking:    *booking,
		OccurredAt: s.now(),
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("Failed to publish booking event",
			zap.String("event", string(eventType)),
			zap.String("booking_id", booking.ID),
			zap.Error(err),
		)
	}
}
