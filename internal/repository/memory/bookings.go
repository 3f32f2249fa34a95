// Package memory содержит реализации хранилищ в памяти процесса.
// Используются для локального запуска без Postgres и в тестах.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository"
)

type slotKey struct {
	shopID string
	date   model.Date
	time   model.Clock
}

// BookingStore хранилище бронирований.
// Проверка занятости слота и вставка выполняются под одной блокировкой.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*model.Booking
	active   map[slotKey]string // слот -> ID активного бронирования
	now      func() time.Time
}

func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings: make(map[string]*model.Booking),
		active:   make(map[slotKey]string),
		now:      time.Now,
	}
}

func keyOf(b *model.Booking) slotKey {
	return slotKey{shopID: b.ShopID, date: b.Date, time: b.Time}
}

// Create сохраняет бронирование, ErrSlotTaken если слот занят активной записью
func (s *BookingStore) Create(_ context.Context, booking *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(booking)
	if booking.Status.IsActive() {
		if _, taken := s.active[key]; taken {
			return repository.ErrSlotTaken
		}
		s.active[key] = booking.ID
	}

	now := s.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	stored := *booking
	s.bookings[booking.ID] = &stored
	return nil
}

func (s *BookingStore) GetByID(_ context.Context, id string) (*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (s *BookingStore) ListActiveOnDate(_ context.Context, shopID string, date model.Date) ([]*model.Booking, error) {
	return s.collect(func(b *model.Booking) bool {
		return b.ShopID == shopID && b.Date == date && b.Status.IsActive()
	}), nil
}

func (s *BookingStore) List(_ context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	filter = filter.Normalize()

	matched := s.collect(func(b *model.Booking) bool {
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			return false
		}
		if filter.ShopID != "" && b.ShopID != filter.ShopID {
			return false
		}
		if filter.Status != "" && b.Status != filter.Status {
			return false
		}
		if filter.Date != nil && b.Date != *filter.Date {
			return false
		}
		return true
	})

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], nil
}

func (s *BookingStore) ListByStatusThrough(_ context.Context, status model.BookingStatus, through model.Date) ([]*model.Booking, error) {
	return s.collect(func(b *model.Booking) bool {
		return b.Status == status && !through.Before(b.Date)
	}), nil
}

// UpdateStatus compare-and-swap статуса, семантика как у Postgres-репозитория
func (s *BookingStore) UpdateStatus(_ context.Context, id string, from, to model.BookingStatus) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	if booking.Status != from {
		return nil, repository.ErrStatusChanged
	}

	key := keyOf(booking)
	if !to.IsActive() && s.active[key] == id {
		delete(s.active, key)
	}
	if to.IsActive() && !from.IsActive() {
		if _, taken := s.active[key]; taken {
			return nil, repository.ErrSlotTaken
		}
		s.active[key] = id
	}

	booking.Status = to
	booking.UpdatedAt = s.now()

	copied := *booking
	return &copied, nil
}

// collect возвращает копии подходящих бронирований, отсортированные как в Postgres
func (s *BookingStore) collect(match func(*model.Booking) bool) []*model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Booking
	for _, booking := range s.bookings {
		if match(booking) {
			copied := *booking
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return result
}
