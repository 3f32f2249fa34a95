package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"go.uber.org/zap"
)

// GenerateSlots вычисляет свободные слоты барбершопа на дату.
// Чистая функция: одинаковые входные данные всегда дают одинаковый результат.
// Прошедшие даты здесь не отклоняются.
func GenerateSlots(template *model.ScheduleTemplate, date model.Date, bookings []*model.Booking) []model.Clock {
	slots := []model.Clock{}

	rule, ok := template.Rule(date.Weekday())
	if !ok || !rule.Enabled {
		return slots
	}

	booked := make(map[model.Clock]bool, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.Status.IsActive() || b.Date != date || b.ShopID != template.ShopID {
			continue
		}
		booked[b.Time] = true
	}

	for t := rule.OpenTime; t < rule.CloseTime; t += model.SlotMinutes {
		if !booked[t] {
			slots = append(slots, t)
		}
	}

	return slots
}

// SlotService загружает шаблон и бронирования и считает свободные слоты
type SlotService struct {
	templates TemplateStore
	bookings  BookingStore
	logger    *zap.Logger
}

func NewSlotService(templates TemplateStore, bookings BookingStore, logger *zap.Logger) *SlotService {
	return &SlotService{
		templates: templates,
		bookings:  bookings,
		logger:    logger,
	}
}

// AvailableSlots возвращает свободные слоты в хронологическом порядке.
// Закрытый день и ненастроенный барбершоп одинаково дают пустой список.
func (s *SlotService) AvailableSlots(ctx context.Context, shopID string, date model.Date) ([]model.Clock, error) {
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return nil, invalidRequest("shop_id is required")
	}
	if date.IsZero() {
		return nil, invalidRequest("date is required")
	}

	template, err := s.templates.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, unavailable("get schedule template", err)
	}
	if template == nil {
		s.logger.Debug("Schedule template not configured", zap.String("shop_id", shopID))
		return []model.Clock{}, nil
	}

	if rule, ok := template.Rule(date.Weekday()); !ok || !rule.Enabled {
		return []model.Clock{}, nil
	}

	bookings, err := s.bookings.ListActiveOnDate(ctx, shopID, date)
	if err != nil {
		return nil, unavailable("list bookings on date", err)
	}

	return GenerateSlots(template, date, bookings), nil
}
