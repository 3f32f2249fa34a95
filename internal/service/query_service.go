package service

import (
	"context"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"go.uber.org/zap"
)

// BookingView бронирование с названием барбершопа для отображения
type BookingView struct {
	model.Booking
	ShopName string `json:"shop_name"`
}

// QueryService read-side: бронирования вместе с данными справочника барбершопов
type QueryService struct {
	bookings *BookingService
	shops    ShopDirectory
	logger   *zap.Logger
}

func NewQueryService(bookings *BookingService, shops ShopDirectory, logger *zap.Logger) *QueryService {
	return &QueryService{
		bookings: bookings,
		shops:    shops,
		logger:   logger,
	}
}

// ListBookingViews получает бронирования по фильтру с названиями барбершопов.
// Каждый барбершоп запрашивается из справочника один раз за вызов.
func (s *QueryService) ListBookingViews(ctx context.Context, filter model.BookingFilter) ([]BookingView, error) {
	bookings, err := s.bookings.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	views := make([]BookingView, 0, len(bookings))
	for _, booking := range bookings {
		name, ok := names[booking.ShopID]
		if !ok {
			name, err = s.shopName(ctx, booking.ShopID)
			if err != nil {
				return nil, err
			}
			names[booking.ShopID] = name
		}
		views = append(views, BookingView{Booking: *booking, ShopName: name})
	}

	return views, nil
}

// GetBookingView получает одно бронирование с названием барбершопа
func (s *QueryService) GetBookingView(ctx context.Context, bookingID string) (*BookingView, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	name, err := s.shopName(ctx, booking.ShopID)
	if err != nil {
		return nil, err
	}

	return &BookingView{Booking: *booking, ShopName: name}, nil
}

func (s *QueryService) shopName(ctx context.Context, shopID string) (string, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return "", unavailable("get shop", err)
	}
	if shop == nil {
		s.logger.Debug("Booking references unknown shop", zap.String("shop_id", shopID))
		return model.UnknownShopName, nil
	}
	return shop.Name, nil
}
