package service

import (
	"context"

	"github.com/Freeeeeet/barber_booking/internal/model"
)

// BookingStore хранилище бронирований.
// Create обязан отклонять вставку активного бронирования в занятый слот (repository.ErrSlotTaken),
// UpdateStatus выполняет compare-and-swap по предыдущему статусу (repository.ErrStatusChanged).
// Отсутствующая запись возвращается как nil, nil.
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListActiveOnDate(ctx context.Context, shopID string, date model.Date) ([]*model.Booking, error)
	List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	ListByStatusThrough(ctx context.Context, status model.BookingStatus, through model.Date) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) (*model.Booking, error)
}

// TemplateStore хранилище недельных шаблонов расписания
type TemplateStore interface {
	GetByShopID(ctx context.Context, shopID string) (*model.ScheduleTemplate, error)
	Save(ctx context.Context, template *model.ScheduleTemplate) error
}

// ShopDirectory справочник барбершопов
type ShopDirectory interface {
	GetByID(ctx context.Context, id string) (*model.Shop, error)
	List(ctx context.Context) ([]*model.Shop, error)
	Upsert(ctx context.Context, shop *model.Shop) error
}

// ServiceCatalog каталог услуг барбершопов
type ServiceCatalog interface {
	GetByShopID(ctx context.Context, shopID string) ([]*model.Service, error)
	ReplaceForShop(ctx context.Context, shopID string, services []*model.Service) error
}

// Notifier получатель сигналов об изменении бронирований.
// Доставка не гарантируется, ошибка только логируется.
type Notifier interface {
	Notify(ctx context.Context, event model.BookingEvent) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, model.BookingEvent) error { return nil }
