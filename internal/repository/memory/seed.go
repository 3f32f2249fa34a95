package memory

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/barber_booking/internal/model"
)

type seedShop struct {
	shop     model.Shop
	services []model.Service
	weekday  [2]model.Clock // будни: открытие, закрытие
	saturday [2]model.Clock
	sunday   *[2]model.Clock // nil - выходной
}

// demoShops те же демо-данные, что и в миграции 00002_seed_demo_shops.sql
var demoShops = []seedShop{
	{
		shop: model.Shop{ID: "1", OwnerUserID: "barber1", Name: "Classic Cuts Studio", Location: "123 Main St, Downtown", Phone: "+1 (555) 123-4567",
			About: "A premium barbershop offering classic cuts and modern styles."},
		services: []model.Service{
			{ID: "s1", Name: "Haircut", Description: "Professional haircut with styling", Price: 3500, DurationMinutes: 30},
			{ID: "s2", Name: "Beard Trim", Description: "Precise beard trimming and shaping", Price: 2000, DurationMinutes: 15},
			{ID: "s3", Name: "Hot Towel Shave", Description: "Traditional hot towel shave with premium products", Price: 4500, DurationMinutes: 45},
		},
		weekday:  [2]model.Clock{model.NewClock(9, 0), model.NewClock(18, 0)},
		saturday: [2]model.Clock{model.NewClock(10, 0), model.NewClock(16, 0)},
	},
	{
		shop: model.Shop{ID: "2", OwnerUserID: "barber2", Name: "The Gentleman's Room", Location: "456 Oak Ave, Midtown", Phone: "+1 (555) 234-5678",
			About: "Experience luxury grooming at its finest."},
		services: []model.Service{
			{ID: "s4", Name: "Haircut", Description: "Premium haircut with consultation", Price: 5000, DurationMinutes: 45},
			{ID: "s5", Name: "Styling", Description: "Hair styling and product application", Price: 3000, DurationMinutes: 30},
			{ID: "s6", Name: "Coloring", Description: "Professional hair coloring service", Price: 8000, DurationMinutes: 90},
		},
		weekday:  [2]model.Clock{model.NewClock(10, 0), model.NewClock(19, 0)},
		saturday: [2]model.Clock{model.NewClock(9, 0), model.NewClock(17, 0)},
	},
	{
		shop: model.Shop{ID: "3", OwnerUserID: "barber3", Name: "Urban Edge Barbershop", Location: "789 Pine Rd, Uptown", Phone: "+1 (555) 345-6789",
			About: "Modern barbershop specializing in fades, line-ups, and contemporary styles."},
		services: []model.Service{
			{ID: "s7", Name: "Haircut", Description: "Modern fade and style", Price: 3000, DurationMinutes: 30},
			{ID: "s8", Name: "Fade", Description: "Professional fade cut", Price: 3500, DurationMinutes: 30},
			{ID: "s9", Name: "Line Up", Description: "Precise edge-up and line work", Price: 1500, DurationMinutes: 15},
		},
		weekday:  [2]model.Clock{model.NewClock(8, 0), model.NewClock(20, 0)},
		saturday: [2]model.Clock{model.NewClock(9, 0), model.NewClock(18, 0)},
		sunday:   &[2]model.Clock{model.NewClock(10, 0), model.NewClock(16, 0)},
	},
}

// Seed заполняет хранилище демо-барбершопами
func Seed(ctx context.Context, store *ShopStore) error {
	templates := store.Templates()

	for _, seed := range demoShops {
		shop := seed.shop
		if err := store.Upsert(ctx, &shop); err != nil {
			return fmt.Errorf("seed shop %s: %w", shop.ID, err)
		}

		services := make([]*model.Service, 0, len(seed.services))
		for i := range seed.services {
			service := seed.services[i]
			services = append(services, &service)
		}
		if err := store.ReplaceForShop(ctx, shop.ID, services); err != nil {
			return fmt.Errorf("seed services %s: %w", shop.ID, err)
		}

		template := &model.ScheduleTemplate{ShopID: shop.ID}
		for _, day := range model.Weekdays() {
			rule := model.DayRule{Weekday: day, Enabled: true, OpenTime: seed.weekday[0], CloseTime: seed.weekday[1]}
			switch day {
			case model.Saturday:
				rule.OpenTime, rule.CloseTime = seed.saturday[0], seed.saturday[1]
			case model.Sunday:
				if seed.sunday == nil {
					rule = model.DayRule{Weekday: day, Enabled: false, OpenTime: model.NewClock(9, 0), CloseTime: model.NewClock(17, 0)}
				} else {
					rule.OpenTime, rule.CloseTime = seed.sunday[0], seed.sunday[1]
				}
			}
			template.Days = append(template.Days, rule)
		}
		if err := templates.Save(ctx, template); err != nil {
			return fmt.Errorf("seed schedule %s: %w", shop.ID, err)
		}
	}

	return nil
}

type seedBooking struct {
	id          string
	shopID      string
	serviceName string
	price       int
	daysAhead   int
	at          model.Clock
	status      model.BookingStatus
}

// demoBookings те же записи, что и в миграции 00003_seed_demo_bookings.sql
var demoBookings = []seedBooking{
	{id: "b1", shopID: "1", serviceName: "Haircut", price: 3500, daysAhead: 2, at: model.NewClock(10, 0), status: model.BookingStatusConfirmed},
	{id: "b2", shopID: "2", serviceName: "Styling", price: 3000, daysAhead: 5, at: model.NewClock(14, 0), status: model.BookingStatusPending},
}

// DemoCustomerID клиент демо-бронирований
const DemoCustomerID = "customer1"

// SeedBookings добавляет демо-бронирования относительно даты today
func SeedBookings(ctx context.Context, store *BookingStore, today model.Date) error {
	for _, seed := range demoBookings {
		booking := &model.Booking{
			ID:              seed.id,
			ShopID:          seed.shopID,
			CustomerID:      DemoCustomerID,
			ServiceName:     seed.serviceName,
			Price:           seed.price,
			DurationMinutes: model.DefaultServiceDuration,
			Date:            today.AddDays(seed.daysAhead),
			Time:            seed.at,
			Status:          seed.status,
		}
		if err := store.Create(ctx, booking); err != nil {
			return fmt.Errorf("seed booking %s: %w", seed.id, err)
		}
	}
	return nil
}
