package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository/memory"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"go.uber.org/zap"
)

// Рисует картинку занятости демо-барбершопа в week.png.
// Использование: week_preview [shopId]
func main() {
	ctx := context.Background()
	logger := zap.NewNop()

	shopID := "1"
	if len(os.Args) > 1 {
		shopID = os.Args[1]
	}

	shops := memory.NewShopStore()
	if err := memory.Seed(ctx, shops); err != nil {
		fmt.Printf("Ошибка загрузки демо-данных: %v\n", err)
		os.Exit(1)
	}
	bookings := memory.NewBookingStore()

	slotService := service.NewSlotService(shops.Templates(), bookings, logger)
	bookingService := service.NewBookingService(bookings, slotService, shops, nil, time.Local, logger)
	shopService := service.NewShopService(shops, shops, shops.Templates(), logger)

	shop, err := shopService.GetShop(ctx, shopID)
	if err != nil {
		fmt.Printf("Барбершоп %s не найден: %v\n", shopID, err)
		os.Exit(1)
	}

	// Несколько тестовых записей, чтобы на картинке были занятые слоты
	today := bookingService.Today()
	for i, offset := range []int{1, 1, 2, 4} {
		date := today.AddDays(offset)
		free, err := slotService.AvailableSlots(ctx, shopID, date)
		if err != nil || len(free) == 0 {
			continue
		}
		_, err = bookingService.CreateBooking(ctx, service.CreateBookingRequest{
			ShopID:      shopID,
			CustomerID:  fmt.Sprintf("preview-%d", i),
			ServiceName: "Haircut",
			Date:        date.String(),
			Time:        free[len(free)/2].String(),
		})
		if err != nil {
			fmt.Printf("Не удалось создать тестовую запись: %v\n", err)
		}
	}

	days, err := common.LoadWeekAvailability(ctx, shopService, slotService, shopID, today, common.WeekDays)
	if err != nil {
		fmt.Printf("Ошибка загрузки расписания: %v\n", err)
		os.Exit(1)
	}

	imageData, err := common.GenerateWeekImage(shop.Name, today, days)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "week.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("💈 %s, период: %s - %s\n", shop.Name, today, today.AddDays(common.WeekDays-1))
	fmt.Printf("📊 Записей: %d\n", countBookings(ctx, bookingService, shopID))
}

func countBookings(ctx context.Context, bookings *service.BookingService, shopID string) int {
	list, err := bookings.ListBookings(ctx, model.BookingFilter{ShopID: shopID})
	if err != nil {
		return 0
	}
	return len(list)
}
