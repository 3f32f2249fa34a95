package handlers

import (
	"bytes"
	"context"
	"errors"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleShops обрабатывает команду /shops
func (h *Handlers) HandleShops(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	shops, err := h.shopService.ListShops(ctx)
	if err != nil {
		h.logger.Error("Failed to list shops", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, markup := common.BuildShopsScreen(shops, h.bookingService.Today())
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, markup)
}

// HandleSlots обрабатывает команду /slots <shopId> [YYYY-MM-DD]
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	today := h.bookingService.Today()

	shopID, date, err := parseSlotsArgs(update.Message.Text, today)
	if errors.Is(err, errMissingArgument) {
		h.HandleShops(ctx, b, update)
		return
	}
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Использование: /slots <id барбершопа> [ГГГГ-ММ-ДД]")
		return
	}
	if date.Before(today) {
		h.sendError(ctx, b, chatID, "❌ Нельзя записаться на прошедшую дату")
		return
	}

	shop, err := h.shopService.GetShop(ctx, shopID)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	slots, err := h.slotService.AvailableSlots(ctx, shopID, date)
	if err != nil {
		h.logger.Error("Failed to get available slots", zap.Error(err), zap.String("shop_id", shopID))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text, markup := common.BuildSlotsScreen(shop, date, today, slots)
	h.sendScreen(ctx, b, chatID, text, markup)
}

// HandleWeek обрабатывает команду /week <shopId>: картинка занятости на неделю
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	shopID, err := parseSingleArg(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Использование: /week <id барбершопа>")
		return
	}

	shop, err := h.shopService.GetShop(ctx, shopID)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	today := h.bookingService.Today()
	days, err := common.LoadWeekAvailability(ctx, h.shopService, h.slotService, shopID, today, common.WeekDays)
	if err != nil {
		h.logger.Error("Failed to load week availability", zap.Error(err), zap.String("shop_id", shopID))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	img, err := common.GenerateWeekImage(shop.Name, today, days)
	if err != nil {
		h.logger.Error("Failed to render week image", zap.Error(err), zap.String("shop_id", shopID))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(img)},
		Caption: "💈 " + shop.Name + "\nЗаписаться: /slots " + shop.ID,
	})
	if err != nil {
		h.logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	customerID := common.CustomerID(update.Message.From.ID)

	views, err := h.queryService.ListBookingViews(ctx, model.BookingFilter{CustomerID: customerID})
	if err != nil {
		h.logger.Error("Failed to list bookings", zap.Error(err), zap.String("customer_id", customerID))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(views) == 0 {
		text, markup := common.BuildEmptyBookingsScreen()
		h.sendScreen(ctx, b, chatID, text, markup)
		return
	}

	// Отправляем каждую запись отдельным сообщением с кнопками
	for _, view := range upcomingFirst(views, h.bookingService.Today()) {
		text, markup := common.BuildBookingCard(view)
		h.sendScreen(ctx, b, chatID, text, markup)
	}
}

// upcomingFirst ставит активные предстоящие записи перед прошедшими и завершёнными,
// сохраняя хронологический порядок внутри групп
func upcomingFirst(views []service.BookingView, today model.Date) []service.BookingView {
	upcoming := make([]service.BookingView, 0, len(views))
	var rest []service.BookingView
	for _, view := range views {
		if !view.Status.IsTerminal() && !view.Date.Before(today) {
			upcoming = append(upcoming, view)
		} else {
			rest = append(rest, view)
		}
	}
	return append(upcoming, rest...)
}
