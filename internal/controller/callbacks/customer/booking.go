package customer

import (
	"context"
	"errors"
	"slices"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/barber_booking/internal/controller/state"
	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Customer Booking Handlers
// ========================

// HandleBackToShops показывает список барбершопов
func HandleBackToShops(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	h.StateManager.ClearState(callback.From.ID)

	shops, err := h.ShopService.ListShops(ctx)
	if err != nil {
		h.Logger.Error("Failed to list shops", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	text, markup := common.BuildShopsScreen(shops, h.BookingService.Today())
	editScreen(ctx, b, msg, text, markup, h)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleShopSlots показывает свободные слоты барбершопа на дату
func HandleShopSlots(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	shopID, date, err := callbacktypes.ParseShopSlots(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	if err := showSlots(ctx, b, msg, shopID, date, h); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleChooseSlot запоминает выбранный слот и предлагает выбрать услугу
func HandleChooseSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	ref, err := callbacktypes.ParseSlot(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	// Слот мог быть занят, пока пользователь смотрел на клавиатуру
	free, err := h.SlotService.AvailableSlots(ctx, ref.ShopID, ref.Date)
	if err != nil {
		h.Logger.Error("Failed to get available slots", zap.Error(err), zap.String("shop_id", ref.ShopID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	if !slices.Contains(free, ref.Time) {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(service.ErrSlotUnavailable))
		_ = showSlots(ctx, b, msg, ref.ShopID, ref.Date, h)
		return
	}

	shop, err := h.ShopService.GetShop(ctx, ref.ShopID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	services, err := h.ShopService.GetServices(ctx, ref.ShopID)
	if err != nil {
		h.Logger.Error("Failed to get services", zap.Error(err), zap.String("shop_id", ref.ShopID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.StateManager.SetDraft(callback.From.ID, state.Draft{ShopID: ref.ShopID, Date: ref.Date, Time: ref.Time})

	text, markup := common.BuildServicesScreen(shop, ref, services)
	editScreen(ctx, b, msg, text, markup, h)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleChooseService создаёт запись на ранее выбранный слот
func HandleChooseService(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	serviceID, err := callbacktypes.ParseID(callback.Data, callbacktypes.ChooseService)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	telegramID := callback.From.ID
	draft, ok := h.StateManager.GetDraft(telegramID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrDraftExpired))
		return
	}

	services, err := h.ShopService.GetServices(ctx, draft.ShopID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	idx := slices.IndexFunc(services, func(s *model.Service) bool { return s.ID == serviceID })
	if idx < 0 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(service.ErrNotFound))
		return
	}

	booking, err := h.BookingService.CreateBooking(ctx, service.CreateBookingRequest{
		ShopID:      draft.ShopID,
		CustomerID:  common.CustomerID(telegramID),
		ServiceName: services[idx].Name,
		Date:        draft.Date.String(),
		Time:        draft.Time.String(),
	})
	if err != nil {
		h.Logger.Warn("Failed to create booking",
			zap.Error(err),
			zap.Int64("telegram_id", telegramID),
			zap.String("shop_id", draft.ShopID),
			zap.Stringer("date", draft.Date),
			zap.Stringer("time", draft.Time),
		)
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		if errors.Is(err, service.ErrSlotUnavailable) {
			h.StateManager.ClearState(telegramID)
			_ = showSlots(ctx, b, msg, draft.ShopID, draft.Date, h)
		}
		return
	}

	h.StateManager.ClearState(telegramID)

	view, err := h.QueryService.GetBookingView(ctx, booking.ID)
	if err != nil {
		view = &service.BookingView{Booking: *booking, ShopName: model.UnknownShopName}
	}

	text, markup := common.BuildBookingCreatedScreen(*view)
	editScreen(ctx, b, msg, text, markup, h)
	common.AnswerCallback(ctx, b, callback.ID, "✅ Запись создана")
}

// HandleCancelBooking спрашивает подтверждение отмены записи
func HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	view, msg, ok := loadOwnBooking(ctx, b, callback, callbacktypes.CancelBooking, h)
	if !ok {
		return
	}

	text, markup := common.BuildConfirmCancelScreen(*view)
	editScreen(ctx, b, msg, text, markup, h)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleKeepBooking возвращает карточку записи без отмены
func HandleKeepBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	view, msg, ok := loadOwnBooking(ctx, b, callback, callbacktypes.KeepBooking, h)
	if !ok {
		return
	}

	text, markup := common.BuildBookingCard(*view)
	editScreen(ctx, b, msg, text, markup, h)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleConfirmCancel отменяет запись
func HandleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	view, msg, ok := loadOwnBooking(ctx, b, callback, callbacktypes.ConfirmCancel, h)
	if !ok {
		return
	}

	cancelled, err := h.BookingService.CancelBooking(ctx, view.ID)
	if err != nil {
		h.Logger.Warn("Failed to cancel booking", zap.Error(err), zap.String("booking_id", view.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	view.Booking = *cancelled
	text, markup := common.BuildBookingCard(*view)
	editScreen(ctx, b, msg, text, markup, h)
	common.AnswerCallback(ctx, b, callback.ID, "✅ Запись отменена")
}

// loadOwnBooking загружает запись из callback data и проверяет, что она принадлежит пользователю
func loadOwnBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, prefix string, h *callbacktypes.Handler) (*service.BookingView, *models.Message, bool) {
	bookingID, err := callbacktypes.ParseID(callback.Data, prefix)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return nil, nil, false
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return nil, nil, false
	}

	view, err := h.QueryService.GetBookingView(ctx, bookingID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return nil, nil, false
	}
	if view.CustomerID != common.CustomerID(callback.From.ID) {
		h.Logger.Warn("Booking access denied",
			zap.String("booking_id", bookingID),
			zap.Int64("telegram_id", callback.From.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNotOwner))
		return nil, nil, false
	}

	return view, msg, true
}

// showSlots перерисовывает сообщение со свободными слотами
func showSlots(ctx context.Context, b *bot.Bot, msg *models.Message, shopID string, date model.Date, h *callbacktypes.Handler) error {
	today := h.BookingService.Today()
	if date.Before(today) {
		date = today
	}

	shop, err := h.ShopService.GetShop(ctx, shopID)
	if err != nil {
		return err
	}
	slots, err := h.SlotService.AvailableSlots(ctx, shopID, date)
	if err != nil {
		h.Logger.Error("Failed to get available slots", zap.Error(err), zap.String("shop_id", shopID))
		return err
	}

	text, markup := common.BuildSlotsScreen(shop, date, today, slots)
	editScreen(ctx, b, msg, text, markup, h)
	return nil
}

func editScreen(ctx context.Context, b *bot.Bot, msg *models.Message, text string, markup *models.InlineKeyboardMarkup, h *callbacktypes.Handler) {
	if err := common.EditScreen(ctx, b, msg, text, markup); err != nil {
		h.Logger.Error("Failed to edit message",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("message_id", msg.ID),
			zap.Error(err))
	}
}
