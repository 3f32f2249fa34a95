package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/barber_booking/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/shops - Список барбершопов\n" +
	"/slots <id> [ГГГГ-ММ-ДД] - Свободное время барбершопа\n" +
	"/week <id> - Занятость барбершопа на неделю\n" +
	"/mybookings - Мои записи\n" +
	"/cancel <id записи> - Отменить запись\n" +
	"/cancel - Прервать выбор времени\n" +
	"/help - Показать эту справку"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From
	h.logger.Info("User started bot",
		zap.Int64("telegram_id", user.ID),
		zap.String("customer_id", common.CustomerID(user.ID)))

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот для записи в барбершоп. Выберите барбершоп, свободное время и услугу.\n\n%s",
		user.FirstName,
		helpText,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel.
// С аргументом отменяет запись, без аргумента прерывает выбор времени.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	bookingID, err := parseSingleArg(update.Message.Text)
	if errors.Is(err, errMissingArgument) {
		if h.stateManager.GetState(telegramID) == state.StateNone {
			h.sendMessage(ctx, b, chatID, "❌ Нет активных операций для отмены.\n\nЧтобы отменить запись: /cancel <id записи>")
			return
		}
		h.stateManager.ClearState(telegramID)
		h.sendMessage(ctx, b, chatID, "✅ Выбор времени прерван.\n\nИспользуйте /help для просмотра доступных команд.")
		return
	}
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Использование: /cancel <id записи>")
		return
	}

	view, err := h.queryService.GetBookingView(ctx, bookingID)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	if view.CustomerID != common.CustomerID(telegramID) {
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrNotOwner))
		return
	}

	cancelled, err := h.bookingService.CancelBooking(ctx, bookingID)
	if err != nil {
		h.logger.Warn("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	view.Booking = *cancelled
	text, markup := common.BuildBookingCard(*view)
	h.sendScreen(ctx, b, chatID, "✅ Запись отменена\n\n"+text, markup)
}
