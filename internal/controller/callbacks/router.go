package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/customer"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == callbacktypes.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == callbacktypes.BackToShops:
		customer.HandleBackToShops(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.ShopSlots):
		customer.HandleShopSlots(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.ChooseSlot):
		customer.HandleChooseSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.ChooseService):
		customer.HandleChooseService(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.CancelBooking):
		customer.HandleCancelBooking(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.ConfirmCancel):
		customer.HandleConfirmCancel(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.KeepBooking):
		customer.HandleKeepBooking(ctx, b, callback, h)
	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❓ Неизвестное действие")
	}
}
