package callbacks

import (
	"context"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/barber_booking/internal/controller/state"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	slotService *service.SlotService,
	bookingService *service.BookingService,
	queryService *service.QueryService,
	shopService *service.ShopService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{Handler: &callbacktypes.Handler{
		SlotService:    slotService,
		BookingService: bookingService,
		QueryService:   queryService,
		ShopService:    shopService,
		StateManager:   stateManager,
		Logger:         logger,
	}}
}

// HandleCallbackQuery главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	Route(ctx, b, update.CallbackQuery, h.Handler)
}
