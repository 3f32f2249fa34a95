package handlers

import (
	"github.com/Freeeeeet/barber_booking/internal/controller/state"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	slotService    *service.SlotService
	bookingService *service.BookingService
	queryService   *service.QueryService
	shopService    *service.ShopService
	stateManager   *state.Manager
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	slotService *service.SlotService,
	bookingService *service.BookingService,
	queryService *service.QueryService,
	shopService *service.ShopService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		slotService:    slotService,
		bookingService: bookingService,
		queryService:   queryService,
		shopService:    shopService,
		stateManager:   stateManager,
		logger:         logger,
	}
}
