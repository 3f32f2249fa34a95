package callbacktypes

import (
	"github.com/Freeeeeet/barber_booking/internal/controller/state"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"go.uber.org/zap"
)

// Handler содержит зависимости, общие для всех обработчиков callback
type Handler struct {
	SlotService    *service.SlotService
	BookingService *service.BookingService
	QueryService   *service.QueryService
	ShopService    *service.ShopService
	StateManager   *state.Manager
	Logger         *zap.Logger
}
