// Package api HTTP/JSON интерфейс сервиса бронирования на gin.
package api

import (
	"net/http"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/notify"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler HTTP обработчики поверх сервисного слоя
type Handler struct {
	slots    *service.SlotService
	bookings *service.BookingService
	queries  *service.QueryService
	shops    *service.ShopService
	events   *notify.Broker
	logger   *zap.Logger
}

func NewHandler(
	slots *service.SlotService,
	bookings *service.BookingService,
	queries *service.QueryService,
	shops *service.ShopService,
	events *notify.Broker,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		slots:    slots,
		bookings: bookings,
		queries:  queries,
		shops:    shops,
		events:   events,
		logger:   logger,
	}
}

// writeError отвечает ошибкой сервиса в формате {"error", "code"}
func (h *Handler) writeError(c *gin.Context, err error) {
	status, code := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	abortWithError(c, status, code, err.Error())
}

func (h *Handler) forbidden(c *gin.Context, message string) {
	abortWithError(c, http.StatusForbidden, codeForbidden, message)
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	abortWithError(c, http.StatusBadRequest, codeInvalidRequest, message)
}

// ownedShop загружает барбершоп и проверяет что вызывающий его владелец
func (h *Handler) ownedShop(c *gin.Context, shopID string) (*model.Shop, bool) {
	shop, err := h.shops.GetShop(c.Request.Context(), shopID)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	if role(c) != RoleBarber || shop.OwnerUserID != subject(c) {
		h.forbidden(c, "only the shop owner can do this")
		return nil, false
	}
	return shop, true
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
