package api

import (
	"net/http"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/gin-gonic/gin"
)

// GET /api/v1/shops
func (h *Handler) ListShops(c *gin.Context) {
	shops, err := h.shops.ListShops(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

// GET /api/v1/shops/:shopId
func (h *Handler) GetShop(c *gin.Context) {
	shop, err := h.shops.GetShop(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

type saveShopRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	About    string `json:"about"`
}

// PUT /api/v1/shops/:shopId (barber). Владельцем нового барбершопа становится вызывающий.
func (h *Handler) SaveShop(c *gin.Context) {
	var in saveShopRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	shopID := c.Param("shopId")

	existing, err := h.shops.GetShop(ctx, shopID)
	switch {
	case err == nil:
		if existing.OwnerUserID != subject(c) {
			h.forbidden(c, "only the shop owner can do this")
			return
		}
	case !isNotFound(err):
		h.writeError(c, err)
		return
	}

	shop, err := h.shops.SaveShop(ctx, &model.Shop{
		ID:          shopID,
		OwnerUserID: subject(c),
		Name:        in.Name,
		Location:    in.Location,
		Phone:       in.Phone,
		About:       in.About,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// GET /api/v1/shops/:shopId/services
func (h *Handler) GetServices(c *gin.Context) {
	services, err := h.shops.GetServices(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

type replaceServicesRequest struct {
	Services []*model.Service `json:"services"`
}

// PUT /api/v1/shops/:shopId/services (владелец)
func (h *Handler) ReplaceServices(c *gin.Context) {
	var in replaceServicesRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	shop, ok := h.ownedShop(c, c.Param("shopId"))
	if !ok {
		return
	}

	services, err := h.shops.ReplaceServices(c.Request.Context(), shop.ID, in.Services)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GET /api/v1/shops/:shopId/schedule
func (h *Handler) GetSchedule(c *gin.Context) {
	template, err := h.shops.GetScheduleTemplate(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

type saveScheduleRequest struct {
	Days []model.DayRule `json:"days"`
}

// PUT /api/v1/shops/:shopId/schedule (владелец)
func (h *Handler) SaveSchedule(c *gin.Context) {
	var in saveScheduleRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	shop, ok := h.ownedShop(c, c.Param("shopId"))
	if !ok {
		return
	}

	template, err := h.shops.SaveScheduleTemplate(c.Request.Context(), &model.ScheduleTemplate{
		ShopID: shop.ID,
		Days:   in.Days,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// GET /api/v1/shops/:shopId/available-slots?date=YYYY-MM-DD
func (h *Handler) AvailableSlots(c *gin.Context) {
	date, err := model.ParseDate(c.Query("date"))
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	shopID := c.Param("shopId")
	slots, err := h.slots.AvailableSlots(c.Request.Context(), shopID, date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop_id": shopID, "date": date, "times": slots})
}
