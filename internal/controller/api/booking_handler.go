package api

import (
	"net/http"
	"strconv"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	ShopID          string `json:"shop_id"`
	ServiceName     string `json:"service_name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
}

// POST /api/v1/bookings (customer). customer_id берётся из токена.
func (h *Handler) CreateBooking(c *gin.Context) {
	var in createBookingRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	booking, err := h.bookings.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		ShopID:          in.ShopID,
		CustomerID:      subject(c),
		ServiceName:     in.ServiceName,
		Date:            in.Date,
		Time:            in.Time,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/v1/bookings?customerId=&shopId=&status=&date=&limit=&offset=
// Клиент видит только свои бронирования, барбер только бронирования своего барбершопа.
func (h *Handler) ListBookings(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	switch role(c) {
	case RoleCustomer:
		if filter.CustomerID != "" && filter.CustomerID != subject(c) {
			h.forbidden(c, "customers can only list their own bookings")
			return
		}
		filter.CustomerID = subject(c)
	case RoleBarber:
		if filter.ShopID == "" {
			h.badRequest(c, "shopId is required")
			return
		}
		if _, ok := h.ownedShop(c, filter.ShopID); !ok {
			return
		}
	}

	views, err := h.queries.ListBookingViews(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	filter = filter.Normalize()
	c.JSON(http.StatusOK, gin.H{
		"bookings": views,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

func (h *Handler) parseFilter(c *gin.Context) (model.BookingFilter, bool) {
	filter := model.BookingFilter{
		CustomerID: c.Query("customerId"),
		ShopID:     c.Query("shopId"),
		Status:     model.BookingStatus(c.Query("status")),
	}

	if raw := c.Query("date"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			h.badRequest(c, err.Error())
			return filter, false
		}
		filter.Date = &date
	}

	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.badRequest(c, name+" must be a non-negative integer")
			return filter, false
		}
		*dst = n
	}

	return filter, true
}

// GET /api/v1/bookings/:bookingId
func (h *Handler) GetBooking(c *gin.Context) {
	view, err := h.queries.GetBookingView(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !h.canAccess(c, &view.Booking) {
		h.forbidden(c, "booking belongs to another user")
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/v1/bookings/:bookingId/cancel (клиент бронирования или владелец барбершопа)
func (h *Handler) CancelBooking(c *gin.Context) {
	ctx := c.Request.Context()

	booking, err := h.bookings.GetBooking(ctx, c.Param("bookingId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !h.canAccess(c, booking) {
		h.forbidden(c, "booking belongs to another user")
		return
	}

	cancelled, err := h.bookings.CancelBooking(ctx, booking.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

type transitionRequest struct {
	Status model.BookingStatus `json:"status" binding:"required"`
}

// POST /api/v1/bookings/:bookingId/status (владелец барбершопа)
func (h *Handler) TransitionBooking(c *gin.Context) {
	var in transitionRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	booking, err := h.bookings.GetBooking(ctx, c.Param("bookingId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if _, ok := h.ownedShop(c, booking.ShopID); !ok {
		return
	}

	updated, err := h.bookings.TransitionStatus(ctx, booking.ID, in.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// canAccess клиент бронирования или владелец барбершопа
func (h *Handler) canAccess(c *gin.Context, booking *model.Booking) bool {
	switch role(c) {
	case RoleCustomer:
		return booking.CustomerID == subject(c)
	case RoleBarber:
		shop, err := h.shops.GetShop(c.Request.Context(), booking.ShopID)
		return err == nil && shop.OwnerUserID == subject(c)
	}
	return false
}
