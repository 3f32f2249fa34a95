package api

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Verifier       *TokenVerifier
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
}

// NewRouter собирает gin engine со всеми маршрутами /api/v1
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), corsMiddleware(cfg.AllowedOrigins))

	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	v1.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

	auth := JWTAuth(cfg.Verifier)
	barber := RequireRole(RoleBarber)
	customer := RequireRole(RoleCustomer)

	shops := v1.Group("/shops")
	{
		shops.GET("", h.ListShops)
		shops.GET("/:shopId", h.GetShop)
		shops.PUT("/:shopId", auth, barber, h.SaveShop)
		shops.GET("/:shopId/services", h.GetServices)
		shops.PUT("/:shopId/services", auth, barber, h.ReplaceServices)
		shops.GET("/:shopId/schedule", h.GetSchedule)
		shops.PUT("/:shopId/schedule", auth, barber, h.SaveSchedule)
		shops.GET("/:shopId/available-slots", h.AvailableSlots)
	}

	bookings := v1.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.POST("", customer, h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/events", h.BookingEvents)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.POST("/:bookingId/cancel", h.CancelBooking)
		bookings.POST("/:bookingId/status", barber, h.TransitionBooking)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	return cors.New(config)
}
