package api

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/barber_booking/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	codeInvalidRequest    = "invalid_request"
	codeNotFound          = "not_found"
	codeSlotUnavailable   = "slot_unavailable"
	codeIllegalTransition = "illegal_transition"
	codeUnavailable       = "unavailable"
	codeUnauthorized      = "unauthorized"
	codeForbidden         = "forbidden"
	codeRateLimited       = "rate_limited"
	codeInternal          = "internal"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusOf сопоставляет ошибку сервиса с HTTP статусом и кодом ответа
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, codeInvalidRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, service.ErrSlotUnavailable):
		return http.StatusConflict, codeSlotUnavailable
	case errors.Is(err, service.ErrIllegalTransition):
		return http.StatusConflict, codeIllegalTransition
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrNotFound)
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message, Code: code})
}
