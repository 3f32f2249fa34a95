package common

import (
	"errors"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/barber_booking/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage    = errors.New("no message in callback")
	ErrDraftExpired = errors.New("slot choice expired")
	ErrNotOwner     = errors.New("booking belongs to another customer")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrSlotUnavailable):
		return "❌ Это время уже занято или недоступно. Выберите другой слот."
	case errors.Is(err, service.ErrIllegalTransition):
		return "❌ Эту запись уже нельзя изменить"
	case errors.Is(err, service.ErrNotFound):
		return "❌ Не найдено"
	case errors.Is(err, service.ErrInvalidRequest):
		return "❌ Неверные данные запроса"
	case errors.Is(err, service.ErrUnavailable):
		return "❌ Сервис временно недоступен. Попробуйте позже."
	case errors.Is(err, callbacktypes.ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrDraftExpired):
		return "⌛ Выбор времени устарел. Выберите слот заново."
	case errors.Is(err, ErrNotOwner):
		return "❌ Это не ваша запись"
	default:
		return "❌ Произошла ошибка"
	}
}
