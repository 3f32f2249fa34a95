package service

import (
	"errors"
	"fmt"
)

// Ошибки уровня сервиса. Транспорт сопоставляет их со своими кодами через errors.Is.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrSlotUnavailable   = errors.New("slot unavailable")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotFound          = errors.New("not found")
	ErrUnavailable       = errors.New("storage unavailable")
)

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// unavailable оборачивает ошибку хранилища. Повторов не делаем, это решает вызывающий.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
