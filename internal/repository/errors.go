package repository

import "errors"

var (
	// ErrSlotTaken слот уже занят активным бронированием (сработал уникальный индекс)
	ErrSlotTaken = errors.New("slot already taken")
	// ErrStatusChanged статус бронирования изменился между чтением и записью
	ErrStatusChanged = errors.New("booking status changed concurrently")
)
