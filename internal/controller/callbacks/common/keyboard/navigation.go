package keyboard

import (
	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot/models"
)

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

// BackToShopsButton создаёт кнопку "К списку барбершопов"
func BackToShopsButton() models.InlineKeyboardButton {
	return Button("⬅️ К списку барбершопов", callbacktypes.BackToShops)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		ConfirmButton(confirmCallback),
		CancelButton(cancelCallback),
	}
}

// AddBackToShopsButton добавляет кнопку "К списку барбершопов" к builder
func (b *Builder) AddBackToShopsButton() *Builder {
	return b.Row(BackToShopsButton())
}
