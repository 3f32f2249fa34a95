package common

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// customerPrefix префикс идентификатора клиента, пришедшего из Telegram
const customerPrefix = "tg:"

// CustomerID возвращает идентификатор клиента для пользователя Telegram
func CustomerID(telegramID int64) string {
	return customerPrefix + strconv.FormatInt(telegramID, 10)
}

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// EditScreen заменяет текст и клавиатуру сообщения, к которому привязан callback
func EditScreen(ctx context.Context, b *bot.Bot, msg *models.Message, text string, markup *models.InlineKeyboardMarkup) error {
	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: ReplyMarkup(markup),
	})
	return err
}

// SendScreen отправляет новое сообщение с клавиатурой
func SendScreen(ctx context.Context, b *bot.Bot, chatID int64, text string, markup *models.InlineKeyboardMarkup) error {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: ReplyMarkup(markup),
	})
	return err
}

// ReplyMarkup возвращает nil-интерфейс для пустой клавиатуры
func ReplyMarkup(markup *models.InlineKeyboardMarkup) models.ReplyMarkup {
	if markup == nil {
		return nil
	}
	return markup
}
