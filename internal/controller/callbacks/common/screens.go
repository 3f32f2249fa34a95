package common

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"github.com/go-telegram/bot/models"
)

// slotsPerRow количество кнопок времени в одном ряду
const slotsPerRow = 4

// BuildShopsScreen формирует список барбершопов
func BuildShopsScreen(shops []*model.Shop, today model.Date) (string, *models.InlineKeyboardMarkup) {
	if len(shops) == 0 {
		return "💈 Пока нет ни одного барбершопа.", nil
	}

	var sb strings.Builder
	sb.WriteString("💈 Барбершопы\n\n")
	kb := keyboard.NewBuilder()
	for _, shop := range shops {
		fmt.Fprintf(&sb, "• %s\n", shop.Name)
		if shop.Location != "" {
			fmt.Fprintf(&sb, "  📍 %s\n", shop.Location)
		}
		kb.Row(keyboard.Button("💈 "+shop.Name, callbacktypes.ShopSlotsData(shop.ID, today)))
	}
	sb.WriteString("\nВыберите барбершоп, чтобы увидеть свободное время:")

	return sb.String(), kb.Build()
}

// BuildSlotsScreen формирует экран свободных слотов барбершопа на дату
func BuildSlotsScreen(shop *model.Shop, date, today model.Date, slots []model.Clock) (string, *models.InlineKeyboardMarkup) {
	var text string
	if len(slots) == 0 {
		text = fmt.Sprintf("💈 %s\n📅 %s\n\nНа эту дату свободных слотов нет.",
			shop.Name, formatting.FormatDateWithWeekday(date))
	} else {
		text = fmt.Sprintf("💈 %s\n📅 %s\n\nСвободно %d %s. Выберите время:",
			shop.Name, formatting.FormatDateWithWeekday(date), len(slots), formatting.PluralizeSlots(len(slots)))
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(slots))
	for _, slot := range slots {
		ref := callbacktypes.SlotRef{ShopID: shop.ID, Date: date, Time: slot}
		buttons = append(buttons, keyboard.Button(slot.String(), callbacktypes.SlotData(ref)))
	}

	var nav []models.InlineKeyboardButton
	if today.Before(date) {
		nav = append(nav, keyboard.Button("◀️ "+formatting.FormatDate(date.AddDays(-1)), callbacktypes.ShopSlotsData(shop.ID, date.AddDays(-1))))
	}
	nav = append(nav, keyboard.Button(formatting.FormatDate(date.AddDays(1))+" ▶️", callbacktypes.ShopSlotsData(shop.ID, date.AddDays(1))))

	kb := keyboard.NewBuilder().
		Grid(slotsPerRow, buttons...).
		Row(nav...).
		AddBackToShopsButton()

	return text, kb.Build()
}

// BuildServicesScreen формирует выбор услуги для выбранного слота
func BuildServicesScreen(shop *model.Shop, ref callbacktypes.SlotRef, services []*model.Service) (string, *models.InlineKeyboardMarkup) {
	back := keyboard.BackButton(callbacktypes.ShopSlotsData(ref.ShopID, ref.Date))

	if len(services) == 0 {
		text := fmt.Sprintf("💈 %s\n\nБарбершоп ещё не добавил услуги.", shop.Name)
		return text, keyboard.NewBuilder().Row(back).Build()
	}

	text := fmt.Sprintf("💈 %s\n📅 %s\n🕐 %s\n\nВыберите услугу:",
		shop.Name, formatting.FormatDateWithWeekday(ref.Date), formatting.FormatSlotRange(ref.Time))

	kb := keyboard.NewBuilder()
	for _, svc := range services {
		label := fmt.Sprintf("%s · %s · %s", svc.Name, formatting.FormatPriceShort(svc.Price), formatting.FormatDuration(svc.DurationMinutes))
		kb.Row(keyboard.Button(label, callbacktypes.ServiceData(svc.ID)))
	}
	kb.Row(back)

	return text, kb.Build()
}

// FormatBooking форматирует бронирование для отображения
func FormatBooking(view service.BookingView) string {
	display := formatting.GetBookingStatusDisplay(view.Status)

	return fmt.Sprintf(
		"%s %s\n\n"+
			"💈 %s\n"+
			"📅 %s\n"+
			"🕐 %s\n"+
			"💰 %s\n"+
			"📊 Статус: %s\n"+
			"🆔 %s",
		display.Emoji,
		view.ServiceName,
		view.ShopName,
		formatting.FormatDateWithWeekday(view.Date),
		formatting.FormatSlotRange(view.Time),
		formatting.FormatPrice(view.Price),
		display.Text,
		view.ID,
	)
}

// BuildBookingCard формирует карточку записи с кнопкой отмены для активных записей
func BuildBookingCard(view service.BookingView) (string, *models.InlineKeyboardMarkup) {
	text := FormatBooking(view)
	if view.Status.IsTerminal() {
		return text, nil
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("❌ Отменить запись", callbacktypes.CancelBookingData(view.ID)))
	return text, kb.Build()
}

// BuildConfirmCancelScreen формирует запрос подтверждения отмены
func BuildConfirmCancelScreen(view service.BookingView) (string, *models.InlineKeyboardMarkup) {
	text := FormatBooking(view) + "\n\nОтменить эту запись?"

	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmCancelButtons(
			callbacktypes.ConfirmCancelData(view.ID),
			callbacktypes.KeepBookingData(view.ID),
		)...)
	return text, kb.Build()
}

// BuildBookingCreatedScreen формирует сообщение об успешной записи
func BuildBookingCreatedScreen(view service.BookingView) (string, *models.InlineKeyboardMarkup) {
	text := "✅ Запись создана!\n\n" + FormatBooking(view) +
		"\n\nБарбершоп подтвердит запись. Все записи: /mybookings"

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("❌ Отменить запись", callbacktypes.CancelBookingData(view.ID))).
		AddBackToShopsButton()
	return text, kb.Build()
}

// BuildEmptyBookingsScreen формирует экран при отсутствии записей
func BuildEmptyBookingsScreen() (string, *models.InlineKeyboardMarkup) {
	text := "📅 У вас пока нет записей.\n\nВыберите барбершоп и свободное время:"
	kb := keyboard.NewBuilder().Row(keyboard.Button("💈 Барбершопы", callbacktypes.BackToShops))
	return text, kb.Build()
}
