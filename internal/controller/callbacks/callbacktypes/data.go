package callbacktypes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
)

// Форматы callback data. Telegram ограничивает их длину 64 байтами,
// поэтому дата и время кодируются без разделителей.
const (
	BackToShops = "back_to_shops"
	Noop        = "noop"

	ShopSlots     = "shop_slots:"     // shop_slots:shop_id:20261019
	ChooseSlot    = "slot:"           // slot:shop_id:20261019:0930
	ChooseService = "service:"        // service:service_id
	CancelBooking = "cancel_booking:" // cancel_booking:booking_id
	ConfirmCancel = "confirm_cancel:" // confirm_cancel:booking_id
	KeepBooking   = "keep_booking:"   // keep_booking:booking_id
)

// MaxDataLength максимальная длина callback data в Telegram
const MaxDataLength = 64

const compactDateLayout = "20060102"

var ErrInvalidFormat = errors.New("invalid callback format")

// SlotRef ссылка на слот конкретного барбершопа
type SlotRef struct {
	ShopID string
	Date   model.Date
	Time   model.Clock
}

// ShopSlotsData кодирует запрос свободных слотов барбершопа на дату
func ShopSlotsData(shopID string, date model.Date) string {
	return ShopSlots + shopID + ":" + date.Time().Format(compactDateLayout)
}

// SlotData кодирует выбор слота
func SlotData(ref SlotRef) string {
	return fmt.Sprintf("%s%s:%s:%02d%02d", ChooseSlot, ref.ShopID, ref.Date.Time().Format(compactDateLayout), ref.Time.Hour(), ref.Time.Minute())
}

func ServiceData(serviceID string) string { return ChooseService + serviceID }

func CancelBookingData(bookingID string) string { return CancelBooking + bookingID }

func ConfirmCancelData(bookingID string) string { return ConfirmCancel + bookingID }

func KeepBookingData(bookingID string) string { return KeepBooking + bookingID }

// ParseShopSlots разбирает shop_slots:shop_id:date
func ParseShopSlots(data string) (string, model.Date, error) {
	parts, err := splitPayload(data, ShopSlots, 2)
	if err != nil {
		return "", model.Date{}, err
	}
	date, err := parseCompactDate(parts[1])
	if err != nil {
		return "", model.Date{}, err
	}
	return parts[0], date, nil
}

// ParseSlot разбирает slot:shop_id:date:time
func ParseSlot(data string) (SlotRef, error) {
	parts, err := splitPayload(data, ChooseSlot, 3)
	if err != nil {
		return SlotRef{}, err
	}
	date, err := parseCompactDate(parts[1])
	if err != nil {
		return SlotRef{}, err
	}
	if len(parts[2]) != 4 {
		return SlotRef{}, fmt.Errorf("%w: time %q", ErrInvalidFormat, parts[2])
	}
	clock, err := model.ParseClock(parts[2][:2] + ":" + parts[2][2:])
	if err != nil || !clock.OnGrid() || clock == model.NewClock(24, 0) {
		return SlotRef{}, fmt.Errorf("%w: time %q", ErrInvalidFormat, parts[2])
	}
	return SlotRef{ShopID: parts[0], Date: date, Time: clock}, nil
}

// ParseID извлекает идентификатор из callback data с префиксом prefix.
// Например: "cancel_booking:abc" -> "abc"
func ParseID(data, prefix string) (string, error) {
	parts, err := splitPayload(data, prefix, 1)
	if err != nil {
		return "", err
	}
	return parts[0], nil
}

func splitPayload(data, prefix string, n int) ([]string, error) {
	payload, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return nil, fmt.Errorf("%w: expected prefix %q", ErrInvalidFormat, prefix)
	}
	parts := strings.Split(payload, ":")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
	}
	return parts, nil
}

func parseCompactDate(s string) (model.Date, error) {
	t, err := time.Parse(compactDateLayout, s)
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: date %q", ErrInvalidFormat, s)
	}
	return model.DateOf(t), nil
}
