package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$35.00", FormatPrice(3500))
	assert.Equal(t, "$0.05", FormatPrice(5))
	assert.Equal(t, "$35", FormatPriceShort(3500))
	assert.Equal(t, "$12.50", FormatPriceShort(1250))
}

func TestFormatDate(t *testing.T) {
	d := model.Date{Year: 2026, Month: time.October, Day: 19}

	assert.Equal(t, "19.10.2026", FormatDate(d))
	assert.Equal(t, "19.10.2026 (Пн)", FormatDateWithWeekday(d))
}

func TestFormatSlotRange(t *testing.T) {
	assert.Equal(t, "09:00-09:30", FormatSlotRange(model.NewClock(9, 0)))
	assert.Equal(t, "23:30-24:00", FormatSlotRange(model.NewClock(23, 30)))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45))
	assert.Equal(t, "1 ч", FormatDuration(60))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}

func TestPluralize(t *testing.T) {
	cases := map[int]string{
		1:   "слот",
		2:   "слота",
		5:   "слотов",
		11:  "слотов",
		12:  "слотов",
		21:  "слот",
		22:  "слота",
		111: "слотов",
	}
	for count, want := range cases {
		assert.Equal(t, want, PluralizeSlots(count), "count %d", count)
	}
	assert.Equal(t, "записи", PluralizeBookings(3))
}

func TestGetBookingStatusDisplay(t *testing.T) {
	assert.Equal(t, "❌", GetBookingStatusDisplay(model.BookingStatusCancelled).Emoji)
	assert.Equal(t, "Неизвестно", GetBookingStatusDisplay("bogus").Text)
}
