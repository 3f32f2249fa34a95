package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shopTemplate(shopID string, rules ...model.DayRule) *model.ScheduleTemplate {
	template := &model.ScheduleTemplate{ShopID: shopID}
	for _, day := range model.Weekdays() {
		rule := model.DayRule{Weekday: day, OpenTime: model.NewClock(9, 0), CloseTime: model.NewClock(17, 0)}
		for _, r := range rules {
			if r.Weekday == day {
				rule = r
			}
		}
		template.Days = append(template.Days, rule)
	}
	return template
}

func TestGenerateSlots(t *testing.T) {
	template := shopTemplate("1", model.DayRule{
		Weekday:   model.Monday,
		Enabled:   true,
		OpenTime:  model.NewClock(9, 0),
		CloseTime: model.NewClock(11, 0),
	})

	tests := []struct {
		name     string
		template *model.ScheduleTemplate
		date     model.Date
		bookings []*model.Booking
		want     []string
	}{
		{
			name:     "open day without bookings",
			template: template,
			date:     monday,
			want:     []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:     "closed day",
			template: template,
			date:     sunday,
			want:     []string{},
		},
		{
			name:     "no template",
			template: nil,
			date:     monday,
			want:     []string{},
		},
		{
			name:     "active bookings are excluded",
			template: template,
			date:     monday,
			bookings: []*model.Booking{
				{ShopID: "1", Date: monday, Time: model.NewClock(9, 30), Status: model.BookingStatusPending},
				{ShopID: "1", Date: monday, Time: model.NewClock(10, 0), Status: model.BookingStatusConfirmed},
				{ShopID: "1", Date: monday, Time: model.NewClock(10, 30), Status: model.BookingStatusCompleted},
			},
			want: []string{"09:00"},
		},
		{
			name:     "cancelled bookings free the slot",
			template: template,
			date:     monday,
			bookings: []*model.Booking{
				{ShopID: "1", Date: monday, Time: model.NewClock(9, 30), Status: model.BookingStatusCancelled},
			},
			want: []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:     "bookings of other shops and dates are ignored",
			template: template,
			date:     monday,
			bookings: []*model.Booking{
				{ShopID: "2", Date: monday, Time: model.NewClock(9, 0), Status: model.BookingStatusPending},
				{ShopID: "1", Date: monday.AddDays(7), Time: model.NewClock(9, 0), Status: model.BookingStatusPending},
			},
			want: []string{"09:00", "09:30", "10:00", "10:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(tt.template, tt.date, tt.bookings)
			assert.Equal(t, clocks(t, tt.want...), got)
		})
	}
}

func TestGenerateSlotsIsDeterministic(t *testing.T) {
	template := shopTemplate("1", model.DayRule{Weekday: model.Monday, Enabled: true, OpenTime: model.NewClock(8, 0), CloseTime: model.NewClock(20, 0)})
	bookings := []*model.Booking{
		{ShopID: "1", Date: monday, Time: model.NewClock(12, 0), Status: model.BookingStatusPending},
	}

	first := GenerateSlots(template, monday, bookings)
	second := GenerateSlots(template, monday, bookings)
	assert.Equal(t, first, second)
	assert.Len(t, first, 23)
}

// Барбершоп "1" работает по понедельникам 09:00-18:00
func TestAvailableSlotsScenarios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var all []string
	for c := model.NewClock(9, 0); c < model.NewClock(18, 0); c += model.SlotMinutes {
		all = append(all, c.String())
	}
	require.Len(t, all, 18)

	// A: без бронирований доступны все 18 слотов
	slots, err := f.slots.AvailableSlots(ctx, "1", monday)
	require.NoError(t, err)
	assert.Equal(t, clocks(t, all...), slots)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "17:30", slots[len(slots)-1].String())

	// B: pending бронирование на 10:00 исключает только этот слот
	booking := f.book(t, "1", monday, "10:00")
	slots, err = f.slots.AvailableSlots(ctx, "1", monday)
	require.NoError(t, err)
	assert.Len(t, slots, 17)
	assert.NotContains(t, slots, model.NewClock(10, 0))
	assert.Contains(t, slots, model.NewClock(9, 30))
	assert.Contains(t, slots, model.NewClock(10, 30))

	// C: после отмены 10:00 снова доступен
	_, err = f.bookings.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	slots, err = f.slots.AvailableSlots(ctx, "1", monday)
	require.NoError(t, err)
	assert.Equal(t, clocks(t, all...), slots)
}

func TestAvailableSlotsNeverOffersBookedSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i, at := range []string{"08:00", "09:30", "12:00", "19:30"} {
		booking := f.book(t, "3", monday, at)
		if i%2 == 0 {
			_, err := f.bookings.TransitionStatus(ctx, booking.ID, model.BookingStatusConfirmed)
			require.NoError(t, err)
		}
	}

	slots, err := f.slots.AvailableSlots(ctx, "3", monday)
	require.NoError(t, err)
	assert.Len(t, slots, 24-4)
	for _, at := range clocks(t, "08:00", "09:30", "12:00", "19:30") {
		assert.NotContains(t, slots, at)
	}

	again, err := f.slots.AvailableSlots(ctx, "3", monday)
	require.NoError(t, err)
	assert.Equal(t, slots, again)
}

func TestAvailableSlotsClosedAndUnconfigured(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	slots, err := f.slots.AvailableSlots(ctx, "1", sunday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = f.slots.AvailableSlots(ctx, "unknown", monday)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)

	_, err = f.slots.AvailableSlots(ctx, "", monday)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.slots.AvailableSlots(ctx, "1", model.Date{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAvailableSlotsSaturdayHours(t *testing.T) {
	f := newFixture(t)

	slots, err := f.slots.AvailableSlots(context.Background(), "1", saturday)
	require.NoError(t, err)
	require.Len(t, slots, 12)
	assert.Equal(t, model.NewClock(10, 0), slots[0])
	assert.Equal(t, model.NewClock(15, 30), slots[11])
}
