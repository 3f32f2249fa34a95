package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(shopID string, date model.Date, at model.Clock) *model.Booking {
	return &model.Booking{
		ID:          uuid.NewString(),
		ShopID:      shopID,
		CustomerID:  "customer1",
		ServiceName: "Haircut",
		Date:        date,
		Time:        at,
		Status:      model.BookingStatusPending,
	}
}

func TestBookingStoreRejectsSecondActiveBooking(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	date := model.Date{Year: 2026, Month: time.October, Day: 19}

	first := newBooking("1", date, model.NewClock(10, 0))
	require.NoError(t, store.Create(ctx, first))

	second := newBooking("1", date, model.NewClock(10, 0))
	assert.ErrorIs(t, store.Create(ctx, second), repository.ErrSlotTaken)

	otherShop := newBooking("2", date, model.NewClock(10, 0))
	assert.NoError(t, store.Create(ctx, otherShop))

	_, err := store.UpdateStatus(ctx, first.ID, model.BookingStatusPending, model.BookingStatusCancelled)
	require.NoError(t, err)
	assert.NoError(t, store.Create(ctx, second))
}

func TestBookingStoreConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	date := model.Date{Year: 2026, Month: time.October, Day: 19}

	var (
		wg      sync.WaitGroup
		success atomic.Int32
		taken   atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Create(ctx, newBooking("1", date, model.NewClock(11, 30)))
			switch {
			case err == nil:
				success.Add(1)
			case err == repository.ErrSlotTaken:
				taken.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, success.Load())
	assert.EqualValues(t, 19, taken.Load())
}

func TestBookingStoreUpdateStatusCAS(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	booking := newBooking("1", model.Date{Year: 2026, Month: time.October, Day: 19}, model.NewClock(9, 0))
	require.NoError(t, store.Create(ctx, booking))

	updated, err := store.UpdateStatus(ctx, booking.ID, model.BookingStatusPending, model.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, updated.Status)

	_, err = store.UpdateStatus(ctx, booking.ID, model.BookingStatusPending, model.BookingStatusCancelled)
	assert.ErrorIs(t, err, repository.ErrStatusChanged)

	missing, err := store.UpdateStatus(ctx, "nope", model.BookingStatusPending, model.BookingStatusCancelled)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBookingStoreListPagination(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	date := model.Date{Year: 2026, Month: time.October, Day: 19}

	for _, at := range []model.Clock{model.NewClock(12, 0), model.NewClock(9, 0), model.NewClock(10, 30)} {
		require.NoError(t, store.Create(ctx, newBooking("1", date, at)))
	}

	page, err := store.List(ctx, model.BookingFilter{ShopID: "1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, model.NewClock(9, 0), page[0].Time)
	assert.Equal(t, model.NewClock(10, 30), page[1].Time)

	page, err = store.List(ctx, model.BookingFilter{ShopID: "1", Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, model.NewClock(12, 0), page[0].Time)

	page, err = store.List(ctx, model.BookingFilter{CustomerID: "someone-else"})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := NewShopStore()
	require.NoError(t, Seed(ctx, store))

	shops, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, shops, 3)

	template, err := store.Templates().GetByShopID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, template)
	require.NoError(t, template.Validate())

	sunday, ok := template.Rule(model.Sunday)
	require.True(t, ok)
	assert.False(t, sunday.Enabled)

	services, err := store.GetByShopID(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, services, 3)
}

func TestSeedBookings(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	today := model.Date{Year: 2026, Month: 10, Day: 18}
	require.NoError(t, SeedBookings(ctx, store, today))

	b1, err := store.GetByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, b1)
	assert.Equal(t, model.BookingStatusConfirmed, b1.Status)
	assert.Equal(t, today.AddDays(2), b1.Date)
	assert.Equal(t, model.NewClock(10, 0), b1.Time)

	b2, err := store.GetByID(ctx, "b2")
	require.NoError(t, err)
	require.NotNil(t, b2)
	assert.Equal(t, model.BookingStatusPending, b2.Status)
	assert.Equal(t, "2", b2.ShopID)

	mine, err := store.List(ctx, model.BookingFilter{CustomerID: DemoCustomerID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// Повторный сид упирается в занятые слоты
	assert.ErrorIs(t, SeedBookings(ctx, store, today), repository.ErrSlotTaken)
}
