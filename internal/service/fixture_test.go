package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Воскресенье 18.10.2026, полдень
var fixedNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

var (
	sunday   = model.Date{Year: 2026, Month: time.October, Day: 18}
	monday   = model.Date{Year: 2026, Month: time.October, Day: 19}
	saturday = model.Date{Year: 2026, Month: time.October, Day: 24}
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []model.BookingEvent
}

func (n *recordingNotifier) Notify(_ context.Context, event model.BookingEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) types() []model.BookingEventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]model.BookingEventType, 0, len(n.events))
	for _, e := range n.events {
		types = append(types, e.Type)
	}
	return types
}

type fixture struct {
	bookingStore *memory.BookingStore
	shopStore    *memory.ShopStore
	notifier     *recordingNotifier

	slots    *SlotService
	bookings *BookingService
	queries  *QueryService
	shops    *ShopService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zap.NewNop()
	bookingStore := memory.NewBookingStore()
	shopStore := memory.NewShopStore()
	require.NoError(t, memory.Seed(context.Background(), shopStore))

	return newFixtureWith(t, bookingStore, shopStore, logger)
}

func newFixtureWith(t *testing.T, bookingStore BookingStore, shopStore *memory.ShopStore, logger *zap.Logger) *fixture {
	t.Helper()

	notifier := &recordingNotifier{}
	templates := shopStore.Templates()

	slots := NewSlotService(templates, bookingStore, logger)
	bookings := NewBookingService(bookingStore, slots, shopStore, notifier, time.UTC, logger)
	bookings.now = func() time.Time { return fixedNow }

	f := &fixture{
		shopStore: shopStore,
		notifier:  notifier,
		slots:     slots,
		bookings:  bookings,
		queries:   NewQueryService(bookings, shopStore, logger),
		shops:     NewShopService(shopStore, shopStore, templates, logger),
	}
	if store, ok := bookingStore.(*memory.BookingStore); ok {
		f.bookingStore = store
	}
	return f
}

func (f *fixture) book(t *testing.T, shopID string, date model.Date, at string) *model.Booking {
	t.Helper()

	booking, err := f.bookings.CreateBooking(context.Background(), CreateBookingRequest{
		ShopID:      shopID,
		CustomerID:  "customer1",
		ServiceName: "Haircut",
		Date:        date.String(),
		Time:        at,
	})
	require.NoError(t, err)
	return booking
}

func clocks(t *testing.T, values ...string) []model.Clock {
	t.Helper()

	result := make([]model.Clock, 0, len(values))
	for _, v := range values {
		c, err := model.ParseClock(v)
		require.NoError(t, err)
		result = append(result, c)
	}
	return result
}
