// Package notify доставляет события об изменении бронирований подписчикам.
// Доставка best-effort: ошибки отдельных получателей не влияют на бронирование.
package notify

import (
	"context"
	"sync"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"go.uber.org/zap"
)

// DefaultSubscriberBuffer размер буфера канала подписчика
const DefaultSubscriberBuffer = 16

// Broker in-process рассылка событий подписчикам (SSE, бот).
// Медленный подписчик теряет события, публикация никогда не блокируется.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]chan model.BookingEvent
	nextID int
	buffer int
	logger *zap.Logger
}

func NewBroker(buffer int, logger *zap.Logger) *Broker {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Broker{
		subs:   make(map[int]chan model.BookingEvent),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe регистрирует подписчика. Вызов cancel закрывает канал.
func (b *Broker) Subscribe() (<-chan model.BookingEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan model.BookingEvent, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers количество активных подписчиков
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Broker) Notify(_ context.Context, event model.BookingEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("Subscriber is too slow, event dropped",
				zap.Int("subscriber", id),
				zap.String("event", string(event.Type)),
				zap.String("booking_id", event.Booking.ID),
			)
		}
	}
	return nil
}
