package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BookingCompleter завершает бронирования, слот которых уже прошёл
type BookingCompleter interface {
	CompleteDueBookings(ctx context.Context) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	completer BookingCompleter
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewScheduler создаёт новый планировщик. interval <= 0 отключает автозавершение.
func NewScheduler(completer BookingCompleter, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		completer: completer,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Auto-completion disabled")
		return
	}

	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.runAutoCompleteTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runAutoCompleteTask периодически завершает подтверждённые бронирования
func (s *Scheduler) runAutoCompleteTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.completeBookings(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.completeBookings(ctx)
		case <-s.stopChan:
			s.logger.Info("Auto-completion task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Auto-completion task cancelled")
			return
		}
	}
}

func (s *Scheduler) completeBookings(ctx context.Context) {
	completed, err := s.completer.CompleteDueBookings(ctx)
	if err != nil {
		s.logger.Error("Failed to auto-complete bookings", zap.Error(err))
		return
	}

	if completed > 0 {
		s.logger.Info("Bookings auto-completed", zap.Int("count", completed))
	}
}
