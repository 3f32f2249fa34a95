package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingCompleter struct {
	calls atomic.Int32
	err   error
}

func (c *countingCompleter) CompleteDueBookings(context.Context) (int, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestSchedulerRunsImmediatelyAndOnTicks(t *testing.T) {
	completer := &countingCompleter{}
	scheduler := NewScheduler(completer, 10*time.Millisecond, zap.NewNop())

	scheduler.Start(context.Background())
	assert.Eventually(t, func() bool { return completer.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	scheduler.Stop()
	scheduler.Stop()

	calls := completer.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, completer.calls.Load())
}

func TestSchedulerKeepsRunningAfterErrors(t *testing.T) {
	completer := &countingCompleter{err: errors.New("storage unavailable")}
	scheduler := NewScheduler(completer, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx)
	assert.Eventually(t, func() bool { return completer.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	scheduler.Stop()
}

func TestSchedulerDisabled(t *testing.T) {
	completer := &countingCompleter{}
	scheduler := NewScheduler(completer, 0, zap.NewNop())

	scheduler.Start(context.Background())
	scheduler.Stop()

	assert.Zero(t, completer.calls.Load())
}

func TestNewLoggerLevels(t *testing.T) {
	logger := NewLogger("production", "warn")
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	dev := NewLogger("development", "")
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))
}
