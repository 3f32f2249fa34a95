package repository_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/app"
	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository"
	"github.com/Freeeeeet/barber_booking/migrations"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testDSNEnv строка подключения к тестовой базе; без неё тесты Postgres пропускаются
const testDSNEnv = "BARBER_TEST_DB_DSN"

// far дата, на которую не попадают демо-бронирования
var far = model.Date{Year: 2030, Month: 1, Day: 7}

// newTestPool поднимает отдельную схему, применяет миграции и удаляет схему по завершении теста
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", testDSNEnv)
	}
	ctx := context.Background()

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(admin.Close)

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA %s`, schema))
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), fmt.Sprintf(`DROP SCHEMA %s CASCADE`, schema))
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := app.NewMigrator(pool, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = migrator.Close() })
	require.NoError(t, migrator.Run(ctx))

	return pool
}

func newPendingBooking(at model.Clock) *model.Booking {
	return &model.Booking{
		ID:              uuid.NewString(),
		ShopID:          "1",
		CustomerID:      "customer1",
		ServiceName:     "Haircut",
		Price:           3500,
		DurationMinutes: 30,
		Date:            far,
		Time:            at,
		Status:          model.BookingStatusPending,
	}
}

func TestBookingRepositoryActiveSlotIndex(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingRepository(newTestPool(t))

	first := newPendingBooking(model.NewClock(10, 0))
	require.NoError(t, repo.Create(ctx, first))
	assert.False(t, first.CreatedAt.IsZero())

	err := repo.Create(ctx, newPendingBooking(model.NewClock(10, 0)))
	assert.ErrorIs(t, err, repository.ErrSlotTaken)

	// Отмена освобождает слот
	cancelled, err := repo.UpdateStatus(ctx, first.ID, model.BookingStatusPending, model.BookingStatusCancelled)
	require.NoError(t, err)
	require.NotNil(t, cancelled)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)

	require.NoError(t, repo.Create(ctx, newPendingBooking(model.NewClock(10, 0))))

	active, err := repo.ListActiveOnDate(ctx, "1", far)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, model.NewClock(10, 0), active[0].Time)
}

func TestBookingRepositoryConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingRepository(newTestPool(t))

	const attempts = 10
	var (
		wg      sync.WaitGroup
		created atomic.Int32
		taken   atomic.Int32
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, newPendingBooking(model.NewClock(11, 30)))
			switch {
			case err == nil:
				created.Add(1)
			case assert.ErrorIs(t, err, repository.ErrSlotTaken):
				taken.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(attempts-1), taken.Load())
}

func TestBookingRepositoryUpdateStatusCAS(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingRepository(newTestPool(t))

	booking := newPendingBooking(model.NewClock(12, 0))
	require.NoError(t, repo.Create(ctx, booking))

	updated, err := repo.UpdateStatus(ctx, booking.ID, model.BookingStatusConfirmed, model.BookingStatusCompleted)
	assert.ErrorIs(t, err, repository.ErrStatusChanged)
	assert.Nil(t, updated)

	stored, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, stored.Status)

	missing, err := repo.UpdateStatus(ctx, "missing", model.BookingStatusPending, model.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBookingRepositoryDemoBookings(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingRepository(newTestPool(t))

	b1, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, b1)
	assert.Equal(t, model.BookingStatusConfirmed, b1.Status)

	mine, err := repo.List(ctx, model.BookingFilter{CustomerID: "customer1"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestScheduleRepositorySaveSetsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewScheduleRepository(newTestPool(t), zap.NewNop())

	template, err := repo.GetByShopID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, template)
	template.UpdatedAt = time.Time{}

	require.NoError(t, repo.Save(ctx, template))
	assert.False(t, template.UpdatedAt.IsZero())

	reloaded, err := repo.GetByShopID(ctx, "1")
	require.NoError(t, err)
	assert.True(t, template.UpdatedAt.Equal(reloaded.UpdatedAt))
	assert.Equal(t, template.Days, reloaded.Days)
}
