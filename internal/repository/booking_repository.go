package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, shop_id, customer_id, service_name, price, duration_minutes, booking_date, slot_minute, status, created_at, updated_at`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		booking    model.Booking
		date       time.Time
		slotMinute int
	)
	err := row.Scan(
		&booking.ID,
		&booking.ShopID,
		&booking.CustomerID,
		&booking.ServiceName,
		&booking.Price,
		&booking.DurationMinutes,
		&date,
		&slotMinute,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	booking.Date = model.DateOf(date)
	booking.Time = model.Clock(slotMinute)
	return &booking, nil
}

// Create создаёт новое бронирование.
// Вставка защищена частичным уникальным индексом bookings_active_slot_uq:
// если слот уже занят активной записью, возвращается ErrSlotTaken.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (id, shop_id, customer_id, service_name, price, duration_minutes, booking_date, slot_minute, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.ID,
		booking.ShopID,
		booking.CustomerID,
		booking.ServiceName,
		booking.Price,
		booking.DurationMinutes,
		booking.Date.Time(),
		int(booking.Time),
		booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// ListActiveOnDate получает активные (не отменённые) бронирования барбершопа на дату
func (r *BookingRepository) ListActiveOnDate(ctx context.Context, shopID string, date model.Date) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE shop_id = $1 AND booking_date = $2 AND status <> 'cancelled'
		ORDER BY slot_minute
	`

	return r.list(ctx, "list active bookings", query, shopID, date.Time())
}

// List получает бронирования по фильтру с пагинацией
func (r *BookingRepository) List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	filter = filter.Normalize()

	var (
		conditions []string
		args       []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.CustomerID != "" {
		add("customer_id = $%d", filter.CustomerID)
	}
	if filter.ShopID != "" {
		add("shop_id = $%d", filter.ShopID)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Date != nil {
		add("booking_date = $%d", filter.Date.Time())
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY booking_date, slot_minute, created_at LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return r.list(ctx, "list bookings", query, args...)
}

// ListByStatusThrough получает бронирования в статусе status с датой не позже through
func (r *BookingRepository) ListByStatusThrough(ctx context.Context, status model.BookingStatus, through model.Date) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1 AND booking_date <= $2
		ORDER BY booking_date, slot_minute
	`

	return r.list(ctx, "list bookings by status", query, status, through.Time())
}

// UpdateStatus меняет статус с from на to (compare-and-swap).
// Возвращает nil, nil если бронирования нет, ErrStatusChanged если статус уже не from.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.QueryRow(ctx, query, to, id, from))
	if err == nil {
		return booking, nil
	}
	if !base.IsNotFound(err) {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	// Ни одна строка не обновилась: либо записи нет, либо статус уже другой
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	return nil, ErrStatusChanged
}

func (r *BookingRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Booking, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}
