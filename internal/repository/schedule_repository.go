package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ScheduleRepository управляет недельными шаблонами расписания барбершопов
type ScheduleRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewScheduleRepository создаёт новый репозиторий
func NewScheduleRepository(pool *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// GetByShopID получает шаблон расписания барбершопа.
// Возвращает nil, nil если расписание не настроено.
func (r *ScheduleRepository) GetByShopID(ctx context.Context, shopID string) (*model.ScheduleTemplate, error) {
	query := `
		SELECT weekday, enabled, open_minute, close_minute, updated_at
		FROM schedule_days
		WHERE shop_id = $1
	`

	rows, err := r.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("get schedule by shop: %w", err)
	}
	defer rows.Close()

	template := &model.ScheduleTemplate{ShopID: shopID}
	for rows.Next() {
		var (
			rule                    model.DayRule
			openMinute, closeMinute int
			updatedAt               time.Time
		)
		if err := rows.Scan(&rule.Weekday, &rule.Enabled, &openMinute, &closeMinute, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule day: %w", err)
		}
		rule.OpenTime = model.Clock(openMinute)
		rule.CloseTime = model.Clock(closeMinute)
		if updatedAt.After(template.UpdatedAt) {
			template.UpdatedAt = updatedAt
		}
		template.Days = append(template.Days, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get schedule by shop: %w", err)
	}

	if len(template.Days) == 0 {
		return nil, nil
	}

	template.Sort()
	return template, nil
}

// Save заменяет шаблон расписания барбершопа целиком (все 7 дней в одной транзакции)
func (r *ScheduleRepository) Save(ctx context.Context, template *model.ScheduleTemplate) error {
	var updatedAt time.Time
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		// now() внутри транзакции одинаков для всех строк
		if err := tx.QueryRow(ctx, `SELECT now()`).Scan(&updatedAt); err != nil {
			return fmt.Errorf("get transaction time: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM schedule_days WHERE shop_id = $1`, template.ShopID); err != nil {
			return fmt.Errorf("delete schedule days: %w", err)
		}

		batch := &pgx.Batch{}
		for _, rule := range template.Days {
			batch.Queue(`
				INSERT INTO schedule_days (shop_id, weekday, enabled, open_minute, close_minute, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, template.ShopID, rule.Weekday, rule.Enabled, int(rule.OpenTime), int(rule.CloseTime), updatedAt)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert schedule days: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	template.UpdatedAt = updatedAt

	r.logger.Debug("Schedule template saved",
		zap.String("shop_id", template.ShopID),
		zap.Int("days", len(template.Days)),
	)

	return nil
}
