package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CatalogRepository хранит каталог услуг барбершопов
type CatalogRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewCatalogRepository(pool *pgxpool.Pool, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// GetByShopID получает все услуги барбершопа в порядке добавления
func (r *CatalogRepository) GetByShopID(ctx context.Context, shopID string) ([]*model.Service, error) {
	query := `
		SELECT id, shop_id, name, description, price, duration_minutes, created_at
		FROM services
		WHERE shop_id = $1
		ORDER BY position, name
	`

	rows, err := r.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("get services by shop: %w", err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		var service model.Service
		err := rows.Scan(
			&service.ID,
			&service.ShopID,
			&service.Name,
			&service.Description,
			&service.Price,
			&service.DurationMinutes,
			&service.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, &service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get services by shop: %w", err)
	}

	return services, nil
}

// ReplaceForShop заменяет каталог барбершопа целиком
func (r *CatalogRepository) ReplaceForShop(ctx context.Context, shopID string, services []*model.Service) error {
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM services WHERE shop_id = $1`, shopID); err != nil {
			return fmt.Errorf("delete services: %w", err)
		}

		for i, service := range services {
			err := tx.QueryRow(ctx, `
				INSERT INTO services (id, shop_id, name, description, price, duration_minutes, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING created_at
			`,
				service.ID,
				shopID,
				service.Name,
				service.Description,
				service.Price,
				service.DurationMinutes,
				i,
			).Scan(&service.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert service %q: %w", service.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to replace services",
			zap.String("shop_id", shopID),
			zap.Error(err))
		return fmt.Errorf("replace services: %w", err)
	}

	r.logger.Info("Services replaced",
		zap.String("shop_id", shopID),
		zap.Int("count", len(services)))

	return nil
}
