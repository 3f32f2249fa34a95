package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shopColumns = `id, owner_user_id, name, location, phone, about, created_at, updated_at`

type ShopRepository struct {
	*base.Repository
}

func NewShopRepository(pool *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{Repository: base.NewRepository(pool)}
}

func scanShop(row rowScanner) (*model.Shop, error) {
	var shop model.Shop
	err := row.Scan(
		&shop.ID,
		&shop.OwnerUserID,
		&shop.Name,
		&shop.Location,
		&shop.Phone,
		&shop.About,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// GetByID получает барбершоп по ID
func (r *ShopRepository) GetByID(ctx context.Context, id string) (*model.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = $1`

	shop, err := scanShop(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Барбершоп не найден
		}
		return nil, fmt.Errorf("get shop by id: %w", err)
	}

	return shop, nil
}

// List получает все барбершопы
func (r *ShopRepository) List(ctx context.Context) ([]*model.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops ORDER BY name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	var shops []*model.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		shops = append(shops, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}

	return shops, nil
}

// Upsert создаёт или обновляет профиль барбершопа
func (r *ShopRepository) Upsert(ctx context.Context, shop *model.Shop) error {
	query := `
		INSERT INTO shops (id, owner_user_id, name, location, phone, about)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    location = EXCLUDED.location,
		    phone = EXCLUDED.phone,
		    about = EXCLUDED.about,
		    updated_at = now()
		RETURNING owner_user_id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		shop.ID,
		shop.OwnerUserID,
		shop.Name,
		shop.Location,
		shop.Phone,
		shop.About,
	).Scan(&shop.OwnerUserID, &shop.CreatedAt, &shop.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert shop: %w", err)
	}

	return nil
}
