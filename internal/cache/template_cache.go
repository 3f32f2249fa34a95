// Package cache кэширует шаблоны расписания в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "schedule_template:"

// DefaultTTL время жизни закэшированного шаблона
const DefaultTTL = 10 * time.Minute

// TemplateStore источник шаблонов, который оборачивает кэш
type TemplateStore interface {
	GetByShopID(ctx context.Context, shopID string) (*model.ScheduleTemplate, error)
	Save(ctx context.Context, template *model.ScheduleTemplate) error
}

// TemplateCache read-through кэш шаблонов.
// При недоступности Redis запросы идут напрямую в хранилище.
type TemplateCache struct {
	next   TemplateStore
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

func NewTemplateCache(next TemplateStore, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *TemplateCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TemplateCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func templateKey(shopID string) string {
	return keyPrefix + shopID
}

func (c *TemplateCache) GetByShopID(ctx context.Context, shopID string) (*model.ScheduleTemplate, error) {
	key := templateKey(shopID)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var template model.ScheduleTemplate
		if err := json.Unmarshal(data, &template); err == nil {
			return &template, nil
		}
		c.logger.Warn("Corrupted template in cache", zap.String("shop_id", shopID))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Template cache read failed", zap.String("shop_id", shopID), zap.Error(err))
	}

	template, err := c.next.GetByShopID(ctx, shopID)
	if err != nil || template == nil {
		return template, err
	}

	if data, err := json.Marshal(template); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Template cache write failed", zap.String("shop_id", shopID), zap.Error(err))
		}
	}

	return template, nil
}

// Save сохраняет шаблон и сбрасывает его из кэша
func (c *TemplateCache) Save(ctx context.Context, template *model.ScheduleTemplate) error {
	if err := c.next.Save(ctx, template); err != nil {
		return err
	}

	if err := c.client.Del(ctx, templateKey(template.ShopID)).Err(); err != nil {
		c.logger.Warn("Template cache invalidation failed",
			zap.String("shop_id", template.ShopID),
			zap.Error(err),
		)
	}
	return nil
}
