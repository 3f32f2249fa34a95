package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShopService профили барбершопов, каталог услуг и шаблоны расписания
type ShopService struct {
	shops     ShopDirectory
	catalog   ServiceCatalog
	templates TemplateStore
	logger    *zap.Logger
}

func NewShopService(shops ShopDirectory, catalog ServiceCatalog, templates TemplateStore, logger *zap.Logger) *ShopService {
	return &ShopService{
		shops:     shops,
		catalog:   catalog,
		templates: templates,
		logger:    logger,
	}
}

// GetShop получает барбершоп по ID
func (s *ShopService) GetShop(ctx context.Context, shopID string) (*model.Shop, error) {
	shop, err := s.shops.GetByID(ctx, strings.TrimSpace(shopID))
	if err != nil {
		return nil, unavailable("get shop", err)
	}
	if shop == nil {
		return nil, notFound("shop %s", shopID)
	}
	return shop, nil
}

// ListShops получает все барбершопы
func (s *ShopService) ListShops(ctx context.Context) ([]*model.Shop, error) {
	shops, err := s.shops.List(ctx)
	if err != nil {
		return nil, unavailable("list shops", err)
	}
	if shops == nil {
		shops = []*model.Shop{}
	}
	return shops, nil
}

// SaveShop создаёт или обновляет профиль барбершопа.
// Владелец существующего барбершопа не меняется.
func (s *ShopService) SaveShop(ctx context.Context, shop *model.Shop) (*model.Shop, error) {
	shop.ID = strings.TrimSpace(shop.ID)
	shop.Name = strings.TrimSpace(shop.Name)

	if err := model.ValidateID("shop_id", shop.ID); err != nil {
		return nil, invalidRequest("%v", err)
	}
	if shop.Name == "" {
		return nil, invalidRequest("name is required")
	}
	if strings.TrimSpace(shop.OwnerUserID) == "" {
		return nil, invalidRequest("owner_user_id is required")
	}

	if err := s.shops.Upsert(ctx, shop); err != nil {
		return nil, unavailable("save shop", err)
	}

	s.logger.Info("Shop saved",
		zap.String("shop_id", shop.ID),
		zap.String("owner_user_id", shop.OwnerUserID),
		zap.String("name", shop.Name),
	)

	return shop, nil
}

// GetServices получает каталог услуг барбершопа
func (s *ShopService) GetServices(ctx context.Context, shopID string) ([]*model.Service, error) {
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return nil, invalidRequest("shop_id is required")
	}

	services, err := s.catalog.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, unavailable("get services", err)
	}
	if services == nil {
		services = []*model.Service{}
	}
	return services, nil
}

// ReplaceServices целиком заменяет каталог услуг барбершопа.
// Пустые ID генерируются, названия уникальны без учёта регистра.
func (s *ShopService) ReplaceServices(ctx context.Context, shopID string, services []*model.Service) ([]*model.Service, error) {
	if _, err := s.GetShop(ctx, shopID); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(services))
	for i, service := range services {
		if service == nil {
			return nil, invalidRequest("service #%d is empty", i+1)
		}
		service.Name = strings.TrimSpace(service.Name)
		switch {
		case service.Name == "":
			return nil, invalidRequest("service #%d: name is required", i+1)
		case service.Price < 0:
			return nil, invalidRequest("service %q: price must not be negative", service.Name)
		case service.DurationMinutes <= 0:
			return nil, invalidRequest("service %q: duration_minutes must be positive", service.Name)
		}

		key := strings.ToLower(service.Name)
		if seen[key] {
			return nil, invalidRequest("duplicate service name %q", service.Name)
		}
		seen[key] = true

		service.ID = strings.TrimSpace(service.ID)
		if service.ID == "" {
			service.ID = uuid.NewString()
		} else if err := model.ValidateID("service_id", service.ID); err != nil {
			return nil, invalidRequest("service %q: %v", service.Name, err)
		}
		service.ShopID = shopID
	}

	if err := s.catalog.ReplaceForShop(ctx, shopID, services); err != nil {
		return nil, unavailable("replace services", err)
	}

	s.logger.Info("Services replaced",
		zap.String("shop_id", shopID),
		zap.Int("count", len(services)),
	)

	return services, nil
}

// GetScheduleTemplate получает недельный шаблон расписания
func (s *ShopService) GetScheduleTemplate(ctx context.Context, shopID string) (*model.ScheduleTemplate, error) {
	template, err := s.templates.GetByShopID(ctx, strings.TrimSpace(shopID))
	if err != nil {
		return nil, unavailable("get schedule template", err)
	}
	if template == nil {
		return nil, notFound("schedule for shop %s", shopID)
	}
	return template, nil
}

// SaveScheduleTemplate проверяет и сохраняет недельный шаблон расписания
func (s *ShopService) SaveScheduleTemplate(ctx context.Context, template *model.ScheduleTemplate) (*model.ScheduleTemplate, error) {
	if err := template.Validate(); err != nil {
		return nil, invalidRequest("%v", err)
	}
	if _, err := s.GetShop(ctx, template.ShopID); err != nil {
		return nil, err
	}

	template.Sort()
	if err := s.templates.Save(ctx, template); err != nil {
		return nil, unavailable("save schedule template", err)
	}

	s.logger.Info("Schedule template saved", zap.String("shop_id", template.ShopID))

	return template, nil
}
