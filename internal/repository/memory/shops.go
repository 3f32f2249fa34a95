package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
)

// ShopStore справочник барбершопов, каталог услуг и шаблоны расписания
type ShopStore struct {
	mu        sync.RWMutex
	shops     map[string]*model.Shop
	services  map[string][]*model.Service
	schedules map[string]*model.ScheduleTemplate
}

func NewShopStore() *ShopStore {
	return &ShopStore{
		shops:     make(map[string]*model.Shop),
		services:  make(map[string][]*model.Service),
		schedules: make(map[string]*model.ScheduleTemplate),
	}
}

func (s *ShopStore) GetByID(_ context.Context, id string) (*model.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shop, ok := s.shops[id]
	if !ok {
		return nil, nil
	}
	copied := *shop
	return &copied, nil
}

func (s *ShopStore) List(_ context.Context) ([]*model.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shops := make([]*model.Shop, 0, len(s.shops))
	for _, shop := range s.shops {
		copied := *shop
		shops = append(shops, &copied)
	}
	sort.Slice(shops, func(i, j int) bool {
		return strings.Compare(shops[i].Name, shops[j].Name) < 0
	})
	return shops, nil
}

// Upsert сохраняет профиль; владелец существующего барбершопа не меняется
func (s *ShopStore) Upsert(_ context.Context, shop *model.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.shops[shop.ID]; ok {
		shop.OwnerUserID = existing.OwnerUserID
		shop.CreatedAt = existing.CreatedAt
	} else {
		shop.CreatedAt = now
	}
	shop.UpdatedAt = now

	copied := *shop
	s.shops[shop.ID] = &copied
	return nil
}

// GetByShopID возвращает каталог услуг барбершопа
func (s *ShopStore) GetByShopID(_ context.Context, shopID string) ([]*model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]*model.Service, 0, len(s.services[shopID]))
	for _, service := range s.services[shopID] {
		copied := *service
		services = append(services, &copied)
	}
	return services, nil
}

func (s *ShopStore) ReplaceForShop(_ context.Context, shopID string, services []*model.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stored := make([]*model.Service, 0, len(services))
	for _, service := range services {
		service.ShopID = shopID
		service.CreatedAt = now
		copied := *service
		stored = append(stored, &copied)
	}
	s.services[shopID] = stored
	return nil
}

// Templates возвращает представление ShopStore как хранилища шаблонов расписания
func (s *ShopStore) Templates() *TemplateStore {
	return &TemplateStore{shops: s}
}

// TemplateStore хранилище шаблонов расписания поверх ShopStore
type TemplateStore struct {
	shops *ShopStore
}

func (t *TemplateStore) GetByShopID(_ context.Context, shopID string) (*model.ScheduleTemplate, error) {
	t.shops.mu.RLock()
	defer t.shops.mu.RUnlock()

	template, ok := t.shops.schedules[shopID]
	if !ok {
		return nil, nil
	}
	copied := *template
	copied.Days = append([]model.DayRule(nil), template.Days...)
	return &copied, nil
}

func (t *TemplateStore) Save(_ context.Context, template *model.ScheduleTemplate) error {
	t.shops.mu.Lock()
	defer t.shops.mu.Unlock()

	template.UpdatedAt = time.Now()
	copied := *template
	copied.Days = append([]model.DayRule(nil), template.Days...)
	copied.Sort()
	t.shops.schedules[template.ShopID] = &copied
	return nil
}
