package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRedis реализует только команды, которые использует кэш
type fakeRedis struct {
	redis.Cmdable

	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
	down bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

var errRedisDown = errors.New("dial tcp: connection refused")

func (r *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return redis.NewStringResult("", errRedisDown)
	}
	v, ok := r.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (r *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return redis.NewStatusResult("", errRedisDown)
	}
	r.data[key] = string(value.([]byte))
	r.ttl[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (r *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return redis.NewIntResult(0, errRedisDown)
	}
	var n int64
	for _, key := range keys {
		if _, ok := r.data[key]; ok {
			delete(r.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type countingStore struct {
	mu        sync.Mutex
	templates map[string]*model.ScheduleTemplate
	reads     int
}

func (s *countingStore) GetByShopID(_ context.Context, shopID string) (*model.ScheduleTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	t, ok := s.templates[shopID]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (s *countingStore) Save(_ context.Context, template *model.ScheduleTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *template
	s.templates[template.ShopID] = &copied
	return nil
}

func template(shopID string, openAt, closeAt model.Clock) *model.ScheduleTemplate {
	t := &model.ScheduleTemplate{ShopID: shopID}
	for _, day := range model.Weekdays() {
		t.Days = append(t.Days, model.DayRule{Weekday: day, Enabled: true, OpenTime: openAt, CloseTime: closeAt})
	}
	return t
}

func TestTemplateCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{templates: map[string]*model.ScheduleTemplate{
		"1": template("1", model.NewClock(9, 0), model.NewClock(18, 0)),
	}}
	client := newFakeRedis()
	cache := NewTemplateCache(store, client, time.Minute, zap.NewNop())

	first, err := cache.GetByShopID(ctx, "1")
	require.NoError(t, err)
	second, err := cache.GetByShopID(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, first.Days, second.Days)
	assert.Equal(t, 1, store.reads)
	assert.Equal(t, time.Minute, client.ttl["schedule_template:1"])
}

func TestTemplateCacheDoesNotCacheMissing(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{templates: map[string]*model.ScheduleTemplate{}}
	cache := NewTemplateCache(store, newFakeRedis(), 0, zap.NewNop())

	for i := 0; i < 2; i++ {
		got, err := cache.GetByShopID(ctx, "42")
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.Equal(t, 2, store.reads)
}

func TestTemplateCacheInvalidatesOnSave(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{templates: map[string]*model.ScheduleTemplate{
		"1": template("1", model.NewClock(9, 0), model.NewClock(18, 0)),
	}}
	cache := NewTemplateCache(store, newFakeRedis(), time.Minute, zap.NewNop())

	_, err := cache.GetByShopID(ctx, "1")
	require.NoError(t, err)

	require.NoError(t, cache.Save(ctx, template("1", model.NewClock(10, 0), model.NewClock(12, 0))))

	got, err := cache.GetByShopID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, model.NewClock(10, 0), got.Days[0].OpenTime)
	assert.Equal(t, 2, store.reads)
}

func TestTemplateCacheFallsThroughWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{templates: map[string]*model.ScheduleTemplate{
		"1": template("1", model.NewClock(9, 0), model.NewClock(18, 0)),
	}}
	client := newFakeRedis()
	client.down = true
	cache := NewTemplateCache(store, client, time.Minute, zap.NewNop())

	got, err := cache.GetByShopID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NoError(t, cache.Save(ctx, template("1", model.NewClock(8, 0), model.NewClock(9, 0))))
}
