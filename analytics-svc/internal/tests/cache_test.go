package tests

import (
	"context"
	"testing"
	"time"

	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/service"
	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*storage.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return storage.NewRedisCache(rdb), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()
	key := service.DashboardKey("rest-1", "2026-10-14", "UTC", 5)

	missing, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, missing)

	dashboard := &domain.Dashboard{
		RestaurantID:  "rest-1",
		TodaysOrders:  3,
		TodaysRevenue: dec("42.80"),
		PopularItems:  []domain.PopularItem{{MenuItemID: "item-a", Name: "Margherita", Quantity: 4}},
	}
	require.NoError(t, cache.Set(ctx, key, dashboard, service.DashboardTTL))
	assert.Equal(t, service.DashboardTTL, mr.TTL(key))

	cached, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 3, cached.TodaysOrders)
	assert.True(t, dec("42.80").Equal(cached.TodaysRevenue))
	assert.Equal(t, "Margherita", cached.PopularItems[0].Name)

	mr.FastForward(service.DashboardTTL + time.Second)
	expired, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	cache, mr := newRedisCache(t)
	require.NoError(t, mr.Set("dashboard:rest-1:x", "{not json"))

	_, err := cache.Get(context.Background(), "dashboard:rest-1:x")
	assert.Error(t, err)
}

func TestRedisCache_InvalidateOnlyTouchesOneRestaurant(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()

	for i := 1; i <= 150; i++ {
		key := service.DashboardKey("rest-1", "2026-10-14", "UTC", i%50+1) + string(rune('a'+i%26))
		require.NoError(t, mr.Set(key, "{}"))
	}
	other := service.DashboardKey("rest-10", "2026-10-14", "UTC", 5)
	require.NoError(t, mr.Set(other, "{}"))

	require.NoError(t, cache.Invalidate(ctx, "rest-1"))

	assert.Equal(t, []string{other}, mr.Keys())
}
