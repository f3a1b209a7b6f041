package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/aggregate"
	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"
)

const (
	DashboardTTL      = 30 * time.Second
	RecentOrdersLimit = 3
)

type DashboardService struct {
	reader OrderReader
	cache  DashboardCache
	now    func() time.Time
}

func NewDashboardService(reader OrderReader, cache DashboardCache) *DashboardService {
	return &DashboardService{reader: reader, cache: cache, now: time.Now}
}

// WithClock replaces the service clock.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

func DashboardKey(restaurantID, date, tz string, top int) string {
	return fmt.Sprintf("dashboard:%s:%s:%s:%d", restaurantID, date, tz, top)
}

// Dashboard serves from the cache when it can. Cache failures are logged
// and the dashboard is computed from storage.
func (s *DashboardService) Dashboard(ctx context.Context, restaurantID string, loc *time.Location, top int) (*domain.Dashboard, error) {
	now := s.now()
	key := DashboardKey(restaurantID, now.In(loc).Format("2006-01-02"), loc.String(), top)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Printf("[CACHE] read %s: %v", key, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	orders, err := s.reader.ListOrders(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	today := aggregate.TodaysOrders(orders, now, loc)
	dashboard := &domain.Dashboard{
		RestaurantID:      restaurantID,
		Date:              now.In(loc).Format("2006-01-02"),
		TimeZone:          loc.String(),
		TodaysOrders:      len(today),
		TodaysRevenue:     aggregate.TodaysRevenue(orders, now, loc),
		AverageOrderValue: aggregate.AverageOrderValue(orders, now, loc),
		ActiveTables:      aggregate.ActiveTables(orders),
		PopularItems:      aggregate.PopularItems(orders, top),
		RecentOrders:      aggregate.RecentOrders(orders, RecentOrdersLimit),
		GeneratedAt:       now.UTC(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, dashboard, DashboardTTL); err != nil {
			log.Printf("[CACHE] write %s: %v", key, err)
		}
	}
	return dashboard, nil
}

func (s *DashboardService) PopularItems(ctx context.Context, restaurantID string, top int) ([]domain.PopularItem, error) {
	orders, err := s.reader.ListOrders(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return aggregate.PopularItems(orders, top), nil
}

var _ DashboardServiceInterface = (*DashboardService)(nil)
