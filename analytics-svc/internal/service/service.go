package service

import (
	"context"
	"time"

	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"
)

// OrderReader loads every order of a restaurant, newest first.
type OrderReader interface {
	ListOrders(ctx context.Context, restaurantID string) ([]domain.Order, error)
}

// DashboardCache returns (nil, nil) on a miss.
type DashboardCache interface {
	Get(ctx context.Context, key string) (*domain.Dashboard, error)
	Set(ctx context.Context, key string, dashboard *domain.Dashboard, ttl time.Duration) error
	Invalidate(ctx context.Context, restaurantID string) error
}

type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, restaurantID string, loc *time.Location, top int) (*domain.Dashboard, error)
	PopularItems(ctx context.Context, restaurantID string, top int) ([]domain.PopularItem, error)
}
