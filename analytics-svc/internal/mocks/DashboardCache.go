package mocks

import (
	context "context"
	time "time"

	domain "github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// DashboardCache is a mock type for the DashboardCache type
type DashboardCache struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, key
func (_m *DashboardCache) Get(ctx context.Context, key string) (*domain.Dashboard, error) {
	ret := _m.Called(ctx, key)

	var r0 *domain.Dashboard
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Dashboard)
	}

	return r0, ret.Error(1)
}

// Set provides a mock function with given fields: ctx, key, dashboard, ttl
func (_m *DashboardCache) Set(ctx context.Context, key string, dashboard *domain.Dashboard, ttl time.Duration) error {
	ret := _m.Called(ctx, key, dashboard, ttl)

	return ret.Error(0)
}

// Invalidate provides a mock function with given fields: ctx, restaurantID
func (_m *DashboardCache) Invalidate(ctx context.Context, restaurantID string) error {
	ret := _m.Called(ctx, restaurantID)

	return ret.Error(0)
}

// NewDashboardCache creates a new instance of DashboardCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewDashboardCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *DashboardCache {
	m := &DashboardCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
