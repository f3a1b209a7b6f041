package mocks

import (
	context "context"
	time "time"

	domain "github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// DashboardServiceInterface is a mock type for the DashboardServiceInterface type
type DashboardServiceInterface struct {
	mock.Mock
}

// Dashboard provides a mock function with given fields: ctx, restaurantID, loc, top
func (_m *DashboardServiceInterface) Dashboard(ctx context.Context, restaurantID string, loc *time.Location, top int) (*domain.Dashboard, error) {
	ret := _m.Called(ctx, restaurantID, loc, top)

	var r0 *domain.Dashboard
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Dashboard)
	}

	return r0, ret.Error(1)
}

// PopularItems provides a mock function with given fields: ctx, restaurantID, top
func (_m *DashboardServiceInterface) PopularItems(ctx context.Context, restaurantID string, top int) ([]domain.PopularItem, error) {
	ret := _m.Called(ctx, restaurantID, top)

	var r0 []domain.PopularItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.PopularItem)
	}

	return r0, ret.Error(1)
}

// NewDashboardServiceInterface creates a new instance of DashboardServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewDashboardServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *DashboardServiceInterface {
	m := &DashboardServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
