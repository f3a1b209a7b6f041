package mocks

import (
	context "context"

	domain "github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// RestaurantRepository is a mock type for the RestaurantRepository type
type RestaurantRepository struct {
	mock.Mock
}

// GetRestaurant provides a mock function with given fields: ctx, id
func (_m *RestaurantRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}

	return r0, ret.Error(1)
}

// UpsertRestaurant provides a mock function with given fields: ctx, rest
func (_m *RestaurantRepository) UpsertRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	ret := _m.Called(ctx, rest)

	return ret.Error(0)
}

// NewRestaurantRepository creates a new instance of RestaurantRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewRestaurantRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
