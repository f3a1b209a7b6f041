package mocks

import (
	context "context"
	time "time"

	domain "github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// OrderRepository is a mock type for the OrderRepository type
type OrderRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, order
func (_m *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Order) error); ok {
		r0 = rf(ctx, order)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Get provides a mock function with given fields: ctx, restaurantID, orderID
func (_m *OrderRepository) Get(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, orderID)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, restaurantID, status
func (_m *OrderRepository) List(ctx context.Context, restaurantID string, status domain.Status) ([]domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, status)

	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}

	return r0, ret.Error(1)
}

// UpdateStatus provides a mock function with given fields: ctx, restaurantID, orderID, status, expectedVersion, at
func (_m *OrderRepository) UpdateStatus(ctx context.Context, restaurantID string, orderID int64, status domain.Status, expectedVersion int, at time.Time) (*domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, orderID, status, expectedVersion, at)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}

	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, restaurantID, orderID
func (_m *OrderRepository) Delete(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, orderID)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}

	return r0, ret.Error(1)
}

// NewOrderRepository creates a new instance of OrderRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
