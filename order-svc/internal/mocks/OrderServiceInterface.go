package mocks

import (
	context "context"

	domain "github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	service "github.com/MozaAdirafi/tabletap/order-svc/internal/service"
	mock "github.com/stretchr/testify/mock"
)

// OrderServiceInterface is a mock type for the OrderServiceInterface type
type OrderServiceInterface struct {
	mock.Mock
}

func (_m *OrderServiceInterface) order(ret mock.Arguments) (*domain.Order, error) {
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

// Place provides a mock function with given fields: ctx, req
func (_m *OrderServiceInterface) Place(ctx context.Context, req service.PlaceOrderRequest) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, req))
}

// Get provides a mock function with given fields: ctx, restaurantID, orderID
func (_m *OrderServiceInterface) Get(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, restaurantID, orderID))
}

// List provides a mock function with given fields: ctx, restaurantID, status
func (_m *OrderServiceInterface) List(ctx context.Context, restaurantID string, status domain.Status) ([]domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, status)

	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}

	return r0, ret.Error(1)
}

// Transition provides a mock function with given fields: ctx, cmd
func (_m *OrderServiceInterface) Transition(ctx context.Context, cmd service.TransitionCommand) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, cmd))
}

// Cancel provides a mock function with given fields: ctx, restaurantID, orderID, expectedVersion
func (_m *OrderServiceInterface) Cancel(ctx context.Context, restaurantID string, orderID int64, expectedVersion int) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, restaurantID, orderID, expectedVersion))
}

// Delete provides a mock function with given fields: ctx, restaurantID, orderID
func (_m *OrderServiceInterface) Delete(ctx context.Context, restaurantID string, orderID int64) error {
	ret := _m.Called(ctx, restaurantID, orderID)

	return ret.Error(0)
}

// Track provides a mock function with given fields: ctx, restaurantID, orderID, token
func (_m *OrderServiceInterface) Track(ctx context.Context, restaurantID string, orderID int64, token string) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, restaurantID, orderID, token))
}

// CustomerCancel provides a mock function with given fields: ctx, restaurantID, orderID, token
func (_m *OrderServiceInterface) CustomerCancel(ctx context.Context, restaurantID string, orderID int64, token string) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, restaurantID, orderID, token))
}

// NewOrderServiceInterface creates a new instance of OrderServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewOrderServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
