package mocks

import (
	context "context"

	domain "github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	service "github.com/MozaAdirafi/tabletap/order-svc/internal/service"
	mock "github.com/stretchr/testify/mock"
)

// CartServiceInterface is a mock type for the CartServiceInterface type
type CartServiceInterface struct {
	mock.Mock
}

func (_m *CartServiceInterface) view(ret mock.Arguments) (*service.CartView, error) {
	var r0 *service.CartView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.CartView)
	}
	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, sessionID
func (_m *CartServiceInterface) Get(ctx context.Context, sessionID string) (*service.CartView, error) {
	return _m.view(_m.Called(ctx, sessionID))
}

// AddItem provides a mock function with given fields: ctx, sessionID, req
func (_m *CartServiceInterface) AddItem(ctx context.Context, sessionID string, req service.AddItemRequest) (*service.CartView, error) {
	return _m.view(_m.Called(ctx, sessionID, req))
}

// SetQuantity provides a mock function with given fields: ctx, sessionID, lineKey, quantity
func (_m *CartServiceInterface) SetQuantity(ctx context.Context, sessionID string, lineKey string, quantity int) (*service.CartView, error) {
	return _m.view(_m.Called(ctx, sessionID, lineKey, quantity))
}

// RemoveItem provides a mock function with given fields: ctx, sessionID, lineKey
func (_m *CartServiceInterface) RemoveItem(ctx context.Context, sessionID string, lineKey string) (*service.CartView, error) {
	return _m.view(_m.Called(ctx, sessionID, lineKey))
}

// Clear provides a mock function with given fields: ctx, sessionID
func (_m *CartServiceInterface) Clear(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)

	return ret.Error(0)
}

// Checkout provides a mock function with given fields: ctx, sessionID, req
func (_m *CartServiceInterface) Checkout(ctx context.Context, sessionID string, req service.CheckoutRequest) (*domain.Order, error) {
	ret := _m.Called(ctx, sessionID, req)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}

	return r0, ret.Error(1)
}

// NewCartServiceInterface creates a new instance of CartServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewCartServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartServiceInterface {
	m := &CartServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
