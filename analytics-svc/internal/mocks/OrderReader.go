package mocks

import (
	context "context"

	domain "github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// OrderReader is a mock type for the OrderReader type
type OrderReader struct {
	mock.Mock
}

// ListOrders provides a mock function with given fields: ctx, restaurantID
func (_m *OrderReader) ListOrders(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	ret := _m.Called(ctx, restaurantID)

	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}

	return r0, ret.Error(1)
}

// NewOrderReader creates a new instance of OrderReader. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewOrderReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderReader {
	m := &OrderReader{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
