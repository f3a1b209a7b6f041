package mocks

import (
	context "context"

	domain "github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	decimal "github.com/shopspring/decimal"
	mock "github.com/stretchr/testify/mock"
)

// Catalog is a mock type for the Catalog type
type Catalog struct {
	mock.Mock
}

// MenuItem provides a mock function with given fields: ctx, restaurantID, itemID
func (_m *Catalog) MenuItem(ctx context.Context, restaurantID string, itemID string) (*domain.CatalogItem, error) {
	ret := _m.Called(ctx, restaurantID, itemID)

	var r0 *domain.CatalogItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.CatalogItem)
	}

	return r0, ret.Error(1)
}

// Table provides a mock function with given fields: ctx, restaurantID, tableID
func (_m *Catalog) Table(ctx context.Context, restaurantID string, tableID string) (*domain.TableRef, error) {
	ret := _m.Called(ctx, restaurantID, tableID)

	var r0 *domain.TableRef
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.TableRef)
	}

	return r0, ret.Error(1)
}

// TaxRate provides a mock function with given fields: ctx, restaurantID
func (_m *Catalog) TaxRate(ctx context.Context, restaurantID string) (decimal.Decimal, error) {
	ret := _m.Called(ctx, restaurantID)

	return ret.Get(0).(decimal.Decimal), ret.Error(1)
}

// NewCatalog creates a new instance of Catalog. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewCatalog(t interface {
	mock.TestingT
	Cleanup(func())
}) *Catalog {
	m := &Catalog{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
