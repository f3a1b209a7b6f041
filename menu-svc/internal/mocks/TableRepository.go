package mocks

import (
	context "context"

	domain "github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// TableRepository is a mock type for the TableRepository type
type TableRepository struct {
	mock.Mock
}

// CreateTable provides a mock function with given fields: ctx, table
func (_m *TableRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	ret := _m.Called(ctx, table)

	return ret.Error(0)
}

// ListTables provides a mock function with given fields: ctx, restaurantID
func (_m *TableRepository) ListTables(ctx context.Context, restaurantID string) ([]domain.Table, error) {
	ret := _m.Called(ctx, restaurantID)

	var r0 []domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Table)
	}

	return r0, ret.Error(1)
}

// GetTable provides a mock function with given fields: ctx, restaurantID, tableID
func (_m *TableRepository) GetTable(ctx context.Context, restaurantID string, tableID string) (*domain.Table, error) {
	ret := _m.Called(ctx, restaurantID, tableID)

	var r0 *domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Table)
	}

	return r0, ret.Error(1)
}

// GetTableByNumber provides a mock function with given fields: ctx, restaurantID, number
func (_m *TableRepository) GetTableByNumber(ctx context.Context, restaurantID string, number int) (*domain.Table, error) {
	ret := _m.Called(ctx, restaurantID, number)

	var r0 *domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Table)
	}

	return r0, ret.Error(1)
}

// DeleteTable provides a mock function with given fields: ctx, restaurantID, tableID
func (_m *TableRepository) DeleteTable(ctx context.Context, restaurantID string, tableID string) error {
	ret := _m.Called(ctx, restaurantID, tableID)

	return ret.Error(0)
}

// NewTableRepository creates a new instance of TableRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTableRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *TableRepository {
	m := &TableRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
