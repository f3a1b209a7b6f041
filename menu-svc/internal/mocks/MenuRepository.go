package mocks

import (
	context "context"

	domain "github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MenuRepository is a mock type for the MenuRepository type
type MenuRepository struct {
	mock.Mock
}

// CreateItem provides a mock function with given fields: ctx, item
func (_m *MenuRepository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)

	return ret.Error(0)
}

// ListItems provides a mock function with given fields: ctx, restaurantID, categoryID
func (_m *MenuRepository) ListItems(ctx context.Context, restaurantID string, categoryID string) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, restaurantID, categoryID)

	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}

	return r0, ret.Error(1)
}

// GetItem provides a mock function with given fields: ctx, restaurantID, itemID
func (_m *MenuRepository) GetItem(ctx context.Context, restaurantID string, itemID string) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, restaurantID, itemID)

	var r0 *domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuItem)
	}

	return r0, ret.Error(1)
}

// UpdateItem provides a mock function with given fields: ctx, item
func (_m *MenuRepository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)

	return ret.Error(0)
}

// DeleteItem provides a mock function with given fields: ctx, restaurantID, itemID
func (_m *MenuRepository) DeleteItem(ctx context.Context, restaurantID string, itemID string) error {
	ret := _m.Called(ctx, restaurantID, itemID)

	return ret.Error(0)
}

// CountItems provides a mock function with given fields: ctx, restaurantID, categoryID
func (_m *MenuRepository) CountItems(ctx context.Context, restaurantID string, categoryID string) (int64, error) {
	ret := _m.Called(ctx, restaurantID, categoryID)

	var r0 int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(int64)
	}

	return r0, ret.Error(1)
}

// CreateCategory provides a mock function with given fields: ctx, category
func (_m *MenuRepository) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	ret := _m.Called(ctx, category)

	return ret.Error(0)
}

// ListCategories provides a mock function with given fields: ctx, restaurantID
func (_m *MenuRepository) ListCategories(ctx context.Context, restaurantID string) ([]domain.MenuCategory, error) {
	ret := _m.Called(ctx, restaurantID)

	var r0 []domain.MenuCategory
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuCategory)
	}

	return r0, ret.Error(1)
}

// GetCategory provides a mock function with given fields: ctx, restaurantID, categoryID
func (_m *MenuRepository) GetCategory(ctx context.Context, restaurantID string, categoryID string) (*domain.MenuCategory, error) {
	ret := _m.Called(ctx, restaurantID, categoryID)

	var r0 *domain.MenuCategory
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuCategory)
	}

	return r0, ret.Error(1)
}

// DeleteCategory provides a mock function with given fields: ctx, restaurantID, categoryID
func (_m *MenuRepository) DeleteCategory(ctx context.Context, restaurantID string, categoryID string) error {
	ret := _m.Called(ctx, restaurantID, categoryID)

	return ret.Error(0)
}

// NewMenuRepository creates a new instance of MenuRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMenuRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
