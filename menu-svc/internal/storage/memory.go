package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"
)

// MemoryRepository is a process-local store for development and tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	restaurants map[string]domain.Restaurant
	items       map[string]domain.MenuItem
	categories  map[string]domain.MenuCategory
	tables      map[string]domain.Table
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		restaurants: make(map[string]domain.Restaurant),
		items:       make(map[string]domain.MenuItem),
		categories:  make(map[string]domain.MenuCategory),
		tables:      make(map[string]domain.Table),
	}
}

func cloneItem(item domain.MenuItem) domain.MenuItem {
	item.Tags = append([]string{}, item.Tags...)
	return item
}

func (m *MemoryRepository) GetRestaurant(_ context.Context, id string) (*domain.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rest, ok := m.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return &rest, nil
}

func (m *MemoryRepository) UpsertRestaurant(_ context.Context, rest *domain.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restaurants[rest.ID] = *rest
	return nil
}

func (m *MemoryRepository) CreateItem(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = cloneItem(*item)
	return nil
}

func (m *MemoryRepository) ListItems(_ context.Context, restaurantID, categoryID string) ([]domain.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := []domain.MenuItem{}
	for _, item := range m.items {
		if item.RestaurantID == restaurantID && (categoryID == "" || item.CategoryID == categoryID) {
			items = append(items, cloneItem(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (m *MemoryRepository) GetItem(_ context.Context, restaurantID, itemID string) (*domain.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[itemID]
	if !ok || item.RestaurantID != restaurantID {
		return nil, domain.ErrItemNotFound
	}
	item = cloneItem(item)
	return &item, nil
}

func (m *MemoryRepository) UpdateItem(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[item.ID]
	if !ok || existing.RestaurantID != item.RestaurantID {
		return domain.ErrItemNotFound
	}
	item.CreatedAt = existing.CreatedAt
	m.items[item.ID] = cloneItem(*item)
	return nil
}

func (m *MemoryRepository) DeleteItem(_ context.Context, restaurantID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok || item.RestaurantID != restaurantID {
		return domain.ErrItemNotFound
	}
	delete(m.items, itemID)
	return nil
}

func (m *MemoryRepository) CountItems(_ context.Context, restaurantID, categoryID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, item := range m.items {
		if item.RestaurantID == restaurantID && item.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (m *MemoryRepository) CreateCategory(_ context.Context, category *domain.MenuCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := categoryKey(category.RestaurantID, category.ID)
	if _, ok := m.categories[key]; ok {
		return domain.ErrCategoryExists
	}
	m.categories[key] = *category
	return nil
}

func (m *MemoryRepository) ListCategories(_ context.Context, restaurantID string) ([]domain.MenuCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	categories := []domain.MenuCategory{}
	for _, category := range m.categories {
		if category.RestaurantID == restaurantID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].CreatedAt.Equal(categories[j].CreatedAt) {
			return categories[i].CreatedAt.Before(categories[j].CreatedAt)
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

func (m *MemoryRepository) GetCategory(_ context.Context, restaurantID, categoryID string) (*domain.MenuCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	category, ok := m.categories[categoryKey(restaurantID, categoryID)]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &category, nil
}

func (m *MemoryRepository) DeleteCategory(_ context.Context, restaurantID, categoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := categoryKey(restaurantID, categoryID)
	if _, ok := m.categories[key]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, key)
	return nil
}

func (m *MemoryRepository) CreateTable(_ context.Context, table *domain.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.tables {
		if existing.RestaurantID == table.RestaurantID && existing.Number == table.Number {
			return domain.ErrTableExists
		}
	}
	m.tables[table.ID] = *table
	return nil
}

func (m *MemoryRepository) ListTables(_ context.Context, restaurantID string) ([]domain.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tables := []domain.Table{}
	for _, table := range m.tables {
		if table.RestaurantID == restaurantID {
			tables = append(tables, table)
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Number < tables[j].Number })
	return tables, nil
}

func (m *MemoryRepository) GetTable(_ context.Context, restaurantID, tableID string) (*domain.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	table, ok := m.tables[tableID]
	if !ok || table.RestaurantID != restaurantID {
		return nil, domain.ErrTableNotFound
	}
	return &table, nil
}

func (m *MemoryRepository) GetTableByNumber(_ context.Context, restaurantID string, number int) (*domain.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, table := range m.tables {
		if table.RestaurantID == restaurantID && table.Number == number {
			return &table, nil
		}
	}
	return nil, domain.ErrTableNotFound
}

func (m *MemoryRepository) DeleteTable(_ context.Context, restaurantID, tableID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, ok := m.tables[tableID]
	if !ok || table.RestaurantID != restaurantID {
		return domain.ErrTableNotFound
	}
	delete(m.tables, tableID)
	return nil
}
