package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
)

// MemoryRepository keeps orders in process memory. It satisfies the same
// contract as PostgresRepository, including version checks.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]map[int64]domain.Order
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[string]map[int64]domain.Order)}
}

func (r *MemoryRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	if r.orders[order.RestaurantID] == nil {
		r.orders[order.RestaurantID] = make(map[int64]domain.Order)
	}
	r.orders[order.RestaurantID][order.ID] = order.Clone()
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, restaurantID string, orderID int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[restaurantID][orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := order.Clone()
	return &clone, nil
}

func (r *MemoryRepository) List(_ context.Context, restaurantID string, status domain.Status) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []domain.Order
	for _, order := range r.orders[restaurantID] {
		if status != "" && order.Status != status {
			continue
		}
		orders = append(orders, order.Clone())
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, restaurantID string, orderID int64, status domain.Status, expectedVersion int, at time.Time) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[restaurantID][orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if order.Version != expectedVersion {
		return nil, domain.ErrStaleVersion
	}
	order.Status = status
	order.Version++
	order.UpdatedAt = at
	r.orders[restaurantID][orderID] = order

	clone := order.Clone()
	return &clone, nil
}

func (r *MemoryRepository) Delete(_ context.Context, restaurantID string, orderID int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[restaurantID][orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	delete(r.orders[restaurantID], orderID)
	return &order, nil
}
