package service

import (
	"context"

	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"
)

type RestaurantRepository interface {
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	UpsertRestaurant(ctx context.Context, rest *domain.Restaurant) error
}

// MenuRepository stores the menu catalog: items and their categories.
type MenuRepository interface {
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	ListItems(ctx context.Context, restaurantID, categoryID string) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, restaurantID, itemID string) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	DeleteItem(ctx context.Context, restaurantID, itemID string) error
	CountItems(ctx context.Context, restaurantID, categoryID string) (int64, error)

	CreateCategory(ctx context.Context, category *domain.MenuCategory) error
	ListCategories(ctx context.Context, restaurantID string) ([]domain.MenuCategory, error)
	GetCategory(ctx context.Context, restaurantID, categoryID string) (*domain.MenuCategory, error)
	DeleteCategory(ctx context.Context, restaurantID, categoryID string) error
}

type TableRepository interface {
	CreateTable(ctx context.Context, table *domain.Table) error
	ListTables(ctx context.Context, restaurantID string) ([]domain.Table, error)
	GetTable(ctx context.Context, restaurantID, tableID string) (*domain.Table, error)
	GetTableByNumber(ctx context.Context, restaurantID string, number int) (*domain.Table, error)
	DeleteTable(ctx context.Context, restaurantID, tableID string) error
}

type RestaurantServiceInterface interface {
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	Update(ctx context.Context, rest *domain.Restaurant) error
}

type MenuServiceInterface interface {
	Menu(ctx context.Context, restaurantID string) (*domain.Menu, error)
	ListItems(ctx context.Context, restaurantID, categoryID string) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, restaurantID, itemID string) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	DeleteItem(ctx context.Context, restaurantID, itemID string) error
	ListCategories(ctx context.Context, restaurantID string) ([]domain.MenuCategory, error)
	CreateCategory(ctx context.Context, category *domain.MenuCategory) error
	DeleteCategory(ctx context.Context, restaurantID, categoryID string) error
}

type TableServiceInterface interface {
	List(ctx context.Context, restaurantID string) ([]domain.Table, error)
	Get(ctx context.Context, restaurantID, tableID string) (*domain.Table, error)
	Create(ctx context.Context, table *domain.Table) error
	Delete(ctx context.Context, restaurantID, tableID string) error
	QRCode(ctx context.Context, restaurantID, tableID string) ([]byte, error)
	Scan(ctx context.Context, restaurantID string, number int) (*domain.ScanResult, error)
}
