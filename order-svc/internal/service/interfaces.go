package service

import (
	"context"
	"time"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type OrderServiceInterface interface {
	Place(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error)
	List(ctx context.Context, restaurantID string, status domain.Status) ([]domain.Order, error)
	Transition(ctx context.Context, cmd TransitionCommand) (*domain.Order, error)
	Cancel(ctx context.Context, restaurantID string, orderID int64, expectedVersion int) (*domain.Order, error)
	Delete(ctx context.Context, restaurantID string, orderID int64) error
	Track(ctx context.Context, restaurantID string, orderID int64, token string) (*domain.Order, error)
	CustomerCancel(ctx context.Context, restaurantID string, orderID int64, token string) (*domain.Order, error)
}

type CartServiceInterface interface {
	Get(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartView, error)
	SetQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, lineKey string) (*CartView, error)
	Clear(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*domain.Order, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error)
	List(ctx context.Context, restaurantID string, status domain.Status) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, restaurantID string, orderID int64, status domain.Status, expectedVersion int, at time.Time) (*domain.Order, error)
	Delete(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// Catalog is the trusted source of menu prices, tables and tax rates.
type Catalog interface {
	MenuItem(ctx context.Context, restaurantID, itemID string) (*domain.CatalogItem, error)
	Table(ctx context.Context, restaurantID, tableID string) (*domain.TableRef, error)
	TaxRate(ctx context.Context, restaurantID string) (decimal.Decimal, error)
}

var (
	_ OrderServiceInterface = (*OrderService)(nil)
	_ CartServiceInterface  = (*CartService)(nil)
	_ Catalog               = (*MenuCatalog)(nil)
)
