package tests

import (
	"context"
	"testing"
	"time"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/livesync"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/service"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// stubCatalog is a fixed menu for one restaurant.
type stubCatalog struct {
	restaurantID string
	items        map[string]domain.CatalogItem
	tables       map[string]domain.TableRef
	taxRate      decimal.Decimal
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		restaurantID: "rest-1",
		items: map[string]domain.CatalogItem{
			"item-a":  {ID: "item-a", Name: "Margherita", Price: decimal.RequireFromString("10.00"), CategoryID: "pizza", Available: true},
			"item-b":  {ID: "item-b", Name: "Lemonade", Price: decimal.RequireFromString("5.00"), CategoryID: "drinks", Available: true},
			"item-86": {ID: "item-86", Name: "Truffle Fries", Price: decimal.RequireFromString("8.00"), CategoryID: "sides", Available: false},
		},
		tables: map[string]domain.TableRef{
			"table-1": {ID: "table-1", Number: 1},
			"table-2": {ID: "table-2", Number: 2},
		},
		taxRate: decimal.NewFromInt(7),
	}
}

func (c *stubCatalog) MenuItem(_ context.Context, restaurantID, itemID string) (*domain.CatalogItem, error) {
	item, ok := c.items[itemID]
	if !ok || restaurantID != c.restaurantID {
		return nil, service.ErrItemUnavailable
	}
	return &item, nil
}

func (c *stubCatalog) Table(_ context.Context, restaurantID, tableID string) (*domain.TableRef, error) {
	table, ok := c.tables[tableID]
	if !ok || restaurantID != c.restaurantID {
		return nil, service.ErrTableNotFound
	}
	return &table, nil
}

func (c *stubCatalog) TaxRate(context.Context, string) (decimal.Decimal, error) {
	return c.taxRate, nil
}

type liveStack struct {
	repo   *storage.MemoryRepository
	broker *livesync.Broker
	orders *service.OrderService
}

func newLiveStack(t *testing.T) *liveStack {
	t.Helper()
	repo := storage.NewMemoryRepository()
	broker := livesync.NewBroker(repo)
	t.Cleanup(broker.Close)
	return &liveStack{
		repo:   repo,
		broker: broker,
		orders: service.NewOrderService(repo, newStubCatalog(), livesync.NewLocalPublisher(broker)),
	}
}

func (s *liveStack) place(t *testing.T, tableID string) *domain.Order {
	t.Helper()
	order, err := s.orders.Place(context.Background(), service.PlaceOrderRequest{
		RestaurantID: "rest-1",
		TableID:      tableID,
		Items:        []service.PlaceItem{{MenuItemID: "item-a", Quantity: 1}},
	})
	require.NoError(t, err)
	return order
}

func (s *liveStack) move(t *testing.T, order *domain.Order, target domain.Status) *domain.Order {
	t.Helper()
	updated, err := s.orders.Transition(context.Background(), service.TransitionCommand{
		RestaurantID:    order.RestaurantID,
		OrderID:         order.ID,
		Target:          target,
		ExpectedVersion: order.Version,
		Actor:           domain.ActorStaff,
	})
	require.NoError(t, err)
	return updated
}

type recorder struct {
	updates chan livesync.Update
}

func newRecorder() *recorder {
	return &recorder{updates: make(chan livesync.Update, 256)}
}

func (r *recorder) onChange(update livesync.Update) {
	r.updates <- update
}

func (r *recorder) next(t *testing.T) livesync.Update {
	t.Helper()
	select {
	case update := <-r.updates:
		return update
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for live update")
		return livesync.Update{}
	}
}

func (r *recorder) assertQuiet(t *testing.T) {
	t.Helper()
	select {
	case update := <-r.updates:
		t.Fatalf("unexpected live update: %+v", update)
	case <-time.After(100 * time.Millisecond):
	}
}

func subscribe(t *testing.T, broker *livesync.Broker, scope livesync.Scope) *recorder {
	t.Helper()
	rec := newRecorder()
	cancel, err := broker.Subscribe(context.Background(), scope, rec.onChange)
	require.NoError(t, err)
	t.Cleanup(cancel)
	return rec
}
