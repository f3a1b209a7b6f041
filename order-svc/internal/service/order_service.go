package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	publishTimeout = 5 * time.Second
	orderLockCount = 64
)

type PlaceItem struct {
	MenuItemID          string   `json:"menu_item_id"`
	Quantity            int      `json:"quantity"`
	SelectedSize        string   `json:"selected_size,omitempty"`
	SelectedOptions     []string `json:"selected_options,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

// PlaceOrderRequest carries what the customer chose. Prices and totals are
// never taken from the request.
type PlaceOrderRequest struct {
	RestaurantID    string           `json:"restaurant_id"`
	TableID         string           `json:"table_id"`
	Items           []PlaceItem      `json:"items"`
	TipPercent      *decimal.Decimal `json:"tip_percent,omitempty"`
	TipAmount       *decimal.Decimal `json:"tip_amount,omitempty"`
	SpecialRequests string           `json:"special_requests,omitempty"`
}

func (r PlaceOrderRequest) tipSpec() pricing.TipSpec {
	switch {
	case r.TipAmount != nil:
		return pricing.TipAmount(*r.TipAmount)
	case r.TipPercent != nil:
		return pricing.TipPercent(*r.TipPercent)
	}
	return pricing.TipPercent(pricing.DefaultTipPercent)
}

type TransitionCommand struct {
	RestaurantID    string
	OrderID         int64
	Target          domain.Status
	ExpectedVersion int
	Actor           domain.Actor
}

type OrderService struct {
	repository OrderRepository
	catalog    Catalog
	publisher  EventPublisher
	now        func() time.Time
	locks      [orderLockCount]sync.Mutex
}

func NewOrderService(repository OrderRepository, catalog Catalog, publisher EventPublisher) *OrderService {
	return &OrderService{
		repository: repository,
		catalog:    catalog,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *OrderService) Place(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	req.RestaurantID = strings.TrimSpace(req.RestaurantID)
	req.TableID = strings.TrimSpace(req.TableID)
	if req.RestaurantID == "" || req.TableID == "" {
		return nil, ErrMissingContext
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if _, err := s.catalog.Table(ctx, req.RestaurantID, req.TableID); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, line.MenuItemID)
		}
		item, err := s.catalog.MenuItem(ctx, req.RestaurantID, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !item.Available {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
		}
		items = append(items, domain.OrderItem{
			MenuItemID:          item.ID,
			Name:                item.Name,
			Price:               item.Price,
			CategoryID:          item.CategoryID,
			Quantity:            line.Quantity,
			SelectedSize:        line.SelectedSize,
			SelectedOptions:     line.SelectedOptions,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	taxRate, err := s.catalog.TaxRate(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	quote, err := pricing.NewQuote(items, taxRate, req.tipSpec())
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &domain.Order{
		RestaurantID:    req.RestaurantID,
		TableID:         req.TableID,
		Items:           items,
		Status:          domain.StatusPending,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Version:         1,
		AccessToken:     uuid.NewString(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	quote.Apply(order)

	if err := s.repository.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	log.Printf("[ORDER] placed order %d for restaurant %s table %s total=%s",
		order.ID, order.RestaurantID, order.TableID, order.TotalAmount.StringFixed(2))

	s.publish(ctx, domain.NewOrderEvent(domain.EventOrderCreated, *order, now))
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error) {
	return s.repository.Get(ctx, restaurantID, orderID)
}

func (s *OrderService) List(ctx context.Context, restaurantID string, status domain.Status) ([]domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.repository.List(ctx, restaurantID, status)
}

// Transition moves an order to cmd.Target. A non-zero ExpectedVersion must
// match the stored version. The write itself is conditional on the version
// read here, so a concurrent writer makes it fail with ErrStaleVersion.
func (s *OrderService) Transition(ctx context.Context, cmd TransitionCommand) (*domain.Order, error) {
	if !cmd.Target.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, cmd.Target)
	}

	lock := s.lockFor(cmd.OrderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := s.repository.Get(ctx, cmd.RestaurantID, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if cmd.ExpectedVersion != 0 && cmd.ExpectedVersion != order.Version {
		return nil, domain.ErrStaleVersion
	}
	if err := domain.ValidateTransition(order.Status, cmd.Target, cmd.Actor); err != nil {
		return nil, err
	}

	now := s.now()
	updated, err := s.repository.UpdateStatus(ctx, cmd.RestaurantID, cmd.OrderID, cmd.Target, order.Version, now)
	if err != nil {
		return nil, err
	}
	log.Printf("[ORDER] order %d %s -> %s by %s (v%d)", updated.ID, order.Status, updated.Status, cmd.Actor, updated.Version)

	s.publish(ctx, domain.NewOrderEvent(domain.EventOrderUpdated, *updated, now))
	return updated, nil
}

func (s *OrderService) Cancel(ctx context.Context, restaurantID string, orderID int64, expectedVersion int) (*domain.Order, error) {
	return s.Transition(ctx, TransitionCommand{
		RestaurantID:    restaurantID,
		OrderID:         orderID,
		Target:          domain.StatusCancelled,
		ExpectedVersion: expectedVersion,
		Actor:           domain.ActorStaff,
	})
}

func (s *OrderService) Delete(ctx context.Context, restaurantID string, orderID int64) error {
	lock := s.lockFor(orderID)
	lock.Lock()
	defer lock.Unlock()

	deleted, err := s.repository.Delete(ctx, restaurantID, orderID)
	if err != nil {
		return err
	}
	log.Printf("[ORDER] deleted order %d for restaurant %s", orderID, restaurantID)

	s.publish(ctx, domain.NewOrderEvent(domain.EventOrderDeleted, *deleted, s.now()))
	return nil
}

// Track returns the order to the customer holding its capability token.
func (s *OrderService) Track(ctx context.Context, restaurantID string, orderID int64, token string) (*domain.Order, error) {
	order, err := s.repository.Get(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(order.AccessToken)) != 1 {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) CustomerCancel(ctx context.Context, restaurantID string, orderID int64, token string) (*domain.Order, error) {
	order, err := s.Track(ctx, restaurantID, orderID, token)
	if err != nil {
		return nil, err
	}
	return s.Transition(ctx, TransitionCommand{
		RestaurantID:    restaurantID,
		OrderID:         orderID,
		Target:          domain.StatusCancelled,
		ExpectedVersion: order.Version,
		Actor:           domain.ActorCustomer,
	})
}

// Writes and their events for one order are serialized so events leave this
// process in commit order.
func (s *OrderService) lockFor(orderID int64) *sync.Mutex {
	index := orderID % orderLockCount
	if index < 0 {
		index = -index
	}
	return &s.locks[index]
}

// Publish failures are logged, not returned: the write is already committed
// and live views reconcile on their next snapshot.
func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("[ORDER] publish %s for order %d failed: %v", event.Type, event.OrderID, err)
	}
}
