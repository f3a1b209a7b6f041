package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"sync"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/cart"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const sessionLockCount = 64

type AddItemRequest struct {
	RestaurantID        string   `json:"restaurant_id"`
	MenuItemID          string   `json:"menu_item_id"`
	Quantity            int      `json:"quantity"`
	SelectedSize        string   `json:"selected_size,omitempty"`
	SelectedOptions     []string `json:"selected_options,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

type CheckoutRequest struct {
	RestaurantID    string           `json:"restaurant_id"`
	TableID         string           `json:"table_id"`
	TipPercent      *decimal.Decimal `json:"tip_percent,omitempty"`
	TipAmount       *decimal.Decimal `json:"tip_amount,omitempty"`
	SpecialRequests string           `json:"special_requests,omitempty"`
}

type CartView struct {
	SessionID    string          `json:"session_id"`
	RestaurantID string          `json:"restaurant_id,omitempty"`
	KeyPolicy    cart.KeyPolicy  `json:"key_policy"`
	Lines        []cart.Line     `json:"lines"`
	ItemCount    int             `json:"item_count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

func newCartView(sessionID string, c *cart.Cart) *CartView {
	view := &CartView{
		SessionID:    sessionID,
		RestaurantID: c.RestaurantID(),
		KeyPolicy:    c.Policy(),
		Lines:        c.Lines(),
		Subtotal:     c.Subtotal(),
	}
	for _, line := range view.Lines {
		view.ItemCount += line.Quantity
	}
	return view
}

// CartService owns session carts. Requests for one session are applied one
// at a time in arrival order.
type CartService struct {
	storage cart.Storage
	catalog Catalog
	orders  OrderServiceInterface
	policy  cart.KeyPolicy
	locks   [sessionLockCount]sync.Mutex
}

func NewCartService(storage cart.Storage, catalog Catalog, orders OrderServiceInterface, policy cart.KeyPolicy) *CartService {
	return &CartService{
		storage: storage,
		catalog: catalog,
		orders:  orders,
		policy:  policy,
	}
}

func (s *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	return s.withCart(ctx, sessionID, func(*cart.Cart) error { return nil })
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartView, error) {
	if strings.TrimSpace(req.RestaurantID) == "" {
		return nil, ErrMissingContext
	}
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.catalog.MenuItem(ctx, req.RestaurantID, req.MenuItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
	}

	return s.withCart(ctx, sessionID, func(c *cart.Cart) error {
		_, err := c.AddOrUpdate(ctx, req.RestaurantID,
			cart.Item{ID: item.ID, Name: item.Name, Price: item.Price, CategoryID: item.CategoryID},
			req.Quantity,
			cart.Customization{Size: req.SelectedSize, Options: req.SelectedOptions, Instructions: req.SpecialInstructions})
		return err
	})
}

func (s *CartService) SetQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (*CartView, error) {
	return s.withCart(ctx, sessionID, func(c *cart.Cart) error {
		return c.SetQuantity(ctx, lineKey, quantity)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, lineKey string) (*CartView, error) {
	return s.withCart(ctx, sessionID, func(c *cart.Cart) error {
		return c.Remove(ctx, lineKey)
	})
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	_, err := s.withCart(ctx, sessionID, func(c *cart.Cart) error {
		return c.Clear(ctx)
	})
	return err
}

// Checkout turns the session cart into a placed order and empties the cart.
// Cart prices are only a display snapshot; the order is re-priced from the
// catalog.
func (s *CartService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*domain.Order, error) {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c, err := cart.Load(ctx, s.storage, sessionID, s.policy)
	if err != nil {
		return nil, err
	}
	if req.RestaurantID == "" || req.TableID == "" {
		return nil, ErrMissingContext
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}
	if c.RestaurantID() != "" && c.RestaurantID() != req.RestaurantID {
		return nil, cart.ErrRestaurantMismatch
	}

	items := make([]PlaceItem, 0, len(c.Lines()))
	for _, line := range c.Lines() {
		items = append(items, PlaceItem{
			MenuItemID:          line.ItemID,
			Quantity:            line.Quantity,
			SelectedSize:        line.SelectedSize,
			SelectedOptions:     line.SelectedOptions,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	order, err := s.orders.Place(ctx, PlaceOrderRequest{
		RestaurantID:    req.RestaurantID,
		TableID:         req.TableID,
		Items:           items,
		TipPercent:      req.TipPercent,
		TipAmount:       req.TipAmount,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return nil, err
	}

	if err := c.Clear(ctx); err != nil {
		log.Printf("[CART] order %d placed but clearing cart %s failed: %v", order.ID, sessionID, err)
	}
	return order, nil
}

func (s *CartService) withCart(ctx context.Context, sessionID string, mutate func(*cart.Cart) error) (*CartView, error) {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c, err := cart.Load(ctx, s.storage, sessionID, s.policy)
	if err != nil {
		return nil, err
	}
	if err := mutate(c); err != nil {
		return nil, err
	}
	return newCartView(sessionID, c), nil
}

func (s *CartService) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%sessionLockCount]
}
