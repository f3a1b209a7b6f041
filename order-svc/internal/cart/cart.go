package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrRestaurantMismatch = errors.New("cart already holds items from another restaurant")
	ErrInvalidKeyPolicy   = errors.New("unknown cart key policy")
)

// Storage is durable key/value string storage for carts. Get reports
// ok=false for an absent key.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// KeyPolicy decides when two additions of the same menu item share a line.
type KeyPolicy string

const (
	// KeyByItem keeps one line per menu item. A later addition replaces the
	// earlier one, customizations included.
	KeyByItem KeyPolicy = "item"
	// KeyByVariant keeps one line per menu item, size and option set.
	KeyByVariant KeyPolicy = "variant"
)

func ParseKeyPolicy(raw string) (KeyPolicy, error) {
	switch KeyPolicy(raw) {
	case "", KeyByItem:
		return KeyByItem, nil
	case KeyByVariant:
		return KeyByVariant, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKeyPolicy, raw)
}

type Item struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	CategoryID string
}

type Customization struct {
	Size         string
	Options      []string
	Instructions string
}

type Line struct {
	Key                 string          `json:"key"`
	ItemID              string          `json:"item_id"`
	Name                string          `json:"name"`
	CategoryID          string          `json:"category_id,omitempty"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Quantity            int             `json:"quantity"`
	SelectedSize        string          `json:"selected_size,omitempty"`
	SelectedOptions     []string        `json:"selected_options,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type state struct {
	RestaurantID string `json:"restaurant_id,omitempty"`
	Lines        []Line `json:"lines"`
}

// Cart is one session's in-progress selection. Every mutation writes the
// full line set back to Storage. A Cart is not safe for concurrent use.
type Cart struct {
	storage Storage
	key     string
	policy  KeyPolicy
	state   state
}

// Load reads the cart stored under key. Missing or unreadable data yields an
// empty cart; only storage failures are returned.
func Load(ctx context.Context, storage Storage, key string, policy KeyPolicy) (*Cart, error) {
	c := &Cart{storage: storage, key: key, policy: policy}

	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !ok || raw == "" {
		return c, nil
	}

	var stored state
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Printf("[CART] discarding unreadable cart %s: %v", key, err)
		return c, nil
	}
	for _, line := range stored.Lines {
		if line.ItemID == "" || line.Quantity < 1 {
			continue
		}
		if line.Key == "" {
			line.Key = lineKey(policy, line.ItemID, line.SelectedSize, line.SelectedOptions)
		}
		c.state.Lines = append(c.state.Lines, line)
	}
	if len(c.state.Lines) > 0 {
		c.state.RestaurantID = stored.RestaurantID
	}
	return c, nil
}

func (c *Cart) RestaurantID() string { return c.state.RestaurantID }

func (c *Cart) Policy() KeyPolicy { return c.policy }

func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.state.Lines))
	copy(lines, c.state.Lines)
	return lines
}

func (c *Cart) Empty() bool { return len(c.state.Lines) == 0 }

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c.state.Lines {
		sum = sum.Add(line.Total())
	}
	return sum
}

// AddOrUpdate inserts a line or overwrites the line with the same key.
func (c *Cart) AddOrUpdate(ctx context.Context, restaurantID string, item Item, quantity int, custom Customization) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}
	if c.state.RestaurantID != "" && !c.Empty() && c.state.RestaurantID != restaurantID {
		return Line{}, ErrRestaurantMismatch
	}

	options := normalizeOptions(custom.Options)
	line := Line{
		Key:                 lineKey(c.policy, item.ID, custom.Size, options),
		ItemID:              item.ID,
		Name:                item.Name,
		CategoryID:          item.CategoryID,
		UnitPrice:           item.Price,
		Quantity:            quantity,
		SelectedSize:        custom.Size,
		SelectedOptions:     options,
		SpecialInstructions: custom.Instructions,
	}

	if i := c.index(line.Key); i >= 0 {
		c.state.Lines[i] = line
	} else {
		c.state.Lines = append(c.state.Lines, line)
	}
	c.state.RestaurantID = restaurantID
	return line, c.save(ctx)
}

// SetQuantity updates a line in place. Quantities below 1 remove the line.
func (c *Cart) SetQuantity(ctx context.Context, key string, quantity int) error {
	i := c.index(key)
	if i < 0 {
		return nil
	}
	if quantity < 1 {
		return c.Remove(ctx, key)
	}
	c.state.Lines[i].Quantity = quantity
	return c.save(ctx)
}

func (c *Cart) Remove(ctx context.Context, key string) error {
	i := c.index(key)
	if i < 0 {
		return nil
	}
	c.state.Lines = append(c.state.Lines[:i], c.state.Lines[i+1:]...)
	return c.save(ctx)
}

func (c *Cart) Clear(ctx context.Context) error {
	c.state = state{}
	return c.storage.Delete(ctx, c.key)
}

func (c *Cart) index(key string) int {
	for i, line := range c.state.Lines {
		if line.Key == key {
			return i
		}
	}
	return -1
}

func (c *Cart) save(ctx context.Context) error {
	if c.Empty() {
		c.state = state{}
		return c.storage.Delete(ctx, c.key)
	}
	payload, err := json.Marshal(c.state)
	if err != nil {
		return err
	}
	return c.storage.Set(ctx, c.key, string(payload))
}

func lineKey(policy KeyPolicy, itemID, size string, options []string) string {
	if policy != KeyByVariant {
		return itemID
	}
	return itemID + "|" + size + "|" + strings.Join(normalizeOptions(options), ",")
}

func normalizeOptions(options []string) []string {
	if len(options) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(options))
	normalized := make([]string, 0, len(options))
	for _, option := range options {
		option = strings.TrimSpace(option)
		if option == "" || seen[option] {
			continue
		}
		seen[option] = true
		normalized = append(normalized, option)
	}
	sort.Strings(normalized)
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
