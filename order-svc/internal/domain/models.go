package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line of a placed order. Name and price are copied from the
// menu at placement time so later menu edits do not change past orders.
type OrderItem struct {
	MenuItemID          string          `json:"menu_item_id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	CategoryID          string          `json:"category_id,omitempty"`
	Quantity            int             `json:"quantity"`
	SelectedSize        string          `json:"selected_size,omitempty"`
	SelectedOptions     []string        `json:"selected_options,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

type Order struct {
	ID              int64           `json:"id"`
	RestaurantID    string          `json:"restaurant_id"`
	TableID         string          `json:"table_id"`
	Items           []OrderItem     `json:"items"`
	Status          Status          `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Tip             decimal.Decimal `json:"tip"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	Version         int             `json:"version"`
	AccessToken     string          `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Clone returns a deep copy safe to hand to another goroutine.
func (o Order) Clone() Order {
	clone := o
	clone.Items = make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		clone.Items[i] = item
		if item.SelectedOptions != nil {
			clone.Items[i].SelectedOptions = append([]string(nil), item.SelectedOptions...)
		}
	}
	return clone
}

// CatalogItem is the trusted menu view used to price an order line.
type CatalogItem struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"category_id"`
	Available  bool            `json:"available"`
}

type TableRef struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
}
