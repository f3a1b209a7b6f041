package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is applied to restaurants that never saved their settings.
var DefaultTaxRate = decimal.NewFromInt(7)

type Restaurant struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Description string          `json:"description,omitempty"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DisplayName falls back to a short form of the principal id when the
// restaurant has no name yet.
func (r Restaurant) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	short := r.ID
	if len(short) > 6 {
		short = short[:6]
	}
	return "Restaurant " + short
}

type MenuItem struct {
	ID           string          `json:"id"`
	RestaurantID string          `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   string          `json:"category_id"`
	Tags         []string        `json:"tags"`
	Available    bool            `json:"available"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type MenuCategory struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Table struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Number       int       `json:"number"`
	CreatedAt    time.Time `json:"created_at"`
}

// MenuSection is one category of the customer-facing menu.
type MenuSection struct {
	Category MenuCategory `json:"category"`
	Items    []MenuItem   `json:"items"`
}

type Menu struct {
	RestaurantID   string        `json:"restaurant_id"`
	RestaurantName string        `json:"restaurant_name"`
	Sections       []MenuSection `json:"sections"`
}

// ScanResult is what a customer learns from a valid table QR code.
type ScanResult struct {
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	TableID        string `json:"table_id"`
	TableNumber    int    `json:"table_number"`
}
