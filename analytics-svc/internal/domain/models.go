package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order is the analytics read model of a placed order.
type Order struct {
	ID           int64           `json:"id"`
	RestaurantID string          `json:"restaurant_id"`
	TableID      string          `json:"table_id"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Items        []OrderItem     `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
}

type OrderItem struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"category_id"`
	Quantity   int             `json:"quantity"`
}

type PopularItem struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

type RecentOrder struct {
	ID          int64           `json:"id"`
	TableID     string          `json:"table_id"`
	Status      string          `json:"status"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Dashboard struct {
	RestaurantID      string          `json:"restaurant_id"`
	Date              string          `json:"date"`
	TimeZone          string          `json:"time_zone"`
	TodaysOrders      int             `json:"todays_orders"`
	TodaysRevenue     decimal.Decimal `json:"todays_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ActiveTables      int             `json:"active_tables"`
	PopularItems      []PopularItem   `json:"popular_items"`
	RecentOrders      []RecentOrder   `json:"recent_orders"`
	GeneratedAt       time.Time       `json:"generated_at"`
}

// OrderEvent is the part of an order-svc event the cache consumer needs.
type OrderEvent struct {
	Type         string    `json:"type"`
	RestaurantID string    `json:"restaurant_id"`
	OrderID      int64     `json:"order_id"`
	Timestamp    time.Time `json:"timestamp"`
}
