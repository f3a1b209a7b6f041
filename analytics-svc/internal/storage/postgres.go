package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"
)

const queryTimeout = 5 * time.Second

// PostgresReader reads the orders tables maintained by order-svc.
type PostgresReader struct {
	DB *sql.DB
}

func NewPostgresReader(db *sql.DB) *PostgresReader {
	return &PostgresReader{DB: db}
}

func (r *PostgresReader) ListOrders(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, table_id, status, total_amount, created_at
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY created_at DESC, id DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := make(map[int64]int)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.TableID, &order.Status, &order.TotalAmount, &order.CreatedAt); err != nil {
			return nil, err
		}
		index[order.ID] = len(orders)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.DB.QueryContext(ctx, `
		SELECT oi.order_id, oi.menu_item_id, oi.name, oi.price, oi.category_id, oi.quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.restaurant_id = $1
		ORDER BY oi.order_id, oi.position`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int64
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.MenuItemID, &item.Name, &item.Price, &item.CategoryID, &item.Quantity); err != nil {
			return nil, err
		}
		// an order placed between the two queries has no header row yet
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}
