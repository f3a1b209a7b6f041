package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"

	"github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

const orderColumns = `id, restaurant_id, table_id, status, subtotal, tax, tip, total_amount,
	special_requests, version, access_token, created_at, updated_at`

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status string
	if err := row.Scan(&order.ID, &order.RestaurantID, &order.TableID, &status,
		&order.Subtotal, &order.Tax, &order.Tip, &order.TotalAmount,
		&order.SpecialRequests, &order.Version, &order.AccessToken, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	order.Status = domain.Status(status)
	return &order, nil
}

func (r *PostgresRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (restaurant_id, table_id, status, subtotal, tax, tip, total_amount,
			special_requests, version, access_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, order.RestaurantID, order.TableID, string(order.Status), order.Subtotal, order.Tax, order.Tip, order.TotalAmount,
		order.SpecialRequests, order.Version, order.AccessToken, order.CreatedAt, order.UpdatedAt).Scan(&order.ID); err != nil {
		return err
	}

	for i, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, menu_item_id, name, price, category_id, quantity,
				selected_size, selected_options, special_instructions)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, order.ID, i, item.MenuItemID, item.Name, item.Price, item.CategoryID, item.Quantity,
			item.SelectedSize, pq.Array(nonNilOptions(item.SelectedOptions)), item.SpecialInstructions); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) Get(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE restaurant_id = $1 AND id = $2", restaurantID, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *PostgresRepository) List(ctx context.Context, restaurantID string, status domain.Status) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id DESC`, restaurantID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// UpdateStatus writes the new status only if the stored version still equals
// expectedVersion, and bumps the version.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, restaurantID string, orderID int64, status domain.Status, expectedVersion int, at time.Time) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, version = version + 1, updated_at = $2
		WHERE restaurant_id = $3 AND id = $4 AND version = $5
		RETURNING `+orderColumns,
		string(status), at, restaurantID, orderID, expectedVersion))
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM orders WHERE restaurant_id = $1 AND id = $2)", restaurantID, orderID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.ErrStaleVersion
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		"DELETE FROM orders WHERE restaurant_id = $1 AND id = $2 RETURNING "+orderColumns, restaurantID, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, menu_item_id, name, price, category_id, quantity,
			selected_size, selected_options, special_instructions
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID int64
		var item domain.OrderItem
		var options []string
		if err := rows.Scan(&orderID, &item.MenuItemID, &item.Name, &item.Price, &item.CategoryID, &item.Quantity,
			&item.SelectedSize, pq.Array(&options), &item.SpecialInstructions); err != nil {
			return nil, err
		}
		if len(options) > 0 {
			item.SelectedOptions = options
		}
		items[orderID] = append(items[orderID], item)
	}
	return items, rows.Err()
}

func nonNilOptions(options []string) []string {
	if options == nil {
		return []string{}
	}
	return options
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			table_id TEXT NOT NULL,
			status TEXT NOT NULL,
			subtotal NUMERIC(12,2) NOT NULL,
			tax NUMERIC(12,2) NOT NULL,
			tip NUMERIC(12,2) NOT NULL,
			total_amount NUMERIC(12,2) NOT NULL,
			special_requests TEXT NOT NULL DEFAULT '',
			version INTEGER NOT NULL DEFAULT 1,
			access_token TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS orders_restaurant_created_idx ON orders (restaurant_id, created_at DESC)",
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			menu_item_id TEXT NOT NULL,
			name TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			category_id TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			selected_size TEXT NOT NULL DEFAULT '',
			selected_options TEXT[] NOT NULL DEFAULT '{}',
			special_instructions TEXT NOT NULL DEFAULT ''
		)`,
		"CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
