package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"

	"github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func affected(result sql.Result, missing error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, address, phone, email, description, tax_rate, updated_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Phone, &rest.Email, &rest.Description, &rest.TaxRate, &rest.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) UpsertRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO restaurants (id, name, address, phone, email, description, tax_rate, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, address = EXCLUDED.address, phone = EXCLUDED.phone,
			email = EXCLUDED.email, description = EXCLUDED.description,
			tax_rate = EXCLUDED.tax_rate, updated_at = EXCLUDED.updated_at`,
		rest.ID, rest.Name, rest.Address, rest.Phone, rest.Email, rest.Description, rest.TaxRate, rest.UpdatedAt)
	return err
}

const itemColumns = "id, restaurant_id, name, description, price, category_id, tags, available, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var tags pq.StringArray
	if err := row.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price,
		&item.CategoryID, &tags, &item.Available, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Tags = []string(tags)
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return &item, nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO menu_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.RestaurantID, item.Name, item.Description, item.Price,
		item.CategoryID, pq.Array(item.Tags), item.Available, item.CreatedAt, item.UpdatedAt)
	return err
}

func (r *PostgresRepository) ListItems(ctx context.Context, restaurantID, categoryID string) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items
		WHERE restaurant_id = $1 AND ($2 = '' OR category_id = $2)
		ORDER BY name, id`, restaurantID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetItem(ctx context.Context, restaurantID, itemID string) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	item, err := scanItem(r.DB.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM menu_items WHERE id = $1 AND restaurant_id = $2", itemID, restaurantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	return item, err
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name=$1, description=$2, price=$3, category_id=$4, tags=$5, available=$6, updated_at=$7
		WHERE id=$8 AND restaurant_id=$9
		RETURNING created_at`,
		item.Name, item.Description, item.Price, item.CategoryID, pq.Array(item.Tags), item.Available, item.UpdatedAt,
		item.ID, item.RestaurantID).Scan(&item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrItemNotFound
	}
	return err
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, restaurantID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id=$1 AND restaurant_id=$2", itemID, restaurantID)
	if err != nil {
		return err
	}
	return affected(result, domain.ErrItemNotFound)
}

func (r *PostgresRepository) CountItems(ctx context.Context, restaurantID, categoryID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM menu_items WHERE restaurant_id = $1 AND category_id = $2", restaurantID, categoryID).Scan(&count)
	return count, err
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO menu_categories (id, restaurant_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		category.ID, category.RestaurantID, category.Name, category.Description, category.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrCategoryExists
	}
	return err
}

func (r *PostgresRepository) ListCategories(ctx context.Context, restaurantID string) ([]domain.MenuCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, name, description, created_at
		FROM menu_categories
		WHERE restaurant_id = $1
		ORDER BY created_at, id`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.MenuCategory{}
	for rows.Next() {
		var category domain.MenuCategory
		if err := rows.Scan(&category.ID, &category.RestaurantID, &category.Name, &category.Description, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetCategory(ctx context.Context, restaurantID, categoryID string) (*domain.MenuCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var category domain.MenuCategory
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, restaurant_id, name, description, created_at
		FROM menu_categories
		WHERE restaurant_id = $1 AND id = $2`, restaurantID, categoryID).
		Scan(&category.ID, &category.RestaurantID, &category.Name, &category.Description, &category.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, restaurantID, categoryID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_categories WHERE restaurant_id=$1 AND id=$2", restaurantID, categoryID)
	if err != nil {
		return err
	}
	return affected(result, domain.ErrCategoryNotFound)
}

const tableColumns = "id, restaurant_id, number, created_at"

func scanTable(row rowScanner) (*domain.Table, error) {
	var table domain.Table
	if err := row.Scan(&table.ID, &table.RestaurantID, &table.Number, &table.CreatedAt); err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *PostgresRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO restaurant_tables ("+tableColumns+") VALUES ($1, $2, $3, $4)",
		table.ID, table.RestaurantID, table.Number, table.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrTableExists
	}
	return err
}

func (r *PostgresRepository) ListTables(ctx context.Context, restaurantID string) ([]domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+tableColumns+" FROM restaurant_tables WHERE restaurant_id = $1 ORDER BY number", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []domain.Table{}
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *table)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) GetTable(ctx context.Context, restaurantID, tableID string) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	table, err := scanTable(r.DB.QueryRowContext(ctx,
		"SELECT "+tableColumns+" FROM restaurant_tables WHERE restaurant_id = $1 AND id = $2", restaurantID, tableID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTableNotFound
	}
	return table, err
}

func (r *PostgresRepository) GetTableByNumber(ctx context.Context, restaurantID string, number int) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	table, err := scanTable(r.DB.QueryRowContext(ctx,
		"SELECT "+tableColumns+" FROM restaurant_tables WHERE restaurant_id = $1 AND number = $2", restaurantID, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTableNotFound
	}
	return table, err
}

func (r *PostgresRepository) DeleteTable(ctx context.Context, restaurantID, tableID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM restaurant_tables WHERE restaurant_id=$1 AND id=$2", restaurantID, tableID)
	if err != nil {
		return err
	}
	return affected(result, domain.ErrTableNotFound)
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			tax_rate NUMERIC(5,2) NOT NULL DEFAULT 7,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_categories (
			id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (restaurant_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			category_id TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		"CREATE INDEX IF NOT EXISTS menu_items_category ON menu_items (restaurant_id, category_id)",
		`CREATE TABLE IF NOT EXISTS restaurant_tables (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			number INTEGER NOT NULL CHECK (number > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (restaurant_id, number)
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
