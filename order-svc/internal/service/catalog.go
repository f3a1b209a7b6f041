package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/pricing"

	"github.com/shopspring/decimal"
)

// MenuCatalog reads prices, tables and tax rates from menu-svc.
type MenuCatalog struct {
	HTTP    *http.Client
	BaseURL string
}

func NewMenuCatalog(baseURL string, timeout time.Duration) *MenuCatalog {
	return &MenuCatalog{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: baseURL,
	}
}

func (c *MenuCatalog) MenuItem(ctx context.Context, restaurantID, itemID string) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	found, err := c.getJSON(ctx, fmt.Sprintf("/api/restaurants/%s/items/%s", url.PathEscape(restaurantID), url.PathEscape(itemID)), &item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, itemID)
	}
	return &item, nil
}

func (c *MenuCatalog) Table(ctx context.Context, restaurantID, tableID string) (*domain.TableRef, error) {
	var table domain.TableRef
	found, err := c.getJSON(ctx, fmt.Sprintf("/api/restaurants/%s/tables/%s", url.PathEscape(restaurantID), url.PathEscape(tableID)), &table)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrTableNotFound
	}
	return &table, nil
}

// TaxRate falls back to the default rate when the restaurant has no settings.
func (c *MenuCatalog) TaxRate(ctx context.Context, restaurantID string) (decimal.Decimal, error) {
	var settings struct {
		TaxRate *decimal.Decimal `json:"tax_rate"`
	}
	found, err := c.getJSON(ctx, "/api/restaurants/"+url.PathEscape(restaurantID), &settings)
	if err != nil {
		return decimal.Zero, err
	}
	if !found || settings.TaxRate == nil {
		return pricing.DefaultTaxRate, nil
	}
	return *settings.TaxRate, nil
}

func (c *MenuCatalog) getJSON(ctx context.Context, path string, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return false, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return false, fmt.Errorf("menu service: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	default:
		log.Printf("[CATALOG] GET %s returned %s", path, res.Status)
		return false, fmt.Errorf("menu service: %s", res.Status)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return false, fmt.Errorf("menu service: decode %s: %w", path, err)
	}
	return true, nil
}
