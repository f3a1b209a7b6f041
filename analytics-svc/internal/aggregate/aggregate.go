// Package aggregate computes dashboard metrics from a snapshot of orders.
// Every function is pure; callers pass the clock and the viewer's location.
package aggregate

import (
	"sort"
	"time"

	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// DayBounds returns [local midnight, next local midnight) around now. The
// window is 23 or 25 hours long on DST transition days.
func DayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

func TodaysOrders(orders []domain.Order, now time.Time, loc *time.Location) []domain.Order {
	start, end := DayBounds(now, loc)
	var today []domain.Order
	for _, order := range orders {
		if !order.CreatedAt.Before(start) && order.CreatedAt.Before(end) {
			today = append(today, order)
		}
	}
	return today
}

func TodaysRevenue(orders []domain.Order, now time.Time, loc *time.Location) decimal.Decimal {
	return sumTotals(TodaysOrders(orders, now, loc))
}

// AverageOrderValue is today's revenue over today's order count, zero when
// there were no orders.
func AverageOrderValue(orders []domain.Order, now time.Time, loc *time.Location) decimal.Decimal {
	today := TodaysOrders(orders, now, loc)
	if len(today) == 0 {
		return decimal.Zero
	}
	return sumTotals(today).Div(decimal.NewFromInt(int64(len(today)))).Round(2)
}

func sumTotals(orders []domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalAmount)
	}
	return total
}

// PopularItems ranks menu items by summed quantity over all orders. Ties
// break by name, then by item id. The name and price come from the first
// order that mentions the item. topN <= 0 returns every item.
func PopularItems(orders []domain.Order, topN int) []domain.PopularItem {
	byID := make(map[string]*domain.PopularItem)
	for _, order := range orders {
		for _, item := range order.Items {
			entry, ok := byID[item.MenuItemID]
			if !ok {
				entry = &domain.PopularItem{
					MenuItemID: item.MenuItemID,
					Name:       item.Name,
					CategoryID: item.CategoryID,
					Price:      item.Price,
				}
				byID[item.MenuItemID] = entry
			}
			entry.Quantity += item.Quantity
		}
	}

	ranked := make([]domain.PopularItem, 0, len(byID))
	for _, entry := range byID {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.MenuItemID < b.MenuItemID
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// ActiveTables counts distinct tables with an order still in progress.
func ActiveTables(orders []domain.Order) int {
	tables := make(map[string]struct{})
	for _, order := range orders {
		if order.Status != domain.StatusDelivered && order.Status != domain.StatusCancelled {
			tables[order.TableID] = struct{}{}
		}
	}
	return len(tables)
}

// RecentOrders returns the n newest orders, newest first.
func RecentOrders(orders []domain.Order, n int) []domain.RecentOrder {
	sorted := append([]domain.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	recent := make([]domain.RecentOrder, 0, len(sorted))
	for _, order := range sorted {
		count := 0
		for _, item := range order.Items {
			count += item.Quantity
		}
		recent = append(recent, domain.RecentOrder{
			ID:          order.ID,
			TableID:     order.TableID,
			Status:      order.Status,
			ItemCount:   count,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		})
	}
	return recent
}
