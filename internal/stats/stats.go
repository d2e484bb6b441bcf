// Package stats computes derived, non-authoritative views over already
// loaded collections. Nothing here touches storage, and empty input always
// yields a zeroed result instead of a division by zero.
package stats

import (
	"sort"

	"menu-system/internal/models"
)

// TopCustomersLimit caps the per-customer spending leaderboard.
const TopCustomersLimit = 10

// MenuStatistics summarizes the items of a menu. Zero-priced items count
// toward TotalItems but are ignored for the price aggregates.
type MenuStatistics struct {
	TotalItems   int     `json:"total_items"`
	PricedItems  int     `json:"priced_items"`
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

// MenuStatisticsFrom computes menu statistics over loaded items.
func MenuStatisticsFrom(items []models.MenuItem) MenuStatistics {
	result := MenuStatistics{TotalItems: len(items)}

	var sum float64
	for _, item := range items {
		if item.Price <= 0 {
			continue
		}
		if result.PricedItems == 0 || item.Price < result.MinPrice {
			result.MinPrice = item.Price
		}
		if item.Price > result.MaxPrice {
			result.MaxPrice = item.Price
		}
		sum += item.Price
		result.PricedItems++
	}
	if result.PricedItems > 0 {
		result.AveragePrice = sum / float64(result.PricedItems)
	}
	return result
}

// CustomerTotal is one row of the spending leaderboard.
type CustomerTotal struct {
	CustomerName string  `json:"customer_name"`
	OrderCount   int     `json:"order_count"`
	Total        float64 `json:"total"`
}

// OrderStatistics summarizes loaded orders.
type OrderStatistics struct {
	TotalOrders  int             `json:"total_orders"`
	Revenue      float64         `json:"revenue"`
	ByStatus     map[string]int  `json:"by_status"`
	TopCustomers []CustomerTotal `json:"top_customers"`
}

// OrderStatisticsFrom computes order statistics over loaded orders.
// TopCustomers is sorted by total spend descending (name ascending on ties)
// and capped at TopCustomersLimit.
func OrderStatisticsFrom(orders []models.Order) OrderStatistics {
	result := OrderStatistics{
		TotalOrders:  len(orders),
		ByStatus:     make(map[string]int),
		TopCustomers: []CustomerTotal{},
	}

	totals := make(map[string]*CustomerTotal)
	for _, order := range orders {
		result.ByStatus[string(order.Status)]++
		result.Revenue += order.Total()

		entry, ok := totals[order.CustomerName]
		if !ok {
			entry = &CustomerTotal{CustomerName: order.CustomerName}
			totals[order.CustomerName] = entry
		}
		entry.OrderCount++
		entry.Total += order.Total()
	}

	for _, entry := range totals {
		result.TopCustomers = append(result.TopCustomers, *entry)
	}
	sort.Slice(result.TopCustomers, func(i, j int) bool {
		a, b := result.TopCustomers[i], result.TopCustomers[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.CustomerName < b.CustomerName
	})
	if len(result.TopCustomers) > TopCustomersLimit {
		result.TopCustomers = result.TopCustomers[:TopCustomersLimit]
	}
	return result
}

// SystemStatistics is the system-wide rollup.
type SystemStatistics struct {
	TotalMenus  int     `json:"total_menus"`
	ActiveMenus int     `json:"active_menus"`
	TotalItems  int     `json:"total_items"`
	TotalOrders int     `json:"total_orders"`
	Revenue     float64 `json:"revenue"`
}

// SystemStatisticsFrom computes the rollup over loaded collections.
func SystemStatisticsFrom(menus []models.Menu, items []models.MenuItem, orders []models.Order) SystemStatistics {
	result := SystemStatistics{
		TotalMenus:  len(menus),
		TotalItems:  len(items),
		TotalOrders: len(orders),
	}
	for _, menu := range menus {
		if menu.Active {
			result.ActiveMenus++
		}
	}
	for _, order := range orders {
		result.Revenue += order.Total()
	}
	return result
}
