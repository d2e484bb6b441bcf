package stats

import "menu-system/internal/models"

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices an already loaded collection. Pages are 1-based; out of
// range pages yield an empty item list, never an error.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FilterItemsByPrice keeps items whose price falls within [min, max].
// A max of 0 means no upper bound.
func FilterItemsByPrice(items []models.MenuItem, min, max float64) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Price < min {
			continue
		}
		if max > 0 && item.Price > max {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterActiveMenus keeps menus that are currently active.
func FilterActiveMenus(menus []models.Menu) []models.Menu {
	out := make([]models.Menu, 0, len(menus))
	for _, menu := range menus {
		if menu.Active {
			out = append(out, menu)
		}
	}
	return out
}

// FilterOrdersByStatus keeps orders in the given status.
func FilterOrdersByStatus(orders []models.Order, status models.OrderStatus) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out
}
