package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-system/internal/models"
)

func item(t *testing.T, name string, price float64) models.MenuItem {
	t.Helper()
	i, err := models.NewMenuItem(name, "", price)
	require.NoError(t, err)
	return i
}

func order(t *testing.T, customer string, status models.OrderStatus, unitPrice float64) models.Order {
	t.Helper()
	line, err := models.NewOrderItem(1, 1, unitPrice)
	require.NoError(t, err)
	o, err := models.NewOrder(customer, []models.OrderItem{line})
	require.NoError(t, err)
	o.Status = status
	return o
}

func TestMenuStatisticsFrom_Empty(t *testing.T) {
	got := MenuStatisticsFrom(nil)
	assert.Zero(t, got.TotalItems)
	assert.Zero(t, got.PricedItems)
	assert.Zero(t, got.AveragePrice)
	assert.Zero(t, got.MinPrice)
	assert.Zero(t, got.MaxPrice)
}

func TestMenuStatisticsFrom_ZeroPricedExcludedFromAggregates(t *testing.T) {
	got := MenuStatisticsFrom([]models.MenuItem{
		item(t, "Burger", 10),
		item(t, "Pizza", 20),
		item(t, "Water", 0),
	})

	assert.Equal(t, 3, got.TotalItems)
	assert.Equal(t, 2, got.PricedItems)
	assert.InDelta(t, 15, got.AveragePrice, 1e-9)
	assert.InDelta(t, 10, got.MinPrice, 1e-9)
	assert.InDelta(t, 20, got.MaxPrice, 1e-9)
}

func TestOrderStatisticsFrom(t *testing.T) {
	orders := []models.Order{
		order(t, "João", models.StatusPending, 30),
		order(t, "João", models.StatusDelivered, 20),
		order(t, "Maria", models.StatusPending, 40),
	}

	got := OrderStatisticsFrom(orders)
	assert.Equal(t, 3, got.TotalOrders)
	assert.InDelta(t, 90, got.Revenue, 1e-9)
	assert.Equal(t, map[string]int{"pending": 2, "delivered": 1}, got.ByStatus)

	require.Len(t, got.TopCustomers, 2)
	assert.Equal(t, "João", got.TopCustomers[0].CustomerName)
	assert.Equal(t, 2, got.TopCustomers[0].OrderCount)
	assert.InDelta(t, 50, got.TopCustomers[0].Total, 1e-9)
	assert.Equal(t, "Maria", got.TopCustomers[1].CustomerName)
}

func TestOrderStatisticsFrom_LeaderboardCapAndTies(t *testing.T) {
	var orders []models.Order
	for i := 0; i < TopCustomersLimit+5; i++ {
		orders = append(orders, order(t, fmt.Sprintf("customer-%02d", i), models.StatusPending, 10))
	}

	got := OrderStatisticsFrom(orders)
	require.Len(t, got.TopCustomers, TopCustomersLimit)
	// equal totals fall back to name order
	assert.Equal(t, "customer-00", got.TopCustomers[0].CustomerName)
	assert.Equal(t, "customer-09", got.TopCustomers[TopCustomersLimit-1].CustomerName)
}

func TestSystemStatisticsFrom(t *testing.T) {
	active, err := models.NewMenu("Lunch", "", "")
	require.NoError(t, err)
	inactive, err := models.NewMenu("Winter", "", "")
	require.NoError(t, err)
	inactive = inactive.Deactivate()

	got := SystemStatisticsFrom(
		[]models.Menu{active, inactive},
		[]models.MenuItem{item(t, "Burger", 10)},
		[]models.Order{order(t, "João", models.StatusPending, 25)},
	)

	assert.Equal(t, 2, got.TotalMenus)
	assert.Equal(t, 1, got.ActiveMenus)
	assert.Equal(t, 1, got.TotalItems)
	assert.Equal(t, 1, got.TotalOrders)
	assert.InDelta(t, 25, got.Revenue, 1e-9)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page := Paginate(items, 1, 3)
	assert.Equal(t, []int{1, 2, 3}, page.Items)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	page = Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, page.Items)

	// out of range pages are empty, not an error
	page = Paginate(items, 9, 3)
	assert.Empty(t, page.Items)

	// nonsense inputs are clamped
	page = Paginate(items, 0, 0)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PerPage)
	assert.Equal(t, items, page.Items)
}

func TestFilters(t *testing.T) {
	items := []models.MenuItem{item(t, "Burger", 10), item(t, "Pizza", 20), item(t, "Water", 0)}
	assert.Len(t, FilterItemsByPrice(items, 5, 15), 1)
	assert.Len(t, FilterItemsByPrice(items, 0, 0), 3)

	active, err := models.NewMenu("Lunch", "", "")
	require.NoError(t, err)
	assert.Len(t, FilterActiveMenus([]models.Menu{active, active.Deactivate()}), 1)

	orders := []models.Order{
		order(t, "João", models.StatusPending, 10),
		order(t, "Maria", models.StatusReady, 10),
	}
	assert.Len(t, FilterOrdersByStatus(orders, models.StatusPending), 1)
}
