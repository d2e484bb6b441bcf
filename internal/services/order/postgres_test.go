package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-system/internal/logger"
)

// fakeRowSource injects corrupted-row scenarios without a storage engine.
type fakeRowSource struct {
	headers    []orderRow
	items      map[int][]itemRow
	headersErr error
	itemsErr   map[int]error
	deleteErr  map[int]error

	deletedHeaders []int
	deletedItems   []int
}

func (f *fakeRowSource) orderRows(ctx context.Context) ([]orderRow, error) {
	if f.headersErr != nil {
		return nil, f.headersErr
	}
	return f.headers, nil
}

func (f *fakeRowSource) itemRows(ctx context.Context, orderID int) ([]itemRow, error) {
	if err := f.itemsErr[orderID]; err != nil {
		return nil, err
	}
	return f.items[orderID], nil
}

func (f *fakeRowSource) deleteItemRows(ctx context.Context, orderID int) error {
	if err := f.deleteErr[orderID]; err != nil {
		return err
	}
	f.deletedItems = append(f.deletedItems, orderID)
	return nil
}

func (f *fakeRowSource) deleteOrderRow(ctx context.Context, orderID int) error {
	if err := f.deleteErr[orderID]; err != nil {
		return err
	}
	f.deletedHeaders = append(f.deletedHeaders, orderID)
	return nil
}

func header(id int, name, status string) orderRow {
	now := time.Now().UTC()
	return orderRow{ID: id, CustomerName: name, Status: status, CreatedAt: now, UpdatedAt: now}
}

func validItems(orderID int) []itemRow {
	return []itemRow{
		{ID: orderID * 10, OrderID: orderID, ItemID: 1, Quantity: 2, UnitPrice: 25.50},
	}
}

func testLogger() *logger.Logger {
	return logger.New("order-test")
}

func TestReconcileOrders_AllValid(t *testing.T) {
	src := &fakeRowSource{
		headers: []orderRow{header(3, "João", "pending"), header(2, "Maria", "ready"), header(1, "Ana", "delivered")},
		items: map[int][]itemRow{
			3: validItems(3),
			2: validItems(2),
			1: validItems(1),
		},
	}

	orders, err := reconcileOrders(context.Background(), src, testLogger(), "req")
	require.NoError(t, err)
	require.Len(t, orders, 3)

	// descending id order preserved
	assert.Equal(t, 3, orders[0].ID)
	assert.Equal(t, 2, orders[1].ID)
	assert.Equal(t, 1, orders[2].ID)
	assert.Empty(t, src.deletedHeaders)
	assert.Empty(t, src.deletedItems)

	// exact computed totals survive the round trip
	assert.InDelta(t, 51.00, orders[0].Total(), 1e-9)
}

func TestReconcileOrders_OrphanedHeader(t *testing.T) {
	src := &fakeRowSource{
		headers: []orderRow{header(1, "João", "pending")},
		items:   map[int][]itemRow{},
	}

	orders, err := reconcileOrders(context.Background(), src, testLogger(), "req")
	require.NoError(t, err)
	assert.Empty(t, orders)

	// exactly one deletion of the header, and nothing else
	assert.Equal(t, []int{1}, src.deletedHeaders)
	assert.Empty(t, src.deletedItems)
}

func TestReconcileOrders_MixedValidAndCorrupted(t *testing.T) {
	src := &fakeRowSource{
		headers: []orderRow{
			header(5, "João", "pending"),
			header(4, "", "pending"), // blank name fails reconstruction
			header(3, "Maria", "ready"),
			header(2, "Ana", "pending"), // no item rows
			header(1, "Rui", "vanished"), // invalid status
		},
		items: map[int][]itemRow{
			5: validItems(5),
			4: validItems(4),
			3: validItems(3),
			1: validItems(1),
		},
	}

	orders, err := reconcileOrders(context.Background(), src, testLogger(), "req")
	require.NoError(t, err)

	// 2 valid survive, 3 corrupted quarantined
	require.Len(t, orders, 2)
	assert.Equal(t, 5, orders[0].ID)
	assert.Equal(t, 3, orders[1].ID)
	assert.ElementsMatch(t, []int{4, 2, 1}, src.deletedHeaders)

	// only validation-corrupt rows also have their items deleted
	assert.ElementsMatch(t, []int{4, 1}, src.deletedItems)
}

func TestReconcileOrders_InvalidQuantityRow(t *testing.T) {
	src := &fakeRowSource{
		headers: []orderRow{header(1, "João", "pending")},
		items: map[int][]itemRow{
			1: {{ID: 10, OrderID: 1, ItemID: 1, Quantity: 0, UnitPrice: 5}},
		},
	}

	orders, err := reconcileOrders(context.Background(), src, testLogger(), "req")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, []int{1}, src.deletedItems)
	assert.Equal(t, []int{1}, src.deletedHeaders)
}

func TestReconcileOrders_InfrastructureErrorPropagates(t *testing.T) {
	infra := errors.New("connection reset")

	_, err := reconcileOrders(context.Background(), &fakeRowSource{headersErr: infra}, testLogger(), "req")
	assert.ErrorIs(t, err, infra)

	src := &fakeRowSource{
		headers:  []orderRow{header(2, "João", "pending"), header(1, "Maria", "pending")},
		items:    map[int][]itemRow{2: validItems(2)},
		itemsErr: map[int]error{1: infra},
	}
	_, err = reconcileOrders(context.Background(), src, testLogger(), "req")
	assert.ErrorIs(t, err, infra)
}

func TestReconcileOrders_RepairFailureDoesNotAbort(t *testing.T) {
	src := &fakeRowSource{
		headers: []orderRow{
			header(3, "Ana", "pending"), // orphaned, repair will fail
			header(2, "João", "pending"),
			header(1, "Rui", "pending"), // orphaned, repair succeeds
		},
		items: map[int][]itemRow{
			2: validItems(2),
		},
		deleteErr: map[int]error{3: errors.New("lock timeout")},
	}

	orders, err := reconcileOrders(context.Background(), src, testLogger(), "req")
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].ID)
	assert.Equal(t, []int{1}, src.deletedHeaders)
}

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, requestIDFrom(ctx))
	assert.Equal(t, "req-7", requestIDFrom(WithRequestID(ctx, "req-7")))
}

func TestRestoreFromRows(t *testing.T) {
	order, err := restoreFromRows(header(7, "João", "ready"), []itemRow{
		{ID: 70, OrderID: 7, ItemID: 1, Quantity: 2, UnitPrice: 25.50},
		{ID: 71, OrderID: 7, ItemID: 2, Quantity: 1, UnitPrice: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, order.ID)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 51.00, order.Total(), 1e-9)

	_, err = restoreFromRows(header(7, "João", "ready"), nil)
	assert.Error(t, err)
}
