package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"menu-system/internal/apperrors"
	"menu-system/internal/database"
	"menu-system/internal/logger"
	"menu-system/internal/models"
)

// orderRow is a raw order header row as stored.
type orderRow struct {
	ID           int
	CustomerName string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// itemRow is a raw order item row as stored.
type itemRow struct {
	ID        int
	OrderID   int
	ItemID    int
	Quantity  int
	UnitPrice float64
}

// rowSource is the storage view the reconciliation loop runs against.
// The postgres repository implements it; tests inject corrupted scenarios
// through an in-memory fake.
type rowSource interface {
	orderRows(ctx context.Context) ([]orderRow, error)
	itemRows(ctx context.Context, orderID int) ([]itemRow, error)
	deleteItemRows(ctx context.Context, orderID int) error
	deleteOrderRow(ctx context.Context, orderID int) error
}

// reconcileOrders rebuilds orders from raw rows, quarantining corrupted ones.
//
// A header with zero item rows, or a row set the entity constructor rejects,
// is deleted and skipped: data corruption repairs itself on the next read and
// never fails the listing for everyone else. Anything that is not a
// ValidationError propagates, since it signals an infrastructure fault rather
// than bad data. A failed repair is logged and does not abort later rows.
func reconcileOrders(ctx context.Context, src rowSource, log *logger.Logger, requestID string) ([]models.Order, error) {
	headers, err := src.orderRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load order rows: %w", err)
	}

	orders := make([]models.Order, 0, len(headers))
	for _, header := range headers {
		rows, err := src.itemRows(ctx, header.ID)
		if err != nil {
			return nil, fmt.Errorf("load item rows for order %d: %w", header.ID, err)
		}

		if len(rows) == 0 {
			log.Warn("corrupted_order_quarantined",
				fmt.Sprintf("Order %d has no item rows, deleting orphaned header", header.ID),
				requestID, map[string]any{
					"order_id": header.ID,
					"reason":   "no item rows",
				})
			if err := src.deleteOrderRow(ctx, header.ID); err != nil {
				log.Error("order_repair_failed",
					fmt.Sprintf("Failed to delete orphaned order %d", header.ID),
					requestID, err, map[string]any{"order_id": header.ID})
			}
			continue
		}

		order, err := restoreFromRows(header, rows)
		if err != nil {
			if !apperrors.IsValidation(err) {
				return nil, err
			}
			log.Warn("corrupted_order_quarantined",
				fmt.Sprintf("Order %d failed reconstruction, deleting rows", header.ID),
				requestID, map[string]any{
					"order_id": header.ID,
					"reason":   err.Error(),
				})
			if err := src.deleteItemRows(ctx, header.ID); err != nil {
				log.Error("order_repair_failed",
					fmt.Sprintf("Failed to delete item rows of order %d", header.ID),
					requestID, err, map[string]any{"order_id": header.ID})
				continue
			}
			if err := src.deleteOrderRow(ctx, header.ID); err != nil {
				log.Error("order_repair_failed",
					fmt.Sprintf("Failed to delete header of order %d", header.ID),
					requestID, err, map[string]any{"order_id": header.ID})
			}
			continue
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// restoreFromRows rebuilds the aggregate from raw rows, re-running every
// construction invariant.
func restoreFromRows(header orderRow, rows []itemRow) (models.Order, error) {
	items := make([]models.OrderItem, 0, len(rows))
	for _, row := range rows {
		item, err := models.RestoreOrderItem(row.ID, row.OrderID, row.ItemID, row.Quantity, row.UnitPrice)
		if err != nil {
			return models.Order{}, err
		}
		items = append(items, item)
	}
	return models.RestoreOrder(header.ID, header.CustomerName, header.Status, items, header.CreatedAt, header.UpdatedAt)
}

// Repository persists orders in PostgreSQL.
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates an order repository.
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

// FindAll returns all valid orders, most recent first. Corrupted rows are
// quarantined on the way through; see reconcileOrders.
func (r *Repository) FindAll(ctx context.Context) ([]models.Order, error) {
	return reconcileOrders(ctx, r, r.logger, requestIDFrom(ctx))
}

// FindByID returns the order or (nil, nil) when it does not exist. Unlike
// FindAll there is no repair here: a targeted lookup must not destroy rows
// the caller may be inspecting, so a header without items simply reads as
// not found.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Order, error) {
	var header orderRow
	err := r.db.QueryRow(ctx, database.GetOrderByIDSQL, id).Scan(
		&header.ID, &header.CustomerName, &header.Status, &header.CreatedAt, &header.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query order %d: %w", id, err)
	}

	rows, err := r.itemRows(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	order, err := restoreFromRows(header, rows)
	if err != nil {
		if apperrors.IsValidation(err) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Save inserts a new order or updates an existing one by id presence.
// On update the item rows are replaced wholesale: order items carry no
// identity outside their parent, so a diff would buy nothing.
func (r *Repository) Save(ctx context.Context, order models.Order) (models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if order.ID == 0 {
		err = tx.QueryRow(ctx, database.InsertOrderSQL,
			order.CustomerName, string(order.Status), order.CreatedAt, order.UpdatedAt).Scan(&order.ID)
		if err != nil {
			return models.Order{}, fmt.Errorf("insert order: %w", err)
		}
	} else {
		tag, err := tx.Exec(ctx, database.UpdateOrderSQL,
			order.CustomerName, string(order.Status), order.UpdatedAt, order.ID)
		if err != nil {
			return models.Order{}, fmt.Errorf("update order %d: %w", order.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return models.Order{}, apperrors.NewNotFound("order", fmt.Sprintf("%d", order.ID))
		}
		if _, err := tx.Exec(ctx, database.DeleteOrderItemsSQL, order.ID); err != nil {
			return models.Order{}, fmt.Errorf("replace items of order %d: %w", order.ID, err)
		}
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		err = tx.QueryRow(ctx, database.InsertOrderItemSQL,
			order.ID, order.Items[i].ItemID, order.Items[i].Quantity, order.Items[i].UnitPrice).
			Scan(&order.Items[i].ID)
		if err != nil {
			return models.Order{}, fmt.Errorf("insert item rows of order %d: %w", order.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("commit order %d: %w", order.ID, err)
	}
	return order, nil
}

// Delete removes the order and its items, items first so the inverse
// corruption case (orphaned items) cannot appear.
func (r *Repository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, database.DeleteOrderItemsSQL, id); err != nil {
		return fmt.Errorf("delete item rows of order %d: %w", id, err)
	}
	tag, err := tx.Exec(ctx, database.DeleteOrderSQL, id)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("order", fmt.Sprintf("%d", id))
	}
	return tx.Commit(ctx)
}

// CountReferencingMenu counts orders holding at least one item attached to
// the given menu.
func (r *Repository) CountReferencingMenu(ctx context.Context, menuID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, database.CountOrdersReferencingMenuSQL, menuID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders referencing menu %d: %w", menuID, err)
	}
	return count, nil
}

// rowSource implementation backing reconcileOrders.

func (r *Repository) orderRows(ctx context.Context) ([]orderRow, error) {
	rows, err := r.db.Query(ctx, database.GetAllOrdersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headers []orderRow
	for rows.Next() {
		var h orderRow
		if err := rows.Scan(&h.ID, &h.CustomerName, &h.Status, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	return headers, rows.Err()
}

func (r *Repository) itemRows(ctx context.Context, orderID int) ([]itemRow, error) {
	rows, err := r.db.Query(ctx, database.GetOrderItemsSQL, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []itemRow
	for rows.Next() {
		var i itemRow
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ItemID, &i.Quantity, &i.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *Repository) deleteItemRows(ctx context.Context, orderID int) error {
	return r.db.Exec(ctx, database.DeleteOrderItemsSQL, orderID)
}

func (r *Repository) deleteOrderRow(ctx context.Context, orderID int) error {
	return r.db.Exec(ctx, database.DeleteOrderSQL, orderID)
}

type requestIDKey struct{}

// WithRequestID stores a request id on the context for repair diagnostics.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
