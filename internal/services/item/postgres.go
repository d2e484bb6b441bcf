package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"menu-system/internal/apperrors"
	"menu-system/internal/database"
	"menu-system/internal/logger"
	"menu-system/internal/models"
)

// Repository persists items in PostgreSQL.
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates an item repository.
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

// Save inserts a new item or updates an existing one by id presence.
func (r *Repository) Save(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	if item.ID == 0 {
		err := r.db.QueryRow(ctx, database.InsertItemSQL,
			item.Name, item.Description, item.Price).Scan(&item.ID)
		if err != nil {
			return models.MenuItem{}, fmt.Errorf("insert item: %w", err)
		}
		return item, nil
	}

	tag, err := r.db.ExecTag(ctx, database.UpdateItemSQL,
		item.Name, item.Description, item.Price, item.ID)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("update item %d: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.MenuItem{}, apperrors.NewNotFound("item", fmt.Sprintf("%d", item.ID))
	}
	return item, nil
}

// FindAll returns all items, most recent first.
func (r *Repository) FindAll(ctx context.Context) ([]models.MenuItem, error) {
	return r.queryItems(ctx, database.GetAllItemsSQL)
}

// FindByMenu returns the items attached to a menu.
func (r *Repository) FindByMenu(ctx context.Context, menuID int) ([]models.MenuItem, error) {
	return r.queryItems(ctx, database.GetItemsByMenuSQL, menuID)
}

// FindByID returns the item or (nil, nil) when it does not exist.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.QueryRow(ctx, database.GetItemByIDSQL, id).
		Scan(&item.ID, &item.Name, &item.Description, &item.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query item %d: %w", id, err)
	}
	return &item, nil
}

// Exists reports whether the item is stored.
func (r *Repository) Exists(ctx context.Context, id int) (bool, error) {
	var count int
	if err := r.db.QueryRow(ctx, database.CountItemsByIDSQL, id).Scan(&count); err != nil {
		return false, fmt.Errorf("count item %d: %w", id, err)
	}
	return count > 0, nil
}

// Delete removes the item and its menu associations. Order item rows keep
// their recorded unit prices: order history outlives the catalog.
func (r *Repository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, database.DeleteItemAssociationsSQL, id); err != nil {
		return fmt.Errorf("delete associations of item %d: %w", id, err)
	}
	tag, err := tx.Exec(ctx, database.DeleteItemSQL, id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("item", fmt.Sprintf("%d", id))
	}
	return tx.Commit(ctx)
}

func (r *Repository) queryItems(ctx context.Context, sql string, args ...any) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
