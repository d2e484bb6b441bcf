package menu

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

// Repository persists menus in PostgreSQL.
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a menu repository.
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

// Save inserts a new menu or updates an existing one by id presence.
func (r *Repository) Save(ctx context.Context, menu models.Menu) (models.Menu, error) {
	if menu.ID == 0 {
		err := r.db.QueryRow(ctx, database.InsertMenuSQL,
			menu.Name, menu.Description, menu.LogoFilename, menu.Active, menu.CreatedAt, menu.UpdatedAt).
			Scan(&menu.ID)
		if err != nil {
			return models.Menu{}, fmt.Errorf("insert menu: %w", err)
		}
		return menu, nil
	}

	tag, err := r.db.ExecTag(ctx, database.UpdateMenuSQL,
		menu.Name, menu.Description, menu.LogoFilename, menu.Active, menu.UpdatedAt, menu.ID)
	if err != nil {
		return models.Menu{}, fmt.Errorf("update menu %d: %w", menu.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.Menu{}, apperrors.NewNotFound("menu", fmt.Sprintf("%d", menu.ID))
	}
	return menu, nil
}

// FindAll returns all menus, most recent first.
func (r *Repository) FindAll(ctx context.Context) ([]models.Menu, error) {
	rows, err := r.db.Query(ctx, database.GetAllMenusSQL)
	if err != nil {
		return nil, fmt.Errorf("query menus: %w", err)
	}
	defer rows.Close()

	var menus []models.Menu
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, rows.Err()
}

// FindByID returns the menu or (nil, nil) when it does not exist.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Menu, error) {
	menu, err := scanMenu(r.db.QueryRow(ctx, database.GetMenuByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query menu %d: %w", id, err)
	}
	return &menu, nil
}

// FindByName returns the menu matching the name case-insensitively, or
// (nil, nil) when there is none.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Menu, error) {
	menu, err := scanMenu(r.db.QueryRow(ctx, database.GetMenuByNameSQL, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query menu by name %q: %w", name, err)
	}
	return &menu, nil
}

// Delete removes the menu, its item associations first.
func (r *Repository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, database.DeleteMenuAssociationsSQL, id); err != nil {
		return fmt.Errorf("delete associations of menu %d: %w", id, err)
	}
	tag, err := tx.Exec(ctx, database.DeleteMenuSQL, id)
	if err != nil {
		return fmt.Errorf("delete menu %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("menu", fmt.Sprintf("%d", id))
	}
	return tx.Commit(ctx)
}

// AttachItem associates an item with the menu. Attaching twice is a no-op.
func (r *Repository) AttachItem(ctx context.Context, menuID, itemID int) error {
	if err := r.db.Exec(ctx, database.AttachItemSQL, menuID, itemID); err != nil {
		return fmt.Errorf("attach item %d to menu %d: %w", itemID, menuID, err)
	}
	return nil
}

// DetachItem removes the association between an item and the menu.
func (r *Repository) DetachItem(ctx context.Context, menuID, itemID int) error {
	if err := r.db.Exec(ctx, database.DetachItemSQL, menuID, itemID); err != nil {
		return fmt.Errorf("detach item %d from menu %d: %w", itemID, menuID, err)
	}
	return nil
}

// ItemIDs returns the ids of items attached to the menu.
func (r *Repository) ItemIDs(ctx context.Context, menuID int) ([]int, error) {
	rows, err := r.db.Query(ctx, database.GetMenuItemIDsSQL, menuID)
	if err != nil {
		return nil, fmt.Errorf("query item ids of menu %d: %w", menuID, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanMenu(row pgx.Row) (models.Menu, error) {
	var menu models.Menu
	err := row.Scan(&menu.ID, &menu.Name, &menu.Description, &menu.LogoFilename,
		&menu.Active, &menu.CreatedAt, &menu.UpdatedAt)
	return menu, err
}
