package validation

import (
	"context"
	"fmt"

	"menu-system/internal/apperrors"
	"menu-system/internal/models"
)

// ItemSource answers existence and membership questions about items.
type ItemSource interface {
	Exists(ctx context.Context, id int) (bool, error)
	FindByMenu(ctx context.Context, menuID int) ([]models.MenuItem, error)
}

// OrderCounter counts orders that reference a menu through their items.
type OrderCounter interface {
	CountReferencingMenu(ctx context.Context, menuID int) (int, error)
}

// CrossEntityValidator enforces referential rules that span aggregates.
type CrossEntityValidator struct {
	items  ItemSource
	orders OrderCounter
}

// NewCrossEntityValidator creates the referential validator.
func NewCrossEntityValidator(items ItemSource, orders OrderCounter) *CrossEntityValidator {
	return &CrossEntityValidator{items: items, orders: orders}
}

// ItemsExist requires every referenced item id to resolve to a stored item.
func (v *CrossEntityValidator) ItemsExist(ctx context.Context, itemIDs []int) error {
	for _, id := range itemIDs {
		exists, err := v.items.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check item %d: %w", id, err)
		}
		if !exists {
			return apperrors.NewValidation("items", fmt.Sprintf("item %d does not exist", id))
		}
	}
	return nil
}

// ItemBelongsToMenu requires the item to be attached to the queried menu.
func (v *CrossEntityValidator) ItemBelongsToMenu(ctx context.Context, menuID, itemID int) error {
	items, err := v.items.FindByMenu(ctx, menuID)
	if err != nil {
		return fmt.Errorf("load items of menu %d: %w", menuID, err)
	}
	for _, item := range items {
		if item.ID == itemID {
			return nil
		}
	}
	return apperrors.NewValidation("item_id", fmt.Sprintf("item %d does not belong to menu %d", itemID, menuID))
}

// MenuDeletable forbids deleting a menu while existing orders reference it.
func (v *CrossEntityValidator) MenuDeletable(ctx context.Context, menuID int) error {
	count, err := v.orders.CountReferencingMenu(ctx, menuID)
	if err != nil {
		return fmt.Errorf("count orders referencing menu %d: %w", menuID, err)
	}
	if count > 0 {
		return apperrors.NewValidation("id",
			fmt.Sprintf("menu %d is referenced by %d existing order(s) and cannot be deleted", menuID, count))
	}
	return nil
}
