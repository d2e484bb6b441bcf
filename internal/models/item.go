package models

import (
	"math"
	"strings"

	"menu-system/internal/apperrors"
)

// MenuItem is a sellable item. Items have no intrinsic owner: they are
// associated to menus through a many-to-many join and may belong to zero
// or more menus.
type MenuItem struct {
	ID          int     `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// NewMenuItem validates and builds an item.
func NewMenuItem(name, description string, price float64) (MenuItem, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return MenuItem{}, apperrors.NewValidation("name", "item name is required")
	}
	if len(trimmed) > 255 {
		return MenuItem{}, apperrors.NewValidation("name", "item name must not exceed 255 characters")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return MenuItem{}, apperrors.NewValidation("price", "price must be a real number greater than or equal to 0")
	}

	return MenuItem{
		Name:        trimmed,
		Description: description,
		Price:       price,
	}, nil
}

// RestoreMenuItem rehydrates a persisted item, re-running validation.
func RestoreMenuItem(id int, name, description string, price float64) (MenuItem, error) {
	item, err := NewMenuItem(name, description, price)
	if err != nil {
		return MenuItem{}, err
	}
	item.ID = id
	return item, nil
}

// Reprice returns a copy of the item with a new price.
func (i MenuItem) Reprice(price float64) (MenuItem, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return MenuItem{}, apperrors.NewValidation("price", "price must be a real number greater than or equal to 0")
	}
	i.Price = price
	return i, nil
}

// Rename returns a copy of the item with a new name.
func (i MenuItem) Rename(name string) (MenuItem, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return MenuItem{}, apperrors.NewValidation("name", "item name is required")
	}
	if len(trimmed) > 255 {
		return MenuItem{}, apperrors.NewValidation("name", "item name must not exceed 255 characters")
	}
	i.Name = trimmed
	return i, nil
}

// WithDescription returns a copy of the item with a new description.
func (i MenuItem) WithDescription(description string) MenuItem {
	i.Description = description
	return i
}
