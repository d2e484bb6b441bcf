package models

import (
	"strings"
	"time"

	"menu-system/internal/apperrors"
)

// Menu groups items for display. Treat values as immutable: mutation methods
// return an updated copy.
type Menu struct {
	ID           int       `json:"id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	LogoFilename string    `json:"logo_filename,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewMenu validates and builds an active menu.
func NewMenu(name, description, logoFilename string) (Menu, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Menu{}, apperrors.NewValidation("name", "menu name is required")
	}
	if len(trimmed) > 255 {
		return Menu{}, apperrors.NewValidation("name", "menu name must not exceed 255 characters")
	}

	now := time.Now().UTC()
	return Menu{
		Name:         trimmed,
		Description:  description,
		LogoFilename: logoFilename,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// RestoreMenu rehydrates a persisted menu, re-running validation.
func RestoreMenu(id int, name, description, logoFilename string, active bool, createdAt, updatedAt time.Time) (Menu, error) {
	menu, err := NewMenu(name, description, logoFilename)
	if err != nil {
		return Menu{}, err
	}
	menu.ID = id
	menu.Active = active
	menu.CreatedAt = createdAt
	menu.UpdatedAt = updatedAt
	return menu, nil
}

// Activate returns an active copy of the menu.
func (m Menu) Activate() Menu {
	m.Active = true
	m.UpdatedAt = time.Now().UTC()
	return m
}

// Deactivate returns an inactive copy of the menu.
func (m Menu) Deactivate() Menu {
	m.Active = false
	m.UpdatedAt = time.Now().UTC()
	return m
}

// UpdateLogo returns a copy of the menu with a new logo filename.
func (m Menu) UpdateLogo(filename string) Menu {
	m.LogoFilename = filename
	m.UpdatedAt = time.Now().UTC()
	return m
}

// Rename returns a copy of the menu with a new name.
func (m Menu) Rename(name string) (Menu, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Menu{}, apperrors.NewValidation("name", "menu name is required")
	}
	if len(trimmed) > 255 {
		return Menu{}, apperrors.NewValidation("name", "menu name must not exceed 255 characters")
	}
	m.Name = trimmed
	m.UpdatedAt = time.Now().UTC()
	return m, nil
}

// WithDescription returns a copy of the menu with a new description.
func (m Menu) WithDescription(description string) Menu {
	m.Description = description
	m.UpdatedAt = time.Now().UTC()
	return m
}
