package menu

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"menu-system/internal/apperrors"
	"menu-system/internal/logger"
	"menu-system/internal/models"
	"menu-system/internal/stats"
	"menu-system/internal/validation"
)

// Repo is the storage contract the menu service depends on.
type Repo interface {
	Save(ctx context.Context, menu models.Menu) (models.Menu, error)
	FindAll(ctx context.Context) ([]models.Menu, error)
	FindByID(ctx context.Context, id int) (*models.Menu, error)
	Delete(ctx context.Context, id int) error
	AttachItem(ctx context.Context, menuID, itemID int) error
	DetachItem(ctx context.Context, menuID, itemID int) error
	ItemIDs(ctx context.Context, menuID int) ([]int, error)
}

// ItemSource loads the items attached to a menu.
type ItemSource interface {
	FindByMenu(ctx context.Context, menuID int) ([]models.MenuItem, error)
}

// Service orchestrates menu CRUD and the menu/item association.
type Service struct {
	repo   Repo
	items  ItemSource
	rules  *validation.BusinessRuleValidator
	refs   *validation.CrossEntityValidator
	logger *logger.Logger
}

// NewService creates a menu service.
func NewService(repo Repo, items ItemSource, rules *validation.BusinessRuleValidator, refs *validation.CrossEntityValidator, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		items:  items,
		rules:  rules,
		refs:   refs,
		logger: log,
	}
}

// Create validates the request and persists a new menu.
func (s *Service) Create(ctx context.Context, req models.CreateMenuRequest) (models.MenuResponse, error) {
	if err := req.Validate(); err != nil {
		return models.MenuResponse{}, err
	}
	if err := s.rules.UniqueMenuName(ctx, req.Name, 0); err != nil {
		return models.MenuResponse{}, err
	}

	menu, err := models.NewMenu(req.Name, req.Description, req.LogoFilename)
	if err != nil {
		return models.MenuResponse{}, err
	}

	saved, err := s.repo.Save(ctx, menu)
	if err != nil {
		return models.MenuResponse{}, fmt.Errorf("save menu: %w", err)
	}
	return models.NewMenuResponse(saved, nil), nil
}

// Get returns one menu with its attached items, or a NotFoundError.
func (s *Service) Get(ctx context.Context, id int) (models.MenuResponse, error) {
	menu, err := s.findExisting(ctx, id)
	if err != nil {
		return models.MenuResponse{}, err
	}
	items, err := s.items.FindByMenu(ctx, id)
	if err != nil {
		return models.MenuResponse{}, fmt.Errorf("load items of menu %d: %w", id, err)
	}
	return models.NewMenuResponse(*menu, items), nil
}

// List returns all menus, most recent first, without their items.
func (s *Service) List(ctx context.Context) ([]models.MenuResponse, error) {
	menus, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	responses := make([]models.MenuResponse, 0, len(menus))
	for _, menu := range menus {
		responses = append(responses, models.NewMenuResponse(menu, nil))
	}
	return responses, nil
}

// Update applies a partial update; fields absent from the request stay
// untouched.
func (s *Service) Update(ctx context.Context, id int, req models.UpdateMenuRequest) (models.MenuResponse, error) {
	if err := req.Validate(); err != nil {
		return models.MenuResponse{}, err
	}

	menu, err := s.findExisting(ctx, id)
	if err != nil {
		return models.MenuResponse{}, err
	}

	updated := *menu
	if req.Name != nil {
		if err := s.rules.UniqueMenuName(ctx, *req.Name, id); err != nil {
			return models.MenuResponse{}, err
		}
		updated, err = updated.Rename(*req.Name)
		if err != nil {
			return models.MenuResponse{}, err
		}
	}
	if req.Description != nil {
		updated = updated.WithDescription(*req.Description)
	}
	if req.LogoFilename != nil {
		updated = updated.UpdateLogo(*req.LogoFilename)
	}
	if req.Active != nil {
		if *req.Active {
			updated = updated.Activate()
		} else {
			updated = updated.Deactivate()
		}
	}

	saved, err := s.repo.Save(ctx, updated)
	if err != nil {
		return models.MenuResponse{}, fmt.Errorf("save menu %d: %w", id, err)
	}
	return models.NewMenuResponse(saved, nil), nil
}

// SetActive flips the menu's active flag.
func (s *Service) SetActive(ctx context.Context, id int, active bool) (models.MenuResponse, error) {
	return s.Update(ctx, id, models.UpdateMenuRequest{Active: &active})
}

// UpdateLogo replaces the menu's logo filename.
func (s *Service) UpdateLogo(ctx context.Context, id int, filename string) (models.MenuResponse, error) {
	return s.Update(ctx, id, models.UpdateMenuRequest{LogoFilename: &filename})
}

// Delete removes the menu, guarded by the referenced-by-orders rule. The
// repository deletes the item associations before the menu row.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.findExisting(ctx, id); err != nil {
		return err
	}
	if err := s.refs.MenuDeletable(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AttachItem associates an existing item with the menu; idempotent.
func (s *Service) AttachItem(ctx context.Context, menuID, itemID int) error {
	if _, err := s.findExisting(ctx, menuID); err != nil {
		return err
	}
	if err := s.refs.ItemsExist(ctx, []int{itemID}); err != nil {
		return err
	}
	return s.repo.AttachItem(ctx, menuID, itemID)
}

// DetachItem removes the association between the item and the menu. Detaching
// an item that is not attached is reported, unlike the idempotent attach.
func (s *Service) DetachItem(ctx context.Context, menuID, itemID int) error {
	if _, err := s.findExisting(ctx, menuID); err != nil {
		return err
	}
	ids, err := s.repo.ItemIDs(ctx, menuID)
	if err != nil {
		return fmt.Errorf("load item ids of menu %d: %w", menuID, err)
	}
	if !slices.Contains(ids, itemID) {
		return apperrors.NewValidation("item_id",
			fmt.Sprintf("item %d is not attached to menu %d", itemID, menuID))
	}
	return s.repo.DetachItem(ctx, menuID, itemID)
}

// Statistics computes the derived item rollup for one menu.
func (s *Service) Statistics(ctx context.Context, menuID int) (stats.MenuStatistics, error) {
	if _, err := s.findExisting(ctx, menuID); err != nil {
		return stats.MenuStatistics{}, err
	}
	items, err := s.items.FindByMenu(ctx, menuID)
	if err != nil {
		return stats.MenuStatistics{}, fmt.Errorf("load items of menu %d: %w", menuID, err)
	}
	return stats.MenuStatisticsFrom(items), nil
}

func (s *Service) findExisting(ctx context.Context, id int) (*models.Menu, error) {
	menu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find menu %d: %w", id, err)
	}
	if menu == nil {
		return nil, apperrors.NewNotFound("menu", strconv.Itoa(id))
	}
	return menu, nil
}
