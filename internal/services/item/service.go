package item

import (
	"context"
	"fmt"
	"strconv"

	"menu-system/internal/apperrors"
	"menu-system/internal/logger"
	"menu-system/internal/models"
	"menu-system/internal/validation"
)

// Repo is the storage contract the item service depends on.
type Repo interface {
	Save(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	FindAll(ctx context.Context) ([]models.MenuItem, error)
	FindByMenu(ctx context.Context, menuID int) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id int) (*models.MenuItem, error)
	Delete(ctx context.Context, id int) error
}

// Service orchestrates item CRUD.
type Service struct {
	repo   Repo
	rules  *validation.BusinessRuleValidator
	refs   *validation.CrossEntityValidator
	logger *logger.Logger
}

// NewService creates an item service.
func NewService(repo Repo, rules *validation.BusinessRuleValidator, refs *validation.CrossEntityValidator, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		rules:  rules,
		refs:   refs,
		logger: log,
	}
}

// Create validates the request and persists a new item.
func (s *Service) Create(ctx context.Context, req models.CreateItemRequest) (models.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return models.ItemResponse{}, err
	}
	if err := s.rules.PositiveItemPrice(req.Price); err != nil {
		return models.ItemResponse{}, err
	}

	item, err := models.NewMenuItem(req.Name, req.Description, req.Price)
	if err != nil {
		return models.ItemResponse{}, err
	}

	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return models.ItemResponse{}, fmt.Errorf("save item: %w", err)
	}
	return models.NewItemResponse(saved), nil
}

// Get returns one item or a NotFoundError.
func (s *Service) Get(ctx context.Context, id int) (models.ItemResponse, error) {
	item, err := s.findExisting(ctx, id)
	if err != nil {
		return models.ItemResponse{}, err
	}
	return models.NewItemResponse(*item), nil
}

// GetInMenu returns the item only if it belongs to the given menu.
func (s *Service) GetInMenu(ctx context.Context, menuID, itemID int) (models.ItemResponse, error) {
	item, err := s.findExisting(ctx, itemID)
	if err != nil {
		return models.ItemResponse{}, err
	}
	if err := s.refs.ItemBelongsToMenu(ctx, menuID, itemID); err != nil {
		return models.ItemResponse{}, err
	}
	return models.NewItemResponse(*item), nil
}

// List returns all items, most recent first.
func (s *Service) List(ctx context.Context) ([]models.ItemResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return toResponses(items), nil
}

// ListByMenu returns the items attached to a menu.
func (s *Service) ListByMenu(ctx context.Context, menuID int) ([]models.ItemResponse, error) {
	items, err := s.repo.FindByMenu(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("list items of menu %d: %w", menuID, err)
	}
	return toResponses(items), nil
}

// Update applies a partial update; fields absent from the request stay
// untouched.
func (s *Service) Update(ctx context.Context, id int, req models.UpdateItemRequest) (models.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return models.ItemResponse{}, err
	}

	item, err := s.findExisting(ctx, id)
	if err != nil {
		return models.ItemResponse{}, err
	}

	updated := *item
	if req.Name != nil {
		updated, err = updated.Rename(*req.Name)
		if err != nil {
			return models.ItemResponse{}, err
		}
	}
	if req.Description != nil {
		updated = updated.WithDescription(*req.Description)
	}
	if req.Price != nil {
		if err := s.rules.PositiveItemPrice(*req.Price); err != nil {
			return models.ItemResponse{}, err
		}
		updated, err = updated.Reprice(*req.Price)
		if err != nil {
			return models.ItemResponse{}, err
		}
	}

	saved, err := s.repo.Save(ctx, updated)
	if err != nil {
		return models.ItemResponse{}, fmt.Errorf("save item %d: %w", id, err)
	}
	return models.NewItemResponse(saved), nil
}

// Delete removes the item and its menu associations.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.findExisting(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) findExisting(ctx context.Context, id int) (*models.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find item %d: %w", id, err)
	}
	if item == nil {
		return nil, apperrors.NewNotFound("item", strconv.Itoa(id))
	}
	return item, nil
}

func toResponses(items []models.MenuItem) []models.ItemResponse {
	responses := make([]models.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, models.NewItemResponse(item))
	}
	return responses
}
