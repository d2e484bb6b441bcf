package order

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"menu-system/internal/apperrors"
	"menu-system/internal/logger"
	"menu-system/internal/models"
	"menu-system/internal/stats"
	"menu-system/internal/validation"
)

// Repo is the storage contract the order service depends on.
type Repo interface {
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id int) (*models.Order, error)
	Save(ctx context.Context, order models.Order) (models.Order, error)
	Delete(ctx context.Context, id int) error
}

// EventPublisher publishes order lifecycle events to the broker.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, routingKey string, event any) error
}

// Service orchestrates order construction, persistence and events.
type Service struct {
	repo      Repo
	rules     *validation.BusinessRuleValidator
	refs      *validation.CrossEntityValidator
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates an order service. publisher may be nil when the broker
// is not configured; events are then skipped.
func NewService(repo Repo, rules *validation.BusinessRuleValidator, refs *validation.CrossEntityValidator, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		rules:     rules,
		refs:      refs,
		publisher: publisher,
		logger:    log,
	}
}

// Create validates the request, builds the aggregate and persists it.
func (s *Service) Create(ctx context.Context, req models.CreateOrderRequest) (models.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return models.OrderResponse{}, err
	}
	if err := s.rules.CustomerNameLength(req.CustomerName); err != nil {
		return models.OrderResponse{}, err
	}

	itemIDs := make([]int, 0, len(req.Items))
	for _, input := range req.Items {
		itemIDs = append(itemIDs, input.ItemID)
	}
	if err := s.refs.ItemsExist(ctx, itemIDs); err != nil {
		return models.OrderResponse{}, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, input := range req.Items {
		item, err := models.NewOrderItem(input.ItemID, input.Quantity, input.UnitPrice)
		if err != nil {
			return models.OrderResponse{}, err
		}
		items = append(items, item)
	}

	// The aggregate re-validates the non-empty item list and customer name
	// independently of the DTO check.
	order, err := models.NewOrder(req.CustomerName, items)
	if err != nil {
		return models.OrderResponse{}, err
	}

	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return models.OrderResponse{}, fmt.Errorf("save order: %w", err)
	}

	s.publishEvent(ctx, "order.created", models.OrderCreatedEvent{
		OrderID:      saved.ID,
		CustomerName: saved.CustomerName,
		Status:       string(saved.Status),
		Total:        saved.Total(),
		Timestamp:    time.Now().UTC(),
	})

	return models.NewOrderResponse(saved), nil
}

// Get returns one order or a NotFoundError.
func (s *Service) Get(ctx context.Context, id int) (models.OrderResponse, error) {
	order, err := s.findExisting(ctx, id)
	if err != nil {
		return models.OrderResponse{}, err
	}
	return models.NewOrderResponse(*order), nil
}

// List returns all valid orders, most recent first.
func (s *Service) List(ctx context.Context) ([]models.OrderResponse, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	responses := make([]models.OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, models.NewOrderResponse(order))
	}
	return responses, nil
}

// ChangeStatus transitions the order to any of the five valid statuses.
func (s *Service) ChangeStatus(ctx context.Context, id int, status string) (models.OrderResponse, error) {
	if err := s.rules.ValidOrderStatus(status); err != nil {
		return models.OrderResponse{}, err
	}

	order, err := s.findExisting(ctx, id)
	if err != nil {
		return models.OrderResponse{}, err
	}
	oldStatus := order.Status

	changed, err := order.ChangeStatus(models.OrderStatus(status))
	if err != nil {
		return models.OrderResponse{}, err
	}

	saved, err := s.repo.Save(ctx, changed)
	if err != nil {
		return models.OrderResponse{}, fmt.Errorf("save order %d: %w", id, err)
	}

	s.publishEvent(ctx, "order.status_changed", models.OrderStatusChangedEvent{
		OrderID:   saved.ID,
		OldStatus: string(oldStatus),
		NewStatus: string(saved.Status),
		Timestamp: time.Now().UTC(),
	})

	return models.NewOrderResponse(saved), nil
}

// Update applies a partial update; fields absent from the request stay
// untouched.
func (s *Service) Update(ctx context.Context, id int, req models.UpdateOrderRequest) (models.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return models.OrderResponse{}, err
	}

	order, err := s.findExisting(ctx, id)
	if err != nil {
		return models.OrderResponse{}, err
	}

	updated := *order
	oldStatus := updated.Status
	if req.CustomerName != nil {
		if err := s.rules.CustomerNameLength(*req.CustomerName); err != nil {
			return models.OrderResponse{}, err
		}
		updated, err = updated.Rename(*req.CustomerName)
		if err != nil {
			return models.OrderResponse{}, err
		}
	}
	if req.Status != nil {
		updated, err = updated.ChangeStatus(models.OrderStatus(*req.Status))
		if err != nil {
			return models.OrderResponse{}, err
		}
	}

	saved, err := s.repo.Save(ctx, updated)
	if err != nil {
		return models.OrderResponse{}, fmt.Errorf("save order %d: %w", id, err)
	}

	if req.Status != nil && oldStatus != saved.Status {
		s.publishEvent(ctx, "order.status_changed", models.OrderStatusChangedEvent{
			OrderID:   saved.ID,
			OldStatus: string(oldStatus),
			NewStatus: string(saved.Status),
			Timestamp: time.Now().UTC(),
		})
	}

	return models.NewOrderResponse(saved), nil
}

// Delete removes the order and its items.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.findExisting(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Statistics computes the derived order rollup over the current listing.
func (s *Service) Statistics(ctx context.Context) (stats.OrderStatistics, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return stats.OrderStatistics{}, fmt.Errorf("list orders: %w", err)
	}
	return stats.OrderStatisticsFrom(orders), nil
}

func (s *Service) findExisting(ctx context.Context, id int) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}
	if order == nil {
		return nil, apperrors.NewNotFound("order", strconv.Itoa(id))
	}
	return order, nil
}

// publishEvent is best effort: a broker outage must not fail the caller,
// the order is already durable.
func (s *Service) publishEvent(ctx context.Context, routingKey string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, routingKey, event); err != nil {
		s.logger.Warn("order_event_publish_failed",
			fmt.Sprintf("Failed to publish %s event", routingKey),
			requestIDFrom(ctx), map[string]any{"routing_key": routingKey, "error": err.Error()})
	}
}
