package models

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"menu-system/internal/apperrors"
)

// validate is the shared validator for request DTOs. Field names in error
// messages come from the json tags.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// translateValidatorError converts the first field error into the domain
// error taxonomy so boundaries see one precise field-level message.
func translateValidatorError(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	fe := errs[0]

	var message string
	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", fe.Field())
	case "min":
		message = fmt.Sprintf("%s must contain at least %s element(s)", fe.Field(), fe.Param())
	case "max":
		message = fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "gt":
		message = fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		message = fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "oneof":
		message = fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		message = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return apperrors.NewValidation(fe.Field(), message)
}

// OrderItemInput is one raw order line of a create request.
type OrderItemInput struct {
	ItemID    int     `json:"item_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// CreateOrderRequest is the boundary contract for creating an order.
type CreateOrderRequest struct {
	CustomerName string           `json:"customer_name" validate:"required"`
	Items        []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// Validate normalizes and validates the request before any repository access.
func (r *CreateOrderRequest) Validate() error {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	return translateValidatorError(validate.Struct(r))
}

// UpdateOrderRequest supports partial updates; nil fields mean "no change".
type UpdateOrderRequest struct {
	CustomerName *string `json:"customer_name,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// Validate checks only the fields that are present.
func (r *UpdateOrderRequest) Validate() error {
	if r.CustomerName != nil {
		trimmed := strings.TrimSpace(*r.CustomerName)
		if trimmed == "" {
			return apperrors.NewValidation("customer_name", "customer name is required")
		}
		r.CustomerName = &trimmed
	}
	if r.Status != nil {
		if _, err := ParseOrderStatus(*r.Status); err != nil {
			return err
		}
	}
	return nil
}

// OrderItemResponse is the projection of one order line.
type OrderItemResponse struct {
	ID        int     `json:"id"`
	ItemID    int     `json:"item_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderResponse is the projection returned to boundary consumers.
type OrderResponse struct {
	ID           int                 `json:"id"`
	CustomerName string              `json:"customer_name"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	Total        float64             `json:"total"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewOrderResponse projects an order entity.
func NewOrderResponse(order Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ItemID:    item.ItemID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		})
	}
	return OrderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Status:       string(order.Status),
		Items:        items,
		Total:        order.Total(),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// CreateMenuRequest is the boundary contract for creating a menu.
type CreateMenuRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Description  string `json:"description,omitempty"`
	LogoFilename string `json:"logo_filename,omitempty"`
}

func (r *CreateMenuRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return translateValidatorError(validate.Struct(r))
}

// UpdateMenuRequest supports partial updates; nil fields mean "no change".
type UpdateMenuRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	LogoFilename *string `json:"logo_filename,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

func (r *UpdateMenuRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return apperrors.NewValidation("name", "menu name is required")
		}
		if len(trimmed) > 255 {
			return apperrors.NewValidation("name", "menu name must not exceed 255 characters")
		}
		r.Name = &trimmed
	}
	return nil
}

// MenuResponse is the projection returned to boundary consumers. Items are
// included when the caller loaded them.
type MenuResponse struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	LogoFilename string         `json:"logo_filename,omitempty"`
	Active       bool           `json:"active"`
	Items        []ItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewMenuResponse projects a menu entity and its loaded items.
func NewMenuResponse(menu Menu, items []MenuItem) MenuResponse {
	resp := MenuResponse{
		ID:           menu.ID,
		Name:         menu.Name,
		Description:  menu.Description,
		LogoFilename: menu.LogoFilename,
		Active:       menu.Active,
		CreatedAt:    menu.CreatedAt,
		UpdatedAt:    menu.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, NewItemResponse(item))
	}
	return resp
}

// CreateItemRequest is the boundary contract for creating an item.
type CreateItemRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
}

func (r *CreateItemRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return translateValidatorError(validate.Struct(r))
}

// UpdateItemRequest supports partial updates; nil fields mean "no change".
type UpdateItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

func (r *UpdateItemRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return apperrors.NewValidation("name", "item name is required")
		}
		r.Name = &trimmed
	}
	if r.Price != nil && *r.Price < 0 {
		return apperrors.NewValidation("price", "price must be greater than or equal to 0")
	}
	return nil
}

// ItemResponse is the projection of an item.
type ItemResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// NewItemResponse projects an item entity.
func NewItemResponse(item MenuItem) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
	}
}

// UpsertSettingRequest is the boundary contract for writing a setting.
// Values like "0" and "false" are legitimate; only an absent value fails.
type UpsertSettingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=string number boolean"`
}

func (r *UpsertSettingRequest) Validate() error {
	r.Key = strings.TrimSpace(r.Key)
	return translateValidatorError(validate.Struct(r))
}

// SettingResponse is the projection of a setting.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// NewSettingResponse projects a setting entity.
func NewSettingResponse(setting Setting) SettingResponse {
	return SettingResponse{
		Key:   setting.Key,
		Value: setting.Value,
		Type:  string(setting.Type),
	}
}
