package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"menu-system/internal/apperrors"
	"menu-system/internal/models"
)

// MenuFinder looks up menus by name for the uniqueness rule.
type MenuFinder interface {
	FindByName(ctx context.Context, name string) (*models.Menu, error)
}

// MaxCustomerNameLength is the ceiling for order customer names.
const MaxCustomerNameLength = 100

// BusinessRuleValidator centralizes cross-cutting business rules that do not
// belong to a single entity constructor.
type BusinessRuleValidator struct {
	menus MenuFinder
}

// NewBusinessRuleValidator creates the rule validator.
func NewBusinessRuleValidator(menus MenuFinder) *BusinessRuleValidator {
	return &BusinessRuleValidator{menus: menus}
}

// UniqueMenuName enforces case-insensitive menu name uniqueness, excluding
// the menu itself on update (excludeID 0 means a new menu).
func (v *BusinessRuleValidator) UniqueMenuName(ctx context.Context, name string, excludeID int) error {
	existing, err := v.menus.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("look up menu by name: %w", err)
	}
	if existing != nil && existing.ID != excludeID {
		return apperrors.NewValidation("name", fmt.Sprintf("a menu named %q already exists", existing.Name))
	}
	return nil
}

// PositiveItemPrice requires catalog items to cost something. Order lines may
// still carry a zero unit price (promotions, comped items).
func (v *BusinessRuleValidator) PositiveItemPrice(price float64) error {
	if price <= 0 {
		return apperrors.NewValidation("price", "item price must be greater than 0")
	}
	return nil
}

// CustomerNameLength enforces the customer name ceiling.
func (v *BusinessRuleValidator) CustomerNameLength(name string) error {
	if len(name) > MaxCustomerNameLength {
		return apperrors.NewValidation("customer_name",
			fmt.Sprintf("customer name must not exceed %d characters", MaxCustomerNameLength))
	}
	return nil
}

// ValidOrderStatus requires one of the five status literals.
func (v *BusinessRuleValidator) ValidOrderStatus(status string) error {
	_, err := models.ParseOrderStatus(status)
	return err
}

// SettingValueMatchesType requires the value to parse according to its
// declared type tag.
func (v *BusinessRuleValidator) SettingValueMatchesType(value string, settingType models.SettingType) error {
	switch settingType {
	case models.SettingNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return apperrors.NewValidation("value", fmt.Sprintf("value %q is not a valid number", value))
		}
	case models.SettingBoolean:
		if _, err := strconv.ParseBool(strings.TrimSpace(value)); err != nil {
			return apperrors.NewValidation("value", fmt.Sprintf("value %q is not a valid boolean", value))
		}
	case models.SettingString:
		// any non-empty value is a valid string
	default:
		return apperrors.NewValidation("type", "type must be one of: string, number, boolean")
	}
	return nil
}
