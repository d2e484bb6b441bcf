package models

import (
	"strconv"
	"strings"

	"menu-system/internal/apperrors"
)

// SettingType tags how a setting value is parsed back out.
type SettingType string

const (
	SettingString  SettingType = "string"
	SettingNumber  SettingType = "number"
	SettingBoolean SettingType = "boolean"
)

// ParseSettingType validates a raw type tag.
func ParseSettingType(raw string) (SettingType, error) {
	switch SettingType(raw) {
	case SettingString, SettingNumber, SettingBoolean:
		return SettingType(raw), nil
	default:
		return "", apperrors.NewValidation("type", "type must be one of: string, number, boolean")
	}
}

// Setting is a flat key/value entry with a type tag.
type Setting struct {
	Key   string      `json:"key"`
	Value string      `json:"value"`
	Type  SettingType `json:"type"`
}

// NewSetting validates and builds a setting. The value is required but may be
// whitespace, "0" or "false": only a truly absent value is rejected.
func NewSetting(key, value, settingType string) (Setting, error) {
	if strings.TrimSpace(key) == "" {
		return Setting{}, apperrors.NewValidation("key", "setting key is required")
	}
	if value == "" {
		return Setting{}, apperrors.NewValidation("value", "setting value is required")
	}
	parsed, err := ParseSettingType(settingType)
	if err != nil {
		return Setting{}, err
	}
	return Setting{Key: strings.TrimSpace(key), Value: value, Type: parsed}, nil
}

// StringValue returns the raw stored value.
func (s Setting) StringValue() string {
	return s.Value
}

// NumberValue parses the value as a number.
func (s Setting) NumberValue() (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
	if err != nil {
		return 0, apperrors.NewValidation("value", "setting value is not a valid number")
	}
	return n, nil
}

// BoolValue parses the value as a boolean.
func (s Setting) BoolValue() (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s.Value))
	if err != nil {
		return false, apperrors.NewValidation("value", "setting value is not a valid boolean")
	}
	return b, nil
}
