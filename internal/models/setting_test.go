package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-system/internal/apperrors"
)

func TestNewSetting(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		value       string
		settingType string
		wantErr     string
	}{
		{name: "string value", key: "site_name", value: "Cardápio", settingType: "string"},
		{name: "number value", key: "delivery_fee", value: "4.50", settingType: "number"},
		{name: "boolean value", key: "accepting_orders", value: "true", settingType: "boolean"},
		// falsy-looking values are legitimate
		{name: "zero value", key: "delivery_fee", value: "0", settingType: "number"},
		{name: "false value", key: "accepting_orders", value: "false", settingType: "boolean"},
		{name: "whitespace value", key: "separator", value: " ", settingType: "string"},
		{name: "missing key", key: "", value: "x", settingType: "string", wantErr: "setting key is required"},
		{name: "missing value", key: "site_name", value: "", settingType: "string", wantErr: "setting value is required"},
		{name: "bad type", key: "site_name", value: "x", settingType: "json", wantErr: "type must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setting, err := NewSetting(tt.key, tt.value, tt.settingType)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, setting.Value)
		})
	}
}

func TestSetting_TypedAccessors(t *testing.T) {
	number, err := NewSetting("delivery_fee", "4.50", "number")
	require.NoError(t, err)
	n, err := number.NumberValue()
	require.NoError(t, err)
	assert.InDelta(t, 4.5, n, 1e-9)

	boolean, err := NewSetting("accepting_orders", "false", "boolean")
	require.NoError(t, err)
	b, err := boolean.BoolValue()
	require.NoError(t, err)
	assert.False(t, b)

	str, err := NewSetting("site_name", "Cardápio", "string")
	require.NoError(t, err)
	assert.Equal(t, "Cardápio", str.StringValue())

	broken, err := NewSetting("delivery_fee", "abc", "number")
	require.NoError(t, err)
	_, err = broken.NumberValue()
	assert.True(t, apperrors.IsValidation(err))

	_, err = str.BoolValue()
	assert.True(t, apperrors.IsValidation(err))
}
