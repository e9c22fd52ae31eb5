package hintline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewOptions(t *testing.T) {
	options := NewOptions()
	assert.Equal(t, ".*", options.ValidationPattern)
	assert.Equal(t, Color("8"), options.HintColor)
	assert.NotNil(t, options.Logger)
	assert.Nil(t, options.Analytics)
	assert.IsType(t, &WrappingModel{}, options.NewCursorModel())
}

func TestOptionsWithDefaults(t *testing.T) {
	logger := zap.NewExample()
	options := Options{
		HintColor:      "#336699",
		NewCursorModel: NewSingleRowModel,
		Logger:         logger,
	}.withDefaults()

	assert.Equal(t, DefaultValidationPattern, options.ValidationPattern)
	assert.Equal(t, Color("#336699"), options.HintColor)
	assert.IsType(t, &SingleRowModel{}, options.NewCursorModel())
	assert.Same(t, logger, options.Logger)
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{RuneKey('x'), "x"},
		{RuneKey(' '), "space"},
		{Key{Code: KeyEnter}, "enter"},
		{Key{Code: KeyFunction}, "function"},
		{Key{Code: KeyCode(99)}, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.String())
		})
	}
}
