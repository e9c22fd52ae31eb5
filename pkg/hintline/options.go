package hintline

import "go.uber.org/zap"

// DefaultValidationPattern accepts every character.
const DefaultValidationPattern = ".*"

type Options struct {
	// ValidationPattern is matched against every typed character. Characters
	// that don't match are consumed but never inserted.
	ValidationPattern string
	HintColor         Color
	// NewCursorModel creates the cursor model for each ReadLine call.
	// Defaults to NewWrappingModel.
	NewCursorModel func() CursorModel
	Analytics      Analytics
	Logger         *zap.Logger
}

func NewOptions() Options {
	return Options{
		ValidationPattern: DefaultValidationPattern,
		HintColor:         DefaultHintColor,
		NewCursorModel:    NewWrappingModel,
		Logger:            zap.NewNop(),
	}
}

func (o Options) withDefaults() Options {
	defaults := NewOptions()
	if o.ValidationPattern == "" {
		o.ValidationPattern = defaults.ValidationPattern
	}
	if o.HintColor == "" {
		o.HintColor = defaults.HintColor
	}
	if o.NewCursorModel == nil {
		o.NewCursorModel = defaults.NewCursorModel
	}
	if o.Logger == nil {
		o.Logger = defaults.Logger
	}
	return o
}
