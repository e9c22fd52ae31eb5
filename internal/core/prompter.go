package core

import (
	"github.com/robottwo/hintline/pkg/hintline"
)

// UserPrompter reads one line from the user.
type UserPrompter interface {
	Prompt(validationPattern string, hintColor hintline.Color) (string, error)
}

// DefaultUserPrompter reads lines with a hintline editor.
type DefaultUserPrompter struct {
	Editor *hintline.Editor
}

func (p DefaultUserPrompter) Prompt(validationPattern string, hintColor hintline.Color) (string, error) {
	return p.Editor.ReadHintedLine(validationPattern, hintColor)
}
