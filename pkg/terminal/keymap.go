package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/runeutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robottwo/hintline/pkg/hintline"
)

// KeyMap is the set of key bindings translated into editor keys.
type KeyMap struct {
	Commit                  key.Binding
	DeleteCharacterBackward key.Binding
	DeleteCharacterForward  key.Binding
	Complete                key.Binding
	Space                   key.Binding
	PrevValue               key.Binding
	NextValue               key.Binding
	CharacterBackward       key.Binding
	CharacterForward        key.Binding
	LineStart               key.Binding
	LineEnd                 key.Binding
	Function                key.Binding
	Interrupt               key.Binding
	EndOfInput              key.Binding
}

// DefaultKeyMap mirrors the usual readline bindings.
var DefaultKeyMap = KeyMap{
	Commit:                  key.NewBinding(key.WithKeys("enter")),
	DeleteCharacterBackward: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	DeleteCharacterForward:  key.NewBinding(key.WithKeys("delete")),
	Complete:                key.NewBinding(key.WithKeys("tab")),
	Space:                   key.NewBinding(key.WithKeys(" ", "space")),
	PrevValue:               key.NewBinding(key.WithKeys("up", "ctrl+p")),
	NextValue:               key.NewBinding(key.WithKeys("down", "ctrl+n")),
	CharacterBackward:       key.NewBinding(key.WithKeys("left", "ctrl+b")),
	CharacterForward:        key.NewBinding(key.WithKeys("right", "ctrl+f")),
	LineStart:               key.NewBinding(key.WithKeys("home", "ctrl+a")),
	LineEnd:                 key.NewBinding(key.WithKeys("end", "ctrl+e")),
	Function:                key.NewBinding(key.WithKeys(functionKeys()...)),
	Interrupt:               key.NewBinding(key.WithKeys("ctrl+c")),
	EndOfInput:              key.NewBinding(key.WithKeys("ctrl+d")),
}

func functionKeys() []string {
	keys := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		keys = append(keys, fmt.Sprintf("f%d", i))
	}
	return keys
}

// translator turns decoded key messages into editor keys.
type translator struct {
	keyMap KeyMap
	rsan   runeutil.Sanitizer
}

func newTranslator(keyMap KeyMap) *translator {
	return &translator{
		keyMap: keyMap,
		rsan:   runeutil.NewSanitizer(runeutil.ReplaceTabs(" "), runeutil.ReplaceNewlines(" ")),
	}
}

// translate maps one key message to zero or more editor keys. Pasted text
// arrives as a single message and expands to one key per rune.
func (t *translator) translate(msg tea.KeyMsg) ([]hintline.Key, error) {
	switch {
	case key.Matches(msg, t.keyMap.Interrupt):
		return nil, ErrInterrupted
	case key.Matches(msg, t.keyMap.EndOfInput):
		return nil, io.EOF
	case key.Matches(msg, t.keyMap.Commit):
		return single(hintline.KeyEnter), nil
	case key.Matches(msg, t.keyMap.DeleteCharacterBackward):
		return single(hintline.KeyBackspace), nil
	case key.Matches(msg, t.keyMap.DeleteCharacterForward):
		return single(hintline.KeyDelete), nil
	case key.Matches(msg, t.keyMap.Complete):
		return single(hintline.KeyTab), nil
	case key.Matches(msg, t.keyMap.Space):
		return []hintline.Key{hintline.RuneKey(' ')}, nil
	case key.Matches(msg, t.keyMap.PrevValue):
		return single(hintline.KeyUp), nil
	case key.Matches(msg, t.keyMap.NextValue):
		return single(hintline.KeyDown), nil
	case key.Matches(msg, t.keyMap.CharacterBackward):
		return single(hintline.KeyLeft), nil
	case key.Matches(msg, t.keyMap.CharacterForward):
		return single(hintline.KeyRight), nil
	case key.Matches(msg, t.keyMap.LineStart):
		return single(hintline.KeyHome), nil
	case key.Matches(msg, t.keyMap.LineEnd):
		return single(hintline.KeyEnd), nil
	case key.Matches(msg, t.keyMap.Function):
		return single(hintline.KeyFunction), nil
	}

	if msg.Type != tea.KeyRunes || msg.Alt {
		return single(hintline.KeyUnknown), nil
	}

	runes := t.rsan.Sanitize(msg.Runes)
	keys := make([]hintline.Key, 0, len(runes))
	for _, r := range runes {
		keys = append(keys, hintline.RuneKey(r))
	}
	return keys, nil
}

func single(code hintline.KeyCode) []hintline.Key {
	return []hintline.Key{{Code: code}}
}
