package hintline

// KeyCode classifies a key event coming from the terminal.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyFunction
)

var keyCodeNames = map[KeyCode]string{
	KeyUnknown:   "unknown",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyTab:       "tab",
	KeySpace:     "space",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyFunction:  "function",
}

func (k KeyCode) String() string {
	if name, ok := keyCodeNames[k]; ok {
		return name
	}
	return "invalid"
}

// Key is a single decoded key press. Rune is only meaningful for KeyRune and
// KeySpace.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns the key event for typing r.
func RuneKey(r rune) Key {
	if r == ' ' {
		return Key{Code: KeySpace, Rune: ' '}
	}
	return Key{Code: KeyRune, Rune: r}
}

func (k Key) String() string {
	if k.Code == KeyRune {
		return string(k.Rune)
	}
	return k.Code.String()
}

// Position is a physical terminal cell. Rows grow downwards; both coordinates
// are zero based.
type Position struct {
	Row int
	Col int
}

// Color is a foreground color understood by the terminal, either an ANSI
// index ("8", "240") or a hex value ("#7f7f7f").
type Color string

// DefaultHintColor is dark gray.
const DefaultHintColor Color = "8"

// KeyReader blocks until the next key event is available. Returning an error
// ends the current ReadLine call with that error.
type KeyReader interface {
	ReadKey() (Key, error)
}

// Screen exposes cursor placement on the terminal.
type Screen interface {
	CursorPosition() (Position, error)
	SetCursorPosition(pos Position) error
	ClearRow(row int) error
	Width() (int, error)
}

// Writer writes text at the current cursor position. WriteColored must leave
// the foreground color as it found it.
type Writer interface {
	Write(s string) error
	WriteColored(s string, c Color) error
	WritePrompt() error
	PromptWidth() int
}

// Terminal is everything the editor needs from the outside world.
type Terminal interface {
	KeyReader
	Screen
	Writer
}

// Analytics receives one entry per committed line: the raw typed buffer, the
// suggestion selected at commit time (empty if none) and the committed value.
type Analytics interface {
	NewEntry(input string, suggestion string, actual string) error
}
