// Package hintlinetest provides an in-memory hintline.Terminal for tests.
package hintlinetest

import (
	"io"
	"strings"

	"github.com/robottwo/hintline/pkg/hintline"
)

// Run is one write as it reached the terminal. Color is empty for plain
// writes.
type Run struct {
	Text  string
	Color hintline.Color
}

// Terminal replays scripted keys and records what the editor draws on a
// virtual screen. Writes wrap at Cols. The zero value is not usable; call
// New.
type Terminal struct {
	Prompt string
	Cols   int

	// Err is returned once the scripted keys run out. Defaults to io.EOF.
	Err error
	// WriteErr, when set, is returned by every write.
	WriteErr error

	keys []hintline.Key
	read int

	rows map[int][]rune
	pos  hintline.Position

	runs      []Run
	frame     int
	snapshots [][]string
}

func New(prompt string, cols int, keys ...hintline.Key) *Terminal {
	return &Terminal{
		Prompt: prompt,
		Cols:   cols,
		Err:    io.EOF,
		keys:   keys,
		rows:   map[int][]rune{},
	}
}

// Type converts s into key events, one per rune.
func Type(s string) []hintline.Key {
	keys := make([]hintline.Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, hintline.RuneKey(r))
	}
	return keys
}

// Keys builds a key script from key codes.
func Keys(codes ...hintline.KeyCode) []hintline.Key {
	keys := make([]hintline.Key, 0, len(codes))
	for _, c := range codes {
		keys = append(keys, hintline.Key{Code: c})
	}
	return keys
}

// Script concatenates key scripts.
func Script(parts ...[]hintline.Key) []hintline.Key {
	var keys []hintline.Key
	for _, p := range parts {
		keys = append(keys, p...)
	}
	return keys
}

// Push queues more keys.
func (t *Terminal) Push(keys ...hintline.Key) {
	t.keys = append(t.keys, keys...)
}

// MoveTo places the cursor, as if earlier output had left it there.
func (t *Terminal) MoveTo(pos hintline.Position) {
	t.pos = pos
}

func (t *Terminal) ReadKey() (hintline.Key, error) {
	t.snapshots = append(t.snapshots, t.Screen())
	if t.read >= len(t.keys) {
		return hintline.Key{}, t.Err
	}
	key := t.keys[t.read]
	t.read++
	return key, nil
}

func (t *Terminal) CursorPosition() (hintline.Position, error) {
	return t.pos, nil
}

func (t *Terminal) SetCursorPosition(pos hintline.Position) error {
	t.pos = pos
	return nil
}

func (t *Terminal) ClearRow(row int) error {
	delete(t.rows, row)
	return nil
}

func (t *Terminal) Width() (int, error) {
	return t.Cols, nil
}

func (t *Terminal) Write(s string) error {
	return t.record(s, "")
}

func (t *Terminal) WriteColored(s string, c hintline.Color) error {
	return t.record(s, c)
}

func (t *Terminal) WritePrompt() error {
	t.frame = len(t.runs)
	return t.record(t.Prompt, "")
}

func (t *Terminal) PromptWidth() int {
	return len([]rune(t.Prompt))
}

func (t *Terminal) record(s string, c hintline.Color) error {
	if t.WriteErr != nil {
		return t.WriteErr
	}
	if s == "" {
		return nil
	}
	t.runs = append(t.runs, Run{Text: s, Color: c})

	for _, r := range s {
		switch r {
		case '\r':
			t.pos.Col = 0
		case '\n':
			t.pos.Row++
		default:
			t.put(r)
		}
	}
	return nil
}

func (t *Terminal) put(r rune) {
	line := t.rows[t.pos.Row]
	for len(line) <= t.pos.Col {
		line = append(line, ' ')
	}
	line[t.pos.Col] = r
	t.rows[t.pos.Row] = line

	t.pos.Col++
	if t.Cols > 0 && t.pos.Col >= t.Cols {
		t.pos.Col = 0
		t.pos.Row++
	}
}

// Cursor is the current cursor position.
func (t *Terminal) Cursor() hintline.Position {
	return t.pos
}

// Line returns the text on row without trailing blanks.
func (t *Terminal) Line(row int) string {
	return strings.TrimRight(string(t.rows[row]), " ")
}

// Screen returns every row from 0 to the lowest row with text.
func (t *Terminal) Screen() []string {
	last := -1
	for row, line := range t.rows {
		if row > last && strings.TrimSpace(string(line)) != "" {
			last = row
		}
	}
	screen := make([]string, 0, last+1)
	for row := 0; row <= last; row++ {
		screen = append(screen, t.Line(row))
	}
	return screen
}

// Runs returns every write since the terminal was created.
func (t *Terminal) Runs() []Run {
	return append([]Run(nil), t.runs...)
}

// Frame returns the writes of the latest repaint, starting with the prompt.
func (t *Terminal) Frame() []Run {
	return append([]Run(nil), t.runs[t.frame:]...)
}

// Snapshots holds the screen as it was each time a key was requested.
func (t *Terminal) Snapshots() [][]string {
	return t.snapshots
}

// Remaining reports how many scripted keys have not been read yet.
func (t *Terminal) Remaining() int {
	return len(t.keys) - t.read
}
