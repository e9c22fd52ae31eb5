package hintline

import (
	"fmt"

	"github.com/robottwo/hintline/pkg/suggest"
)

// run is a stretch of text written in one color. An empty color means the
// terminal's normal foreground.
type run struct {
	text  string
	color Color
}

// renderer repaints the prompt, the buffer and the selected suggestion after
// every key. It remembers the last row it painted so a shrinking line doesn't
// leave stale rows behind.
type renderer struct {
	term      Terminal
	cursor    CursorModel
	hintColor Color

	startRow int
	painted  int
}

func newRenderer(term Terminal, cursor CursorModel, hintColor Color) *renderer {
	return &renderer{
		term:      term,
		cursor:    cursor,
		hintColor: hintColor,
	}
}

// begin anchors the line at the row the terminal cursor is on and draws the
// prompt.
func (r *renderer) begin() error {
	pos, err := r.term.CursorPosition()
	if err != nil {
		return fmt.Errorf("query cursor position: %w", err)
	}
	width, err := r.term.Width()
	if err != nil {
		return fmt.Errorf("query terminal width: %w", err)
	}

	r.startRow = pos.Row
	r.painted = pos.Row
	r.cursor.Reset(Position{Row: pos.Row}, r.term.PromptWidth(), width)

	return r.paint(nil, nil)
}

// paint redraws the whole line. selected is nil when no suggestion is active.
func (r *renderer) paint(buffer []rune, selected *suggest.Suggestion) error {
	var decoration []run
	if selected != nil && selected.Value != string(buffer) {
		decoration = r.decorate(*selected)
	}

	cells := len(buffer)
	for _, d := range decoration {
		cells += len([]rune(d.text))
	}

	if err := r.redraw(string(buffer), decoration, cells); err != nil {
		return err
	}

	if err := r.term.SetCursorPosition(r.cursor.Position()); err != nil {
		return fmt.Errorf("move cursor: %w", err)
	}
	return nil
}

// finish paints the committed line without decoration and leaves the cursor
// at the start of a fresh row.
func (r *renderer) finish(line string) error {
	r.cursor.SetLength(len([]rune(line)))
	r.cursor.SetOffset(len([]rune(line)))

	if err := r.redraw(line, nil, len([]rune(line))); err != nil {
		return err
	}
	if err := r.term.Write("\r\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (r *renderer) redraw(text string, decoration []run, cells int) error {
	width, err := r.term.Width()
	if err != nil {
		return fmt.Errorf("query terminal width: %w", err)
	}
	r.cursor.SetWidth(width)

	first, last := r.cursor.Rows(cells)
	if err := r.clear(first, max(last, r.painted)); err != nil {
		return err
	}
	r.painted = last

	if err := r.term.WritePrompt(); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}
	if text != "" {
		if err := r.term.Write(text); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	for _, d := range decoration {
		if err := r.write(d); err != nil {
			return err
		}
	}
	return nil
}

// clear blanks rows bottom-up and leaves the cursor at column 0 of first.
func (r *renderer) clear(first, last int) error {
	for row := last; row >= first; row-- {
		if err := r.term.SetCursorPosition(Position{Row: row}); err != nil {
			return fmt.Errorf("move cursor: %w", err)
		}
		if err := r.term.ClearRow(row); err != nil {
			return fmt.Errorf("clear row %d: %w", row, err)
		}
	}
	return nil
}

func (r *renderer) write(d run) error {
	var err error
	if d.color == "" {
		err = r.term.Write(d.text)
	} else {
		err = r.term.WriteColored(d.text, d.color)
	}
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// decorate splits " (value)" into runs: highlighted runes in the normal color
// and everything else in the hint color.
func (r *renderer) decorate(s suggest.Suggestion) []run {
	runs := []run{{text: " (", color: r.hintColor}}
	for i, ch := range []rune(s.Value) {
		color := r.hintColor
		if s.IsHighlighted(i) {
			color = ""
		}
		last := &runs[len(runs)-1]
		if last.color == color {
			last.text += string(ch)
			continue
		}
		runs = append(runs, run{text: string(ch), color: color})
	}

	last := &runs[len(runs)-1]
	if last.color == r.hintColor {
		last.text += ")"
	} else {
		runs = append(runs, run{text: ")", color: r.hintColor})
	}
	return runs
}
