package hintline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robottwo/hintline/pkg/suggest"
	"go.uber.org/zap"
)

// session is the state of a single ReadLine call.
type session struct {
	editor   *Editor
	validate *regexp.Regexp
	logger   *zap.Logger

	buffer      []rune
	cursor      CursorModel
	suggestions *suggest.List
	selected    *suggest.Suggestion
	render      *renderer

	// typed is false until the user edits the buffer into something
	// non-blank. While it is false Up and Down walk the history, afterwards
	// they cycle through suggestions.
	typed bool
}

func newSession(e *Editor, validate *regexp.Regexp, hintColor Color) *session {
	cursor := e.options.NewCursorModel()
	return &session{
		editor:   e,
		validate: validate,
		logger:   e.logger,
		cursor:   cursor,
		render:   newRenderer(e.term, cursor, hintColor),
	}
}

func (s *session) run() (string, error) {
	if err := s.render.begin(); err != nil {
		return "", err
	}

	for {
		key, err := s.editor.term.ReadKey()
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}

		if s.handle(key) {
			line := s.commitValue()
			if err := s.render.finish(line); err != nil {
				return "", err
			}
			return line, nil
		}

		if err := s.render.paint(s.buffer, s.selected); err != nil {
			return "", err
		}
	}
}

// handle applies one key and reports whether it commits the line.
func (s *session) handle(key Key) bool {
	if key.Code == KeyRune && key.Rune == ' ' {
		key.Code = KeySpace
	}

	switch key.Code {
	case KeyEnter:
		return true

	case KeyRune:
		s.insert(key.Rune)

	case KeySpace:
		if s.selected != nil {
			s.accept()
		} else {
			s.insert(' ')
		}

	case KeyTab:
		if s.selected != nil {
			s.accept()
		}

	case KeyBackspace:
		if off := s.cursor.Offset(); off > 0 {
			s.buffer = append(s.buffer[:off-1:off-1], s.buffer[off:]...)
			s.cursor.Decrement()
			s.cursor.SetLength(len(s.buffer))
		}
		s.edited()

	case KeyDelete:
		if off := s.cursor.Offset(); off < len(s.buffer) {
			s.buffer = append(s.buffer[:off:off], s.buffer[off+1:]...)
			s.cursor.SetLength(len(s.buffer))
		}
		s.edited()

	case KeyUp:
		if s.typed {
			s.selectWith(s.suggestions.Previous)
		} else {
			s.recall(s.editor.history.Previous())
		}

	case KeyDown:
		if s.typed {
			s.selectWith(s.suggestions.Next)
		} else {
			s.recall(s.editor.history.Next())
		}

	case KeyLeft:
		s.cursor.Decrement()

	case KeyRight:
		s.cursor.Increment()

	case KeyHome:
		s.cursor.SetOffset(0)

	case KeyEnd:
		s.cursor.SetOffset(len(s.buffer))

	default:
		// function keys and anything unrecognized are left to the caller's
		// own bindings
		s.logger.Debug("hintline ignoring key", zap.Stringer("key", key.Code))
	}

	return false
}

// insert puts r at the cursor if it passes validation.
func (s *session) insert(r rune) {
	if !s.validate.MatchString(string(r)) {
		return
	}

	off := s.cursor.Offset()
	buffer := make([]rune, 0, len(s.buffer)+1)
	buffer = append(buffer, s.buffer[:off]...)
	buffer = append(buffer, r)
	buffer = append(buffer, s.buffer[off:]...)
	s.buffer = buffer

	s.cursor.SetLength(len(s.buffer))
	s.cursor.Increment()
	s.edited()
}

// accept replaces the buffer with the selected suggestion followed by a space.
func (s *session) accept() {
	s.setBuffer(s.selected.Value + " ")
	s.edited()
}

// recall shows a history entry. It doesn't count as typing, so another Up or
// Down keeps walking the history.
func (s *session) recall(line string) {
	s.setBuffer(line)
	s.suggestions = nil
	s.selected = nil
	s.logger.Debug("hintline recalled history entry",
		zap.String("line", line),
		zap.Int("position", s.editor.history.Position()))
}

func (s *session) setBuffer(text string) {
	s.buffer = []rune(text)
	s.cursor.SetLength(len(s.buffer))
	s.cursor.SetOffset(len(s.buffer))
}

// edited recomputes suggestions after a change made by the user and selects
// the first one.
func (s *session) edited() {
	s.typed = strings.TrimSpace(string(s.buffer)) != ""
	s.suggestions = s.editor.engine.Compute(string(s.buffer))
	s.selectWith(s.suggestions.First)
}

func (s *session) selectWith(move func() (suggest.Suggestion, bool)) {
	if next, ok := move(); ok {
		s.selected = &next
		return
	}
	s.selected = nil
}

// commitValue is the selected suggestion when it differs from what was typed,
// otherwise the typed text without trailing spaces.
func (s *session) commitValue() string {
	input := s.input()
	if s.selected != nil && s.selected.Value != input {
		return s.selected.Value
	}
	return strings.TrimRight(input, " ")
}

func (s *session) input() string {
	return string(s.buffer)
}

func (s *session) selectedValue() string {
	if s.selected == nil {
		return ""
	}
	return s.selected.Value
}
