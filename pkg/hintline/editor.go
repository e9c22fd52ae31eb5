// Package hintline reads single lines from a terminal while offering inline
// suggestions from a fixed set of hints and recalling previously committed
// lines.
package hintline

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/robottwo/hintline/pkg/suggest"
	"go.uber.org/zap"
)

// ErrInvalidPattern is returned when the validation pattern does not compile.
var ErrInvalidPattern = errors.New("invalid validation pattern")

// Editor reads lines against one hint corpus. History is kept across ReadLine
// calls. An Editor is not safe for concurrent use.
type Editor struct {
	engine  *suggest.Engine
	history *History
	term    Terminal
	options Options
	logger  *zap.Logger
}

// New creates an editor over corpus. Zero fields in options fall back to the
// values from NewOptions.
func New(corpus []string, term Terminal, options Options) *Editor {
	options = options.withDefaults()
	return &Editor{
		engine:  suggest.NewEngine(corpus),
		history: NewHistory(),
		term:    term,
		options: options,
		logger:  options.Logger,
	}
}

// History returns the editor's history.
func (e *Editor) History() *History {
	return e.history
}

// ReadLine reads a line with the validation pattern and hint color from the
// editor's options.
func (e *Editor) ReadLine() (string, error) {
	return e.ReadHintedLine(e.options.ValidationPattern, e.options.HintColor)
}

// ReadHintedLine blocks until the user commits a line and returns it. An
// empty pattern or color selects the defaults. Errors from the terminal end
// the call and are returned wrapped; io.EOF from the key reader can be
// checked with errors.Is.
func (e *Editor) ReadHintedLine(validationPattern string, hintColor Color) (string, error) {
	if validationPattern == "" {
		validationPattern = DefaultValidationPattern
	}
	if hintColor == "" {
		hintColor = DefaultHintColor
	}

	validate, err := regexp.Compile(validationPattern)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidPattern, validationPattern, err)
	}

	s := newSession(e, validate, hintColor)
	line, err := s.run()
	if err != nil {
		e.logger.Debug("hintline read aborted", zap.Error(err))
		return "", err
	}

	e.history.Record(line)
	e.logger.Debug(
		"hintline committed line",
		zap.String("line", line),
		zap.String("input", s.input()),
		zap.Int("historySize", e.history.Len()),
	)

	if e.options.Analytics != nil {
		if err := e.options.Analytics.NewEntry(s.input(), s.selectedValue(), line); err != nil {
			e.logger.Error("failed to log analytics entry", zap.Error(err))
		}
	}

	return line, nil
}
