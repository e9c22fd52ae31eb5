package terminal

import "errors"

var (
	// ErrDumbTerminal indicates the terminal doesn't support escape sequences.
	ErrDumbTerminal = errors.New("dumb terminal: no escape sequence support")

	// ErrNotATerminal indicates stdin or stdout is not connected to a terminal.
	ErrNotATerminal = errors.New("not connected to a terminal")

	// ErrInterrupted is returned from ReadKey when the user presses Ctrl+C.
	ErrInterrupted = errors.New("interrupted by user")

	// ErrClosed is returned when the terminal is used after Close.
	ErrClosed = errors.New("terminal closed")
)
