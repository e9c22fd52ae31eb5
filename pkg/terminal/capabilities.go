package terminal

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// Capabilities describes what the attached terminal can do, based on the
// environment.
type Capabilities struct {
	Term        string // TERM environment variable
	TermProgram string // TERM_PROGRAM environment variable

	IsSSH    bool
	IsTmux   bool
	IsScreen bool
	IsDumb   bool

	// Profile is the richest color profile the terminal is expected to
	// handle.
	Profile termenv.Profile
}

// DetectCapabilities inspects the process environment.
func DetectCapabilities() Capabilities {
	return detectCapabilities(os.Getenv)
}

func detectCapabilities(getenv func(string) string) Capabilities {
	term := getenv("TERM")
	caps := Capabilities{
		Term:        term,
		TermProgram: getenv("TERM_PROGRAM"),
		IsSSH:       getenv("SSH_TTY") != "" || getenv("SSH_CONNECTION") != "",
		IsTmux:      getenv("TMUX") != "",
		IsScreen:    getenv("STY") != "",
		IsDumb:      term == "dumb",
	}
	caps.Profile = detectProfile(caps, getenv)
	return caps
}

func detectProfile(caps Capabilities, getenv func(string) string) termenv.Profile {
	if caps.IsDumb || getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}

	colorTerm := strings.ToLower(getenv("COLORTERM"))
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return termenv.TrueColor
	}

	switch strings.ToLower(caps.TermProgram) {
	case "iterm.app", "wezterm", "vscode", "ghostty":
		return termenv.TrueColor
	case "apple_terminal":
		return termenv.ANSI256
	}

	term := strings.ToLower(caps.Term)
	switch {
	case strings.Contains(term, "truecolor") || strings.Contains(term, "direct"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	case strings.HasPrefix(term, "xterm"),
		strings.HasPrefix(term, "screen"),
		strings.HasPrefix(term, "tmux"),
		strings.HasPrefix(term, "rxvt"),
		strings.HasPrefix(term, "linux"),
		strings.Contains(term, "color"):
		return termenv.ANSI
	}

	// tmux and screen pass colors through
	if caps.IsTmux || caps.IsScreen {
		return termenv.ANSI256
	}
	return termenv.ANSI
}
