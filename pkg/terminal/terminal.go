// Package terminal implements hintline.Terminal for ANSI terminals. Keys are
// decoded by a renderer-less bubbletea program and output goes through
// termenv, with the cursor tracked relative to the row the terminal was
// opened on.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/termenv"
	"github.com/robottwo/hintline/pkg/hintline"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal size can't be queried.
const DefaultWidth = 80

type Options struct {
	Prompt string
	// PromptColor colors the prompt. Empty leaves it as is, which also keeps
	// any escape sequences already in Prompt.
	PromptColor hintline.Color
	KeyMap      KeyMap
	Logger      *zap.Logger
}

func NewOptions() Options {
	return Options{
		KeyMap: DefaultKeyMap,
		Logger: zap.NewNop(),
	}
}

// Terminal is a hintline.Terminal on the process's stdin and stdout.
type Terminal struct {
	out    *termenv.Output
	style  *lipgloss.Renderer
	keys   *translator
	logger *zap.Logger

	prompt      string
	promptWidth int
	size        func() (int, error)
	cols        int

	row         int
	col         int
	deepest     int
	wrapPending bool

	msgs    chan tea.KeyMsg
	pending []hintline.Key
	done    chan struct{}
	exited  chan struct{}
	runErr  error

	program   *tea.Program
	fd        int
	state     *term.State
	closeOnce sync.Once
}

// Open puts stdin into raw mode and starts decoding keys. The caller must
// Close the terminal to restore the previous mode.
func Open(options Options) (*Terminal, error) {
	caps := DetectCapabilities()
	if caps.IsDumb {
		return nil, ErrDumbTerminal
	}

	inFd, outFd := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	if !term.IsTerminal(inFd) || !term.IsTerminal(outFd) {
		return nil, ErrNotATerminal
	}

	state, err := term.MakeRaw(inFd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	output := termenv.NewOutput(os.Stdout, termenv.WithProfile(caps.Profile))
	t := newTerminal(output, func() (int, error) {
		width, _, err := term.GetSize(outFd)
		return width, err
	}, options)
	t.fd = inFd
	t.state = state

	t.logger.Debug("terminal opened",
		zap.String("term", caps.Term),
		zap.String("termProgram", caps.TermProgram),
		zap.String("profile", profileName(caps.Profile)),
		zap.Bool("ssh", caps.IsSSH),
		zap.Bool("tmux", caps.IsTmux),
		zap.Int("width", t.cols))

	t.program = tea.NewProgram(
		decoder{msgs: t.msgs, done: t.done},
		tea.WithInput(os.Stdin),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	go t.decode()

	return t, nil
}

func newTerminal(output *termenv.Output, size func() (int, error), options Options) *Terminal {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if len(options.KeyMap.Commit.Keys()) == 0 {
		options.KeyMap = DefaultKeyMap
	}

	style := lipgloss.NewRenderer(output)
	style.SetColorProfile(output.Profile)

	prompt := options.Prompt
	if options.PromptColor != "" {
		prompt = style.NewStyle().Foreground(lipgloss.Color(options.PromptColor)).Render(prompt)
	}

	t := &Terminal{
		out:         output,
		style:       style,
		keys:        newTranslator(options.KeyMap),
		logger:      options.Logger,
		prompt:      prompt,
		promptWidth: ansi.PrintableRuneWidth(prompt),
		size:        size,
		msgs:        make(chan tea.KeyMsg),
		done:        make(chan struct{}),
		exited:      make(chan struct{}),
	}
	t.cols, _ = t.Width()
	return t
}

func (t *Terminal) decode() {
	defer close(t.exited)
	if _, err := t.program.Run(); err != nil {
		t.runErr = err
		t.logger.Debug("key decoder stopped", zap.Error(err))
	}
}

// Close stops decoding keys and restores the terminal mode. It is safe to
// call more than once.
func (t *Terminal) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		if t.program != nil {
			t.program.Kill()
			<-t.exited
		}
		if t.state != nil {
			if restoreErr := term.Restore(t.fd, t.state); restoreErr != nil {
				err = fmt.Errorf("restore terminal: %w", restoreErr)
			}
		}
	})
	return err
}

// ReadKey blocks until a key is available. Ctrl+C yields ErrInterrupted and
// Ctrl+D yields io.EOF.
func (t *Terminal) ReadKey() (hintline.Key, error) {
	for len(t.pending) == 0 {
		select {
		case msg := <-t.msgs:
			keys, err := t.keys.translate(msg)
			if err != nil {
				return hintline.Key{}, err
			}
			t.pending = keys
		case <-t.done:
			return hintline.Key{}, ErrClosed
		case <-t.exited:
			if t.runErr != nil {
				return hintline.Key{}, fmt.Errorf("key decoder: %w", t.runErr)
			}
			return hintline.Key{}, io.EOF
		}
	}

	key := t.pending[0]
	t.pending = t.pending[1:]
	return key, nil
}

// CursorPosition returns the tracked position. Row 0 is the row the terminal
// was opened on.
func (t *Terminal) CursorPosition() (hintline.Position, error) {
	return hintline.Position{Row: t.row, Col: t.col}, nil
}

func (t *Terminal) SetCursorPosition(pos hintline.Position) error {
	var seq strings.Builder
	switch {
	case pos.Row < t.row:
		fmt.Fprintf(&seq, termenv.CSI+termenv.CursorUpSeq, t.row-pos.Row)
	case pos.Row > t.row:
		if n := min(pos.Row, t.deepest) - t.row; n > 0 {
			fmt.Fprintf(&seq, termenv.CSI+termenv.CursorDownSeq, n)
		}
		// rows below the deepest one reached may not exist yet; a newline
		// scrolls when needed where cursor down would stop at the bottom
		for row := max(t.row, t.deepest); row < pos.Row; row++ {
			seq.WriteString("\n")
		}
	}
	seq.WriteString("\r")
	if pos.Col > 0 {
		fmt.Fprintf(&seq, termenv.CSI+termenv.CursorForwardSeq, pos.Col)
	}

	if _, err := t.out.WriteString(seq.String()); err != nil {
		return err
	}

	t.row = pos.Row
	t.col = pos.Col
	t.deepest = max(t.deepest, t.row)
	t.wrapPending = false
	return nil
}

func (t *Terminal) ClearRow(row int) error {
	if row != t.row {
		if err := t.SetCursorPosition(hintline.Position{Row: row, Col: t.col}); err != nil {
			return err
		}
	}
	_, err := t.out.WriteString(termenv.CSI + termenv.EraseEntireLineSeq)
	return err
}

// Width returns the terminal width in cells, DefaultWidth if it can't be
// determined.
func (t *Terminal) Width() (int, error) {
	width, err := t.size()
	if err != nil || width <= 0 {
		t.logger.Debug("terminal width unavailable", zap.Int("width", width), zap.Error(err))
		width = DefaultWidth
	}
	t.cols = width
	return width, nil
}

func (t *Terminal) Write(s string) error {
	if _, err := t.out.WriteString(s); err != nil {
		return err
	}
	t.advance(s)
	return nil
}

// WriteColored writes s in color c. The lipgloss style resets the color at
// the end of s.
func (t *Terminal) WriteColored(s string, c hintline.Color) error {
	styled := t.style.NewStyle().Foreground(lipgloss.Color(c)).Render(s)
	if _, err := t.out.WriteString(styled); err != nil {
		return err
	}
	t.advance(s)
	return nil
}

func (t *Terminal) WritePrompt() error {
	if _, err := t.out.WriteString(t.prompt); err != nil {
		return err
	}
	for range t.promptWidth {
		t.advanceCell(1)
	}
	return nil
}

func (t *Terminal) PromptWidth() int {
	return t.promptWidth
}

// advance moves the tracked cursor the way the terminal moves it when s is
// printed.
func (t *Terminal) advance(s string) {
	for _, r := range s {
		switch r {
		case '\r':
			t.col = 0
			t.wrapPending = false
		case '\n':
			t.row++
			t.deepest = max(t.deepest, t.row)
			t.wrapPending = false
		default:
			if w := runewidth.RuneWidth(r); w > 0 {
				t.advanceCell(w)
			}
		}
	}
}

// advanceCell accounts for one printed character of width w. After the last
// column the cursor stays put until the next character wraps it.
func (t *Terminal) advanceCell(w int) {
	width := max(1, t.cols)
	if t.wrapPending || t.col+w > width {
		t.row++
		t.col = 0
		t.deepest = max(t.deepest, t.row)
		t.wrapPending = false
	}

	t.col += w
	if t.col >= width {
		t.col = width - 1
		t.wrapPending = true
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}

// decoder forwards key messages from the bubbletea event loop to ReadKey.
type decoder struct {
	msgs chan<- tea.KeyMsg
	done <-chan struct{}
}

func (d decoder) Init() tea.Cmd {
	return nil
}

func (d decoder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		select {
		case d.msgs <- keyMsg:
		case <-d.done:
			return d, tea.Quit
		}
	}
	return d, nil
}

func (d decoder) View() string {
	return ""
}
