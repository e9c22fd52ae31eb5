package hintline

// CursorModel maps the logical cursor offset inside the edit buffer to a
// physical terminal position. The logical offset is the source of truth and
// always stays within [0, Length()].
type CursorModel interface {
	// Reset starts a new line whose prompt begins at column 0 of origin.Row.
	Reset(origin Position, promptWidth, termWidth int)
	SetWidth(termWidth int)
	// SetLength updates the buffer length, pulling the offset back if needed.
	SetLength(n int)
	SetOffset(n int)
	Increment()
	Decrement()
	Offset() int
	Length() int
	// Position is the physical position of the logical offset.
	Position() Position
	// PositionOf is the physical position right after prompt + cells
	// characters.
	PositionOf(cells int) Position
	// Rows returns the first and last row occupied by the prompt followed by
	// cells characters.
	Rows(cells int) (first, last int)
}

// offsetState is the clamped logical offset shared by every model.
type offsetState struct {
	startRow    int
	promptWidth int
	width       int
	offset      int
	length      int
}

func (s *offsetState) Reset(origin Position, promptWidth, termWidth int) {
	s.startRow = origin.Row
	s.promptWidth = max(0, promptWidth)
	s.offset = 0
	s.length = 0
	s.SetWidth(termWidth)
}

func (s *offsetState) SetWidth(termWidth int) {
	s.width = max(1, termWidth)
}

func (s *offsetState) SetLength(n int) {
	s.length = max(0, n)
	s.offset = clamp(s.offset, 0, s.length)
}

func (s *offsetState) SetOffset(n int) {
	s.offset = clamp(n, 0, s.length)
}

func (s *offsetState) Increment() {
	s.SetOffset(s.offset + 1)
}

func (s *offsetState) Decrement() {
	s.SetOffset(s.offset - 1)
}

func (s *offsetState) Offset() int {
	return s.offset
}

func (s *offsetState) Length() int {
	return s.length
}

// WrappingModel lets the line continue on the following rows once it reaches
// the terminal width.
type WrappingModel struct {
	offsetState
}

func NewWrappingModel() CursorModel {
	return &WrappingModel{offsetState{width: 1}}
}

func (m *WrappingModel) Position() Position {
	return m.PositionOf(m.offset)
}

func (m *WrappingModel) PositionOf(cells int) Position {
	abs := m.promptWidth + max(0, cells)
	return Position{
		Row: m.startRow + abs/m.width,
		Col: abs % m.width,
	}
}

func (m *WrappingModel) Rows(cells int) (int, int) {
	abs := m.promptWidth + max(0, cells)
	if abs == 0 {
		return m.startRow, m.startRow
	}
	return m.startRow, m.startRow + (abs-1)/m.width
}

// SingleRowModel keeps everything on the start row and lets the terminal deal
// with overflow. It mirrors the simplest console behavior and is handy on
// terminals that report a bogus width.
type SingleRowModel struct {
	offsetState
}

func NewSingleRowModel() CursorModel {
	return &SingleRowModel{offsetState{width: 1}}
}

func (m *SingleRowModel) Position() Position {
	return m.PositionOf(m.offset)
}

func (m *SingleRowModel) PositionOf(cells int) Position {
	return Position{Row: m.startRow, Col: m.promptWidth + max(0, cells)}
}

func (m *SingleRowModel) Rows(int) (int, int) {
	return m.startRow, m.startRow
}

func clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}
