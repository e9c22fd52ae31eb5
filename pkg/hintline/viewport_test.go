package hintline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappingModelPosition(t *testing.T) {
	tests := []struct {
		name     string
		origin   Position
		prompt   int
		width    int
		offset   int
		expected Position
	}{
		{"start of line", Position{}, 2, 10, 0, Position{Row: 0, Col: 2}},
		{"inside first row", Position{}, 2, 10, 5, Position{Row: 0, Col: 7}},
		{"exactly at the edge", Position{}, 2, 10, 8, Position{Row: 1, Col: 0}},
		{"second row", Position{}, 2, 10, 11, Position{Row: 1, Col: 3}},
		{"third row", Position{}, 2, 10, 25, Position{Row: 2, Col: 7}},
		{"origin below the top", Position{Row: 4}, 3, 20, 20, Position{Row: 5, Col: 3}},
		{"zero width acts like one", Position{}, 0, 0, 3, Position{Row: 3, Col: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWrappingModel()
			m.Reset(tt.origin, tt.prompt, tt.width)
			m.SetLength(tt.offset)
			m.SetOffset(tt.offset)
			assert.Equal(t, tt.expected, m.Position())
		})
	}
}

func TestWrappingModelRows(t *testing.T) {
	tests := []struct {
		name  string
		cells int
		last  int
	}{
		{"prompt only", 0, 0},
		{"fills the first row", 8, 0},
		{"one past the first row", 9, 1},
		{"fills two rows", 18, 1},
		{"three rows", 19, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWrappingModel()
			m.Reset(Position{Row: 2}, 2, 10)

			first, last := m.Rows(tt.cells)
			assert.Equal(t, 2, first)
			assert.Equal(t, 2+tt.last, last)
		})
	}

	t.Run("empty prompt and buffer", func(t *testing.T) {
		m := NewWrappingModel()
		m.Reset(Position{Row: 1}, 0, 10)
		first, last := m.Rows(0)
		assert.Equal(t, 1, first)
		assert.Equal(t, 1, last)
	})
}

func TestSingleRowModel(t *testing.T) {
	m := NewSingleRowModel()
	m.Reset(Position{Row: 3}, 2, 10)
	m.SetLength(30)
	m.SetOffset(25)

	assert.Equal(t, Position{Row: 3, Col: 27}, m.Position())
	assert.Equal(t, Position{Row: 3, Col: 12}, m.PositionOf(10))

	first, last := m.Rows(30)
	assert.Equal(t, 3, first)
	assert.Equal(t, 3, last)
}

func TestCursorModelClamping(t *testing.T) {
	models := map[string]func() CursorModel{
		"wrapping":   NewWrappingModel,
		"single row": NewSingleRowModel,
	}

	for name, newModel := range models {
		t.Run(name, func(t *testing.T) {
			m := newModel()
			m.Reset(Position{}, 2, 80)

			m.Decrement()
			assert.Equal(t, 0, m.Offset())

			m.Increment()
			assert.Equal(t, 0, m.Offset(), "offset can't pass the buffer length")

			m.SetLength(3)
			m.SetOffset(10)
			assert.Equal(t, 3, m.Offset())

			m.SetOffset(-4)
			assert.Equal(t, 0, m.Offset())

			m.SetOffset(3)
			m.SetLength(1)
			assert.Equal(t, 1, m.Offset(), "shrinking pulls the offset back")
			assert.Equal(t, 1, m.Length())

			m.Reset(Position{Row: 5}, 2, 80)
			assert.Equal(t, 0, m.Offset())
			assert.Equal(t, 0, m.Length())
		})
	}
}

func TestWrappingModelWidthChange(t *testing.T) {
	m := NewWrappingModel()
	m.Reset(Position{}, 2, 10)
	m.SetLength(10)
	m.SetOffset(10)
	assert.Equal(t, Position{Row: 1, Col: 2}, m.Position())

	m.SetWidth(20)
	assert.Equal(t, Position{Row: 0, Col: 12}, m.Position())
}
