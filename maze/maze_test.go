package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell(t *testing.T) {
	t.Run("New cell with closed walls", func(t *testing.T) {
		c := NewCell(false, false)
		assert.False(t, c.WestOpen())
		assert.False(t, c.NorthOpen())
	})

	t.Run("New cell keeps each bit apart", func(t *testing.T) {
		assert.True(t, NewCell(true, false).WestOpen())
		assert.False(t, NewCell(true, false).NorthOpen())
		assert.False(t, NewCell(false, true).WestOpen())
		assert.True(t, NewCell(false, true).NorthOpen())
	})

	t.Run("Opening is monotonic", func(t *testing.T) {
		c := NewCell(false, false)
		c.SetNorthOpen()
		c.SetNorthOpen()
		assert.True(t, c.NorthOpen())
		assert.False(t, c.WestOpen())

		c.SetWestOpen()
		assert.Equal(t, NewCell(true, true), c)
	})
}

func TestNew(t *testing.T) {
	m := New(3, 2)
	assert.Equal(t, 3, m.Width)
	assert.Equal(t, 2, m.Height)
	assert.Equal(t, 6, m.Len())
	for i := 0; i < m.Len(); i++ {
		assert.Equal(t, NewCell(false, false), *m.CellMut(i))
	}

	t.Run("Zero area", func(t *testing.T) {
		assert.True(t, New(0, 0).IsEmpty())
		assert.True(t, New(5, 0).IsEmpty())
		assert.True(t, New(-1, 4).IsEmpty())
	})
}

func TestCellMut(t *testing.T) {
	m := New(2, 2)
	m.CellMut(m.Index(1, 1)).SetWestOpen()

	assert.True(t, m.Cell(1, 1).WestOpen())
	assert.False(t, m.Cell(0, 1).WestOpen())
	assert.Equal(t, 3, m.Index(1, 1))

	assert.Panics(t, func() { m.CellMut(4) })
	assert.Panics(t, func() { m.CellMut(-1) })

	t.Run("Coordinates are checked per axis", func(t *testing.T) {
		assert.PanicsWithValue(t, "maze: cell (2, 0) out of range [0, 2)x[0, 2)", func() { m.Cell(2, 0) })
		assert.Panics(t, func() { m.Cell(-1, 1) })
		assert.Panics(t, func() { m.Cell(0, 2) })
	})
}

func TestString(t *testing.T) {
	t.Run("Single cell", func(t *testing.T) {
		expected := "" +
			"+   +\n" +
			"|   |\n" +
			"+   +\n"
		assert.Equal(t, expected, New(1, 1).String())
	})

	t.Run("Two by two", func(t *testing.T) {
		m := New(2, 2)
		m.CellMut(m.Index(1, 0)).SetWestOpen()
		m.CellMut(m.Index(1, 1)).SetNorthOpen()

		expected := "" +
			"+   +---+\n" +
			"|       |\n" +
			"+   +   +\n" +
			"|   |   |\n" +
			"+---+   +\n"
		assert.Equal(t, expected, m.String())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", New(0, 0).String())
	})
}
