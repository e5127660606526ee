/*
Package maze provides the wall-encoded grid of a rectangular perfect maze.

It defines the `Maze` structure, a dense row-major array of `Cell` values where every
cell records only whether its west and north walls are open. The south and east walls
of a cell belong to its neighbours, so an interior wall is stored exactly once.

The package also turns a maze into drawable wall segments, rasterizes them into an RGBA
image or a PNG stream, verifies the spanning-tree property, and prints an ASCII view.
The entrance is always the top of cell (0,0) and the exit the bottom of cell (W-1,H-1).
*/
package maze

import (
	"fmt"
	"strings"
)

// Maze is a rectangular grid of cells stored in row-major order.
type Maze struct {
	Width  int    // Width of the maze (number of columns)
	Height int    // Height of the maze (number of rows)
	cells  []Cell // Cells indexed by y*Width + x
}

// New creates a maze of the given dimensions with every wall closed.
// Negative dimensions are treated as zero.
func New(width, height int) *Maze {
	width, height = max(width, 0), max(height, 0)
	return &Maze{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// Len returns the number of cells in the maze.
func (m *Maze) Len() int {
	return len(m.cells)
}

// IsEmpty reports whether the maze has no cells.
func (m *Maze) IsEmpty() bool {
	return len(m.cells) == 0
}

// Index converts a column and row into a cell index.
func (m *Maze) Index(x, y int) int {
	return y*m.Width + x
}

// CellMut returns a pointer to the cell at index i.
// It panics if i is out of range.
func (m *Maze) CellMut(i int) *Cell {
	if i < 0 || i >= len(m.cells) {
		panic(fmt.Sprintf("maze: cell index %d out of range [0, %d)", i, len(m.cells)))
	}
	return &m.cells[i]
}

// Cell returns the cell at column x and row y.
// It panics if either coordinate is out of range.
func (m *Maze) Cell(x, y int) Cell {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		panic(fmt.Sprintf("maze: cell (%d, %d) out of range [0, %d)x[0, %d)", x, y, m.Width, m.Height))
	}
	return m.cells[m.Index(x, y)]
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder

	for row := 0; row < m.Height; row++ {
		// North walls of the row
		output.WriteString("+")
		for col := 0; col < m.Width; col++ {
			cell := m.Cell(col, row)
			if cell.NorthOpen() || (row == 0 && col == 0) {
				output.WriteString("   +")
			} else {
				output.WriteString("---+")
			}
		}
		output.WriteString("\n")

		// West walls of the row, closed by the east border
		for col := 0; col < m.Width; col++ {
			if m.Cell(col, row).WestOpen() {
				output.WriteString("    ")
			} else {
				output.WriteString("|   ")
			}
		}
		output.WriteString("|\n")
	}

	// South border with the exit gap under the last cell
	if m.Width > 0 && m.Height > 0 {
		output.WriteString("+" + strings.Repeat("---+", m.Width-1) + "   +\n")
	}

	return output.String()
}
