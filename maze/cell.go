package maze

const (
	westOpenBit  uint8 = 1 << iota // westOpenBit marks the west wall as carved.
	northOpenBit                   // northOpenBit marks the north wall as carved.
)

// Cell represents a single cell in a maze grid.
// A cell owns only its north and west walls: its south wall is the north wall
// of the cell below, and its east wall is the west wall of the cell to the right.
type Cell struct {
	bits uint8
}

// NewCell creates a cell with the given wall state.
func NewCell(westOpen, northOpen bool) Cell {
	var c Cell
	if westOpen {
		c.bits |= westOpenBit
	}
	if northOpen {
		c.bits |= northOpenBit
	}
	return c
}

// WestOpen returns true if the west wall of the cell has been carved.
func (c Cell) WestOpen() bool {
	return c.bits&westOpenBit != 0
}

// NorthOpen returns true if the north wall of the cell has been carved.
func (c Cell) NorthOpen() bool {
	return c.bits&northOpenBit != 0
}

// SetWestOpen carves the west wall. Walls are never closed again.
func (c *Cell) SetWestOpen() {
	c.bits |= westOpenBit
}

// SetNorthOpen carves the north wall. Walls are never closed again.
func (c *Cell) SetNorthOpen() {
	c.bits |= northOpenBit
}
