package wilson

import "strings"

// String draws the generator grid, two characters wide and two lines high per cell.
// Walls are '-' and '|', carved walls are blank, empty cells show 'X' and cells on the
// current walk show the direction they were left in.
func (g *Generator) String() string {
	var b strings.Builder
	b.Grow((2*g.width + 2) * (2*g.height + 1))

	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			c := g.cells[row*g.width+col]
			b.WriteByte('-')
			if c.isInMaze() && c.walls.NorthOpen() {
				b.WriteByte(' ')
			} else {
				b.WriteByte('-')
			}
		}
		b.WriteString("-\n")

		for col := 0; col < g.width; col++ {
			c := g.cells[row*g.width+col]
			if c.isInMaze() && c.walls.WestOpen() {
				b.WriteByte(' ')
			} else {
				b.WriteByte('|')
			}

			switch c.state {
			case empty:
				b.WriteByte('X')
			case walk:
				b.WriteByte(c.dir.arrow())
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\n")
	}

	b.WriteString(strings.Repeat("--", g.width))
	b.WriteString("-\n")
	return b.String()
}
