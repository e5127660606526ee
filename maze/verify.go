package maze

import (
	"errors"
	"fmt"

	"github.com/gammazero/deque"
)

// Verification errors.
var (
	ErrBorderOpen   = errors.New("wall on the maze border is open")
	ErrEdgeCount    = errors.New("wrong number of open walls")
	ErrDisconnected = errors.New("maze is not connected")
)

// OpenEdges counts the carved interior walls.
func (m *Maze) OpenEdges() int {
	edges := 0
	for _, cell := range m.cells {
		if cell.WestOpen() {
			edges++
		}
		if cell.NorthOpen() {
			edges++
		}
	}
	return edges
}

// Neighbors returns the indexes of the cells reachable from cell i through one open wall.
func (m *Maze) Neighbors(i int) []int {
	cell := *m.CellMut(i)
	x, y := i%m.Width, i/m.Width

	neighbors := make([]int, 0, 4)
	if y > 0 && cell.NorthOpen() {
		neighbors = append(neighbors, i-m.Width)
	}
	if x > 0 && cell.WestOpen() {
		neighbors = append(neighbors, i-1)
	}
	if y < m.Height-1 && m.cells[i+m.Width].NorthOpen() {
		neighbors = append(neighbors, i+m.Width)
	}
	if x < m.Width-1 && m.cells[i+1].WestOpen() {
		neighbors = append(neighbors, i+1)
	}
	return neighbors
}

// Validate checks that the open walls form a spanning tree of the grid: no border wall
// is open, exactly Len()-1 walls are open and every cell is reachable from cell 0.
// An empty maze is trivially valid.
func (m *Maze) Validate() error {
	if m.IsEmpty() {
		return nil
	}

	for i, cell := range m.cells {
		x, y := i%m.Width, i/m.Width
		if x == 0 && cell.WestOpen() {
			return fmt.Errorf("%w: west wall of (%d,%d)", ErrBorderOpen, x, y)
		}
		if y == 0 && cell.NorthOpen() {
			return fmt.Errorf("%w: north wall of (%d,%d)", ErrBorderOpen, x, y)
		}
	}

	if edges := m.OpenEdges(); edges != m.Len()-1 {
		return fmt.Errorf("%w: got %d, want %d", ErrEdgeCount, edges, m.Len()-1)
	}

	visited := make([]bool, m.Len())
	visited[0] = true
	reached := 1

	var queue deque.Deque
	queue.PushBack(0)
	for queue.Len() > 0 {
		idx := queue.PopFront().(int)
		for _, nbr := range m.Neighbors(idx) {
			if visited[nbr] {
				continue
			}
			visited[nbr] = true
			reached++
			queue.PushBack(nbr)
		}
	}

	if reached != m.Len() {
		return fmt.Errorf("%w: reached %d of %d cells", ErrDisconnected, reached, m.Len())
	}
	return nil
}
