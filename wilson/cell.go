package wilson

import "github.com/beka-birhanu/vinom-maze/maze"

type cellState uint8

const (
	empty  cellState = iota // never touched by a walk
	walk                    // part of the walk in progress
	inMaze                  // permanently part of the spanning tree
)

// cell is the generator's view of a grid cell. Only the field matching the
// state is meaningful: dir for walk cells, walls for inMaze cells.
type cell struct {
	state cellState
	dir   Direction
	walls maze.Cell
}

func emptyCell() cell {
	return cell{state: empty}
}

func walkCell(d Direction) cell {
	return cell{state: walk, dir: d}
}

func mazeCell(walls maze.Cell) cell {
	return cell{state: inMaze, walls: walls}
}

func (c cell) isInMaze() bool {
	return c.state == inMaze
}
