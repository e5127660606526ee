/*
Package wilson generates perfect mazes with Wilson's algorithm.

Starting from a single cell, the generator repeatedly performs a loop-erased random walk
from a cell outside the maze until the walk touches the maze, then carves the walk's
path into it. The result is a spanning tree drawn uniformly from all spanning trees of
the grid graph.

Loops are erased without being detected: every cell the walk leaves remembers only the
last direction taken from it, so following the directions from the start of the walk
traces the loop-erased path.
*/
package wilson

import (
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// Source is the random source consumed by the generator. *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
	// Shuffle permutes n elements with a Fisher-Yates shuffle, calling swap to exchange them.
	Shuffle(n int, swap func(i, j int))
}

// Event identifies the point of generation at which an Observer is called.
type Event uint8

const (
	// EventWalked fires after a walk reached the maze, before its path is carved.
	EventWalked Event = iota
	// EventCarved fires after a walk's path has been carved and stale walk cells cleared.
	EventCarved
)

// Observer is notified while a maze is generated. It must not keep g.
type Observer func(g *Generator, e Event)

// Option configures a Generator.
type Option func(*Generator)

// WithObserver registers fn to be called during generation.
func WithObserver(fn Observer) Option {
	return func(g *Generator) {
		g.observer = fn
	}
}

// Stats describes the work done by the last Generate call.
type Stats struct {
	Walks  int // walks started from a cell outside the maze
	Steps  int // random steps taken over all walks
	Carved int // cells added to the maze by carving
}

// Generator holds the state of Wilson's algorithm over a width by height grid.
type Generator struct {
	width, height int

	cells               []cell
	unvisitedCandidates []int        // pre-shuffled stack; may hold cells already in the maze
	walkIndexes         []int        // cells touched by the current walk
	directions          [4]Direction // reused across steps, shuffled in place

	observer  Observer
	stats     Stats
	generated bool
}

// New creates a generator for a width by height grid with every cell empty.
// Negative dimensions are treated as zero.
func New(width, height int, opts ...Option) *Generator {
	g := &Generator{
		width:  max(width, 0),
		height: max(height, 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.reset()
	return g
}

func (g *Generator) reset() {
	n := g.width * g.height
	g.cells = make([]cell, n)
	g.unvisitedCandidates = make([]int, n)
	for i := range g.unvisitedCandidates {
		g.unvisitedCandidates[i] = i
	}
	g.walkIndexes = make([]int, 0, n)
	g.directions = Directions()
	g.stats = Stats{}
}

// Width returns the number of columns of the grid.
func (g *Generator) Width() int {
	return g.width
}

// Height returns the number of rows of the grid.
func (g *Generator) Height() int {
	return g.height
}

// Stats returns counters for the last Generate call.
func (g *Generator) Stats() Stats {
	return g.stats
}

// Adjacent returns the index of the cell next to index in direction d, or false when
// index lies on that border or outside the grid.
func (g *Generator) Adjacent(index int, d Direction) (int, bool) {
	if index < 0 || index >= len(g.cells) {
		return 0, false
	}

	switch d {
	case West:
		if index%g.width == 0 {
			return 0, false
		}
		return index - 1, true
	case East:
		if index%g.width == g.width-1 {
			return 0, false
		}
		return index + 1, true
	case North:
		if index < g.width {
			return 0, false
		}
		return index - g.width, true
	case South:
		if index >= g.width*(g.height-1) {
			return 0, false
		}
		return index + g.width, true
	}
	return 0, false
}

// Generate runs Wilson's algorithm and returns the carved maze.
// Calling it again starts over from an all-empty grid.
func (g *Generator) Generate(rng Source) *maze.Maze {
	if g.generated {
		g.reset()
	}
	g.generated = true

	if len(g.cells) == 0 {
		return maze.New(0, 0)
	}

	rng.Shuffle(len(g.unvisitedCandidates), func(i, j int) {
		g.unvisitedCandidates[i], g.unvisitedCandidates[j] = g.unvisitedCandidates[j], g.unvisitedCandidates[i]
	})

	// The first candidate seeds the maze on its own. Its only opening toward the
	// outside world is the entrance, added at render time.
	initial, _ := g.chooseWalkStart()
	g.cells[initial] = mazeCell(maze.NewCell(false, false))

	for {
		start, ok := g.chooseWalkStart()
		if !ok {
			break
		}
		g.stats.Walks++

		g.walk(start, rng)
		g.notify(EventWalked)

		g.carve(start)
		g.clearWalk()
		g.notify(EventCarved)
	}

	return g.emit()
}

// walk performs a random walk from start until it steps onto a maze cell. Each cell
// left by the walk records the direction it was left in, overwriting any earlier visit.
func (g *Generator) walk(start int, rng Source) {
	g.walkIndexes = g.walkIndexes[:0]

	curr := start
	for {
		g.walkIndexes = append(g.walkIndexes, curr)
		g.stats.Steps++

		direction, next := g.chooseRandomAdjacent(curr, rng)
		g.cells[curr] = walkCell(direction)
		if g.cells[next].isInMaze() {
			return
		}
		curr = next
	}
}

// carve follows the recorded directions from start and adds the path to the maze.
// Cells own their north and west walls, so leaving West or North opens the current
// cell while having entered moving East or South opens it from the other side.
func (g *Generator) carve(start int) {
	curr := start
	var last Direction
	hasLast := false

	for {
		c := &g.cells[curr]
		switch c.state {
		case walk:
			direction := c.dir
			*c = mazeCell(maze.NewCell(
				direction == West || (hasLast && last == East),
				direction == North || (hasLast && last == South),
			))
			g.stats.Carved++

			next, ok := g.Adjacent(curr, direction)
			if !ok {
				panic(fmt.Sprintf("wilson: walk leaves cell %d through the border going %s", curr, direction))
			}
			curr, last, hasLast = next, direction, true

		case inMaze:
			// Join the path to the maze. Entering moving North or West needs nothing
			// here: the previous cell already owns that wall.
			if hasLast {
				switch last {
				case East:
					c.walls.SetWestOpen()
				case South:
					c.walls.SetNorthOpen()
				}
			}
			return

		default:
			panic(fmt.Sprintf("wilson: carving reached empty cell %d", curr))
		}
	}
}

// clearWalk resets the cells erased from the walk back to empty.
func (g *Generator) clearWalk() {
	for _, idx := range g.walkIndexes {
		if g.cells[idx].state == walk {
			g.cells[idx] = emptyCell()
		}
	}
}

// chooseWalkStart pops candidates until one is not part of the maze yet.
// Walk cells are not skipped, so walks need not be cleared for correctness.
func (g *Generator) chooseWalkStart() (int, bool) {
	for len(g.unvisitedCandidates) > 0 {
		last := len(g.unvisitedCandidates) - 1
		idx := g.unvisitedCandidates[last]
		g.unvisitedCandidates = g.unvisitedCandidates[:last]

		if !g.cells[idx].isInMaze() {
			return idx, true
		}
	}
	return 0, false
}

// chooseRandomAdjacent picks a uniformly random neighbour of from. Stepping back to the
// previous cell is allowed; excluding it would bias the spanning tree.
func (g *Generator) chooseRandomAdjacent(from int, rng Source) (Direction, int) {
	rng.Shuffle(len(g.directions), func(i, j int) {
		g.directions[i], g.directions[j] = g.directions[j], g.directions[i]
	})

	for _, direction := range g.directions {
		if adjacent, ok := g.Adjacent(from, direction); ok {
			return direction, adjacent
		}
	}
	panic(fmt.Sprintf("wilson: cell %d has no neighbours", from))
}

// emit copies the wall bits of the finished generator grid into a new maze.
func (g *Generator) emit() *maze.Maze {
	m := maze.New(g.width, g.height)
	for i, c := range g.cells {
		if !c.isInMaze() {
			panic(fmt.Sprintf("wilson: cell %d is not part of the maze after generation", i))
		}
		*m.CellMut(i) = c.walls
	}
	return m
}

func (g *Generator) notify(e Event) {
	if g.observer != nil {
		g.observer(g, e)
	}
}
