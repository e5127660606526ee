package wilson

import "fmt"

// Direction is one of the four moves available from a grid cell.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions returns every direction in the canonical order the generator starts from.
// The array is a copy, so reordering it has no effect on generation.
func Directions() [4]Direction {
	return [4]Direction{North, South, East, West}
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// arrow is the glyph used for a walk leaving a cell in direction d.
func (d Direction) arrow() byte {
	switch d {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	default:
		return '<'
	}
}
