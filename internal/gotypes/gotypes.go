package gotypes

import "fmt"

// Player is one of the two sides. Black always moves first.
type Player int8

const (
	Black Player = iota + 1
	White
)

// Cols is the GTP column alphabet, "I" is skipped.
const Cols = "ABCDEFGHJKLMNOPQRST"

func (p Player) Other() Player {
	if p == White {
		return Black
	}
	return White
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return fmt.Sprintf("Player(%d)", int8(p))
}

// Point is a 1-indexed board coordinate.
type Point struct {
	Row int
	Col int
}

// Neighbors returns the four orthogonal points in up, down, left, right order.
// Off-board points are included; callers filter them against the board.
func (p Point) Neighbors() [4]Point {
	return [4]Point{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
}

// Corners returns the four diagonal points.
func (p Point) Corners() [4]Point {
	return [4]Point{
		{Row: p.Row - 1, Col: p.Col - 1},
		{Row: p.Row - 1, Col: p.Col + 1},
		{Row: p.Row + 1, Col: p.Col - 1},
		{Row: p.Row + 1, Col: p.Col + 1},
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(r %d, c %d)", p.Row, p.Col)
}
