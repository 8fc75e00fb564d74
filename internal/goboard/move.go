package goboard

import (
	"fmt"

	"baduk/internal/gotypes"
)

type moveKind uint8

const (
	kindPlay moveKind = iota + 1
	kindPass
	kindResign
)

// Move is a play, a pass or a resignation. The zero Move is malformed and
// is rejected by GameState.ApplyMove.
type Move struct {
	point gotypes.Point
	kind  moveKind
}

func Play(p gotypes.Point) Move { return Move{point: p, kind: kindPlay} }
func PassTurn() Move            { return Move{kind: kindPass} }
func Resign() Move              { return Move{kind: kindResign} }

// NewMove builds a move from loose flags. Exactly one of point, isPass and
// isResign must be set.
func NewMove(point *gotypes.Point, isPass, isResign bool) Move {
	set := 0
	for _, b := range []bool{point != nil, isPass, isResign} {
		if b {
			set++
		}
	}
	if set != 1 {
		panic("goboard: a move must be exactly one of play, pass or resign")
	}
	switch {
	case isPass:
		return PassTurn()
	case isResign:
		return Resign()
	}
	return Play(*point)
}

func (m Move) IsPlay() bool   { return m.kind == kindPlay }
func (m Move) IsPass() bool   { return m.kind == kindPass }
func (m Move) IsResign() bool { return m.kind == kindResign }
func (m Move) IsValid() bool  { return m.kind >= kindPlay && m.kind <= kindResign }

// Point is only meaningful for plays.
func (m Move) Point() gotypes.Point { return m.point }

func (m Move) String() string {
	switch m.kind {
	case kindPass:
		return "pass"
	case kindResign:
		return "resign"
	case kindPlay:
		return fmt.Sprintf("(r %d, c %d)", m.point.Row, m.point.Col)
	}
	return "invalid"
}
