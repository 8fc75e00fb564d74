package agent

import (
	"baduk/internal/goboard"
	"baduk/internal/gotypes"
)

// IsPointAnEye reports whether the empty point p is an eye of color: every
// neighbour on the board is friendly, and so are at least three diagonal
// corners in the middle of the board, or every on-board corner on the edge.
func IsPointAnEye(board *goboard.Board, p gotypes.Point, color gotypes.Player) bool {
	if _, occupied := board.Get(p); occupied {
		return false
	}
	for _, n := range p.Neighbors() {
		if !board.IsOnGrid(n) {
			continue
		}
		if c, ok := board.Get(n); !ok || c != color {
			return false
		}
	}

	friendlyCorners, offBoardCorners := 0, 0
	for _, corner := range p.Corners() {
		if !board.IsOnGrid(corner) {
			offBoardCorners++
			continue
		}
		if c, ok := board.Get(corner); ok && c == color {
			friendlyCorners++
		}
	}
	if offBoardCorners > 0 {
		return offBoardCorners+friendlyCorners == 4
	}
	return friendlyCorners >= 3
}

// CaptureDiff is the stone count difference from the side to move's point of
// view. It stays well inside the minimax score bounds on any legal board.
func CaptureDiff(s *goboard.GameState) int {
	board := s.Board()
	black, white := 0, 0
	for r := 1; r <= board.NumRows(); r++ {
		for c := 1; c <= board.NumCols(); c++ {
			switch color, _ := board.Get(gotypes.Point{Row: r, Col: c}); color {
			case gotypes.Black:
				black++
			case gotypes.White:
				white++
			}
		}
	}
	diff := black - white
	if s.NextPlayer() == gotypes.Black {
		return diff
	}
	return -diff
}
