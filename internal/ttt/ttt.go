// Package ttt is Tic-Tac-Toe on the same state contract as Go, small enough
// for exhaustive minimax.
package ttt

import (
	"fmt"
	"strings"

	"baduk/internal/gotypes"
)

const Size = 3

// X moves first and plays the role of black.
const (
	X = gotypes.Black
	O = gotypes.White
)

type Move struct {
	Point gotypes.Point
}

// Board is a 3x3 grid indexed from 1 like the Go board. The zero value is
// empty.
type Board struct {
	grid [Size][Size]gotypes.Player
}

func (b Board) IsOnGrid(p gotypes.Point) bool {
	return p.Row >= 1 && p.Row <= Size && p.Col >= 1 && p.Col <= Size
}

// Get returns the mark at p; ok is false when p is empty.
func (b Board) Get(p gotypes.Point) (gotypes.Player, bool) {
	c := b.grid[p.Row-1][p.Col-1]
	return c, c != 0
}

func (b *Board) place(player gotypes.Player, p gotypes.Point) {
	if !b.IsOnGrid(p) {
		panic(fmt.Sprintf("ttt: %v is off the board", p))
	}
	if _, taken := b.Get(p); taken {
		panic(fmt.Sprintf("ttt: %v is already taken", p))
	}
	b.grid[p.Row-1][p.Col-1] = player
}

var lines = func() [][Size]gotypes.Point {
	var out [][Size]gotypes.Point
	for i := 1; i <= Size; i++ {
		var row, col [Size]gotypes.Point
		for j := 1; j <= Size; j++ {
			row[j-1] = gotypes.Point{Row: i, Col: j}
			col[j-1] = gotypes.Point{Row: j, Col: i}
		}
		out = append(out, row, col)
	}
	var diag, anti [Size]gotypes.Point
	for i := 1; i <= Size; i++ {
		diag[i-1] = gotypes.Point{Row: i, Col: i}
		anti[i-1] = gotypes.Point{Row: i, Col: Size + 1 - i}
	}
	return append(out, diag, anti)
}()

func (b Board) hasLine(player gotypes.Player) bool {
	for _, line := range lines {
		full := true
		for _, p := range line {
			if c, _ := b.Get(p); c != player {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}
	return false
}

func (b Board) isFull() bool {
	for r := range b.grid {
		for c := range b.grid[r] {
			if b.grid[r][c] == 0 {
				return false
			}
		}
	}
	return true
}

type GameState struct {
	board      Board
	nextPlayer gotypes.Player
	previous   *GameState
	lastMove   *Move
}

func NewGame() *GameState {
	return &GameState{nextPlayer: X}
}

func (s *GameState) Board() Board               { return s.board }
func (s *GameState) NextPlayer() gotypes.Player { return s.nextPlayer }
func (s *GameState) Previous() *GameState       { return s.previous }

func (s *GameState) LastMove() (Move, bool) {
	if s.lastMove == nil {
		return Move{}, false
	}
	return *s.lastMove, true
}

func (s *GameState) ApplyMove(m Move) *GameState {
	next := s.board
	next.place(s.nextPlayer, m.Point)
	return &GameState{
		board:      next,
		nextPlayer: s.nextPlayer.Other(),
		previous:   s,
		lastMove:   &m,
	}
}

func (s *GameState) IsValidMove(m Move) bool {
	if s.IsOver() || !s.board.IsOnGrid(m.Point) {
		return false
	}
	_, taken := s.board.Get(m.Point)
	return !taken
}

// LegalMoves lists the empty squares in row-major order.
func (s *GameState) LegalMoves() []Move {
	if s.IsOver() {
		return nil
	}
	var moves []Move
	for r := 1; r <= Size; r++ {
		for c := 1; c <= Size; c++ {
			m := Move{Point: gotypes.Point{Row: r, Col: c}}
			if s.IsValidMove(m) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

func (s *GameState) IsOver() bool {
	return s.board.hasLine(X) || s.board.hasLine(O) || s.board.isFull()
}

func (s *GameState) Winner() (gotypes.Player, bool) {
	switch {
	case s.board.hasLine(X):
		return X, true
	case s.board.hasLine(O):
		return O, true
	}
	return 0, false
}

func (s *GameState) String() string {
	var sb strings.Builder
	for r := 1; r <= Size; r++ {
		for c := 1; c <= Size; c++ {
			switch p, _ := s.board.Get(gotypes.Point{Row: r, Col: c}); p {
			case X:
				sb.WriteByte('X')
			case O:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
