package goboard

import (
	"fmt"

	"baduk/internal/gotypes"
	"baduk/internal/scoring"
)

const DefaultKomi = 7.5

// GameState is one position in a game together with its history. States are
// never modified after creation: ApplyMove returns a new state pointing back
// at its parent, so search code can branch from any state as often as it
// likes.
type GameState struct {
	board       *Board
	nextPlayer  gotypes.Player
	previous    *GameState
	lastMove    Move
	hasLastMove bool
	komi        float64
	moveNumber  int
	situations  *situationSet
}

// NewGame starts a square game with the default komi. Black moves first.
func NewGame(size int) *GameState {
	return NewGameWithKomi(size, size, DefaultKomi)
}

func NewGameWithKomi(rows, cols int, komi float64) *GameState {
	return NewGameFromBoard(NewBoard(rows, cols), gotypes.Black, komi)
}

// NewGameFromBoard starts a game from a set-up position. The board becomes
// part of the game's history and must not be modified afterwards.
func NewGameFromBoard(board *Board, next gotypes.Player, komi float64) *GameState {
	s := &GameState{
		board:      board,
		nextPlayer: next,
		komi:       komi,
	}
	s.situations = s.situations.with(situationKey(next, board), board)
	return s
}

func situationKey(next gotypes.Player, board *Board) uint64 {
	return board.zobrist.situation(next, board.hash)
}

func (s *GameState) Board() *Board              { return s.board }
func (s *GameState) NextPlayer() gotypes.Player { return s.nextPlayer }
func (s *GameState) Previous() *GameState       { return s.previous }
func (s *GameState) Komi() float64              { return s.komi }
func (s *GameState) MoveNumber() int            { return s.moveNumber }
func (s *GameState) LastMove() (Move, bool)     { return s.lastMove, s.hasLastMove }

func (s *GameState) Situation() (gotypes.Player, *Board) {
	return s.nextPlayer, s.board
}

// ApplyMove returns the state after the side to move plays m. Plays must have
// been checked with IsValidMove; an occupied or off-board point panics.
func (s *GameState) ApplyMove(m Move) *GameState {
	if !m.IsValid() {
		panic("goboard: applying a malformed move")
	}
	nextBoard := s.board
	if m.IsPlay() {
		nextBoard = s.board.Clone()
		nextBoard.PlaceStone(s.nextPlayer, m.Point())
	}
	next := s.nextPlayer.Other()
	return &GameState{
		board:       nextBoard,
		nextPlayer:  next,
		previous:    s,
		lastMove:    m,
		hasLastMove: true,
		komi:        s.komi,
		moveNumber:  s.moveNumber + 1,
		situations:  s.situations.with(situationKey(next, nextBoard), nextBoard),
	}
}

// IsMoveSelfCapture reports whether m would leave player's new string with
// no liberties after captures are resolved.
func (s *GameState) IsMoveSelfCapture(player gotypes.Player, m Move) bool {
	if !m.IsPlay() {
		return false
	}
	return s.board.IsSelfCapture(player, m.Point())
}

// DoesMoveViolateKo reports whether m recreates any earlier situation of
// this game (positional superko with the side to move included).
func (s *GameState) DoesMoveViolateKo(player gotypes.Player, m Move) bool {
	if !m.IsPlay() || !s.board.IsOnGrid(m.Point()) {
		return false
	}
	if _, occupied := s.board.Get(m.Point()); occupied {
		return false
	}
	nextBoard := s.board.Clone()
	nextBoard.PlaceStone(player, m.Point())
	return s.situations.contains(situationKey(player.Other(), nextBoard), nextBoard)
}

// IsValidMove reports whether the side to move may play m. Once the game is
// over nothing is valid, including pass and resign.
func (s *GameState) IsValidMove(m Move) bool {
	if !m.IsValid() || s.IsOver() {
		return false
	}
	if m.IsPass() || m.IsResign() {
		return true
	}
	p := m.Point()
	if !s.board.IsOnGrid(p) {
		return false
	}
	if _, occupied := s.board.Get(p); occupied {
		return false
	}
	return !s.IsMoveSelfCapture(s.nextPlayer, m) &&
		!s.DoesMoveViolateKo(s.nextPlayer, m)
}

// LegalMoves lists valid plays in row-major order followed by pass and
// resign. It is empty once the game is over.
func (s *GameState) LegalMoves() []Move {
	if s.IsOver() {
		return nil
	}
	moves := make([]Move, 0, s.board.rows*s.board.cols+2)
	for r := 1; r <= s.board.rows; r++ {
		for c := 1; c <= s.board.cols; c++ {
			m := Play(gotypes.Point{Row: r, Col: c})
			if s.IsValidMove(m) {
				moves = append(moves, m)
			}
		}
	}
	return append(moves, PassTurn(), Resign())
}

// IsOver is true after a resignation or two passes in a row.
func (s *GameState) IsOver() bool {
	if !s.hasLastMove {
		return false
	}
	if s.lastMove.IsResign() {
		return true
	}
	if !s.lastMove.IsPass() || s.previous == nil {
		return false
	}
	secondLast, ok := s.previous.LastMove()
	return ok && secondLast.IsPass()
}

// Winner returns the winner of a finished game. ok is false while the game
// is running and for a drawn score; game.OutcomeOf tells them apart.
func (s *GameState) Winner() (gotypes.Player, bool) {
	if !s.IsOver() {
		return 0, false
	}
	if s.lastMove.IsResign() {
		return s.nextPlayer, true
	}
	return s.Result().Winner()
}

// Result scores the current board with the game's komi.
func (s *GameState) Result() scoring.GameResult {
	return scoring.ComputeGameResult(s.board, s.komi)
}

func (s *GameState) String() string {
	return fmt.Sprintf("move %d, %s to play\n%s", s.moveNumber, s.nextPlayer, s.board)
}
