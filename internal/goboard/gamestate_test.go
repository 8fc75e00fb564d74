package goboard

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baduk/internal/gotypes"
)

func TestNewGame(t *testing.T) {
	start := NewGame(19)
	next := start.ApplyMove(Play(pt(16, 16)))

	assert.Same(t, start, next.Previous())
	assert.Equal(t, gotypes.White, next.NextPlayer())
	assert.Equal(t, gotypes.Black, colorAt(next.Board(), pt(16, 16)))
	assert.True(t, isEmpty(start.Board(), pt(16, 16)), "parent board must not change")
	assert.Equal(t, 1, next.MoveNumber())
}

func koPosition() *GameState {
	board := NewBoard(5, 5)
	board.PlaceStone(gotypes.Black, pt(2, 2))
	board.PlaceStone(gotypes.Black, pt(3, 1))
	board.PlaceStone(gotypes.White, pt(3, 2))
	board.PlaceStone(gotypes.Black, pt(3, 3))
	board.PlaceStone(gotypes.White, pt(4, 1))
	board.PlaceStone(gotypes.White, pt(4, 3))
	board.PlaceStone(gotypes.White, pt(5, 2))
	return NewGameFromBoard(board, gotypes.Black, DefaultKomi)
}

func TestDoesMoveViolateKo(t *testing.T) {
	game := koPosition()

	capture := Play(pt(4, 2))
	assert.False(t, game.DoesMoveViolateKo(gotypes.Black, capture))
	require.True(t, game.IsValidMove(capture))
	game = game.ApplyMove(capture)
	require.True(t, isEmpty(game.Board(), pt(3, 2)), "black should have captured 3,2")

	retake := Play(pt(3, 2))
	assert.True(t, game.DoesMoveViolateKo(gotypes.White, retake))
	assert.False(t, game.IsValidMove(retake))
	assert.NotContains(t, game.LegalMoves(), retake)

	// Once both sides play elsewhere the retake no longer repeats a board.
	game = game.ApplyMove(Play(pt(1, 5)))
	game = game.ApplyMove(Play(pt(5, 5)))
	assert.False(t, game.DoesMoveViolateKo(gotypes.White, retake))
	assert.True(t, game.IsValidMove(retake))
}

func TestKoNotTriggeredBySimpleCapture(t *testing.T) {
	// Figures 3.5-3.7: black captures, white's reply elsewhere is legal.
	board := NewBoard(6, 6)
	board.PlaceStone(gotypes.Black, pt(1, 2))
	board.PlaceStone(gotypes.Black, pt(1, 3))
	board.PlaceStone(gotypes.White, pt(1, 4))
	board.PlaceStone(gotypes.White, pt(1, 6))
	board.PlaceStone(gotypes.Black, pt(2, 2))
	board.PlaceStone(gotypes.White, pt(2, 3))
	board.PlaceStone(gotypes.Black, pt(2, 4))
	board.PlaceStone(gotypes.Black, pt(2, 5))
	board.PlaceStone(gotypes.White, pt(2, 6))
	board.PlaceStone(gotypes.Black, pt(3, 2))
	board.PlaceStone(gotypes.White, pt(3, 3))
	board.PlaceStone(gotypes.White, pt(3, 4))
	board.PlaceStone(gotypes.White, pt(3, 5))
	game := NewGameFromBoard(board, gotypes.Black, DefaultKomi)

	move := Play(pt(1, 5))
	assert.False(t, game.DoesMoveViolateKo(gotypes.Black, move))
	game = game.ApplyMove(move)
	assert.Equal(t, gotypes.White, game.NextPlayer())

	move = Play(pt(1, 4))
	assert.False(t, game.DoesMoveViolateKo(gotypes.White, move))
	assert.True(t, game.IsValidMove(move))
}

func TestSelfCaptureIsRejected(t *testing.T) {
	board := NewBoard(5, 5)
	board.PlaceStone(gotypes.Black, pt(1, 2))
	board.PlaceStone(gotypes.Black, pt(2, 1))
	game := NewGameFromBoard(board, gotypes.White, DefaultKomi)

	suicide := Play(pt(1, 1))
	assert.True(t, game.IsMoveSelfCapture(gotypes.White, suicide))
	assert.False(t, game.IsValidMove(suicide))
	assert.False(t, game.IsMoveSelfCapture(gotypes.White, PassTurn()))
}

func TestCaptureIsNotSelfCapture(t *testing.T) {
	board := NewBoard(5, 5)
	board.PlaceStone(gotypes.Black, pt(1, 1))
	board.PlaceStone(gotypes.Black, pt(2, 2))
	board.PlaceStone(gotypes.Black, pt(1, 3))
	board.PlaceStone(gotypes.White, pt(2, 1))
	game := NewGameFromBoard(board, gotypes.White, DefaultKomi)

	move := Play(pt(1, 2))
	assert.False(t, game.IsMoveSelfCapture(gotypes.White, move))
	assert.True(t, game.IsValidMove(move))
}

func TestIsOver(t *testing.T) {
	game := NewGame(5)
	assert.False(t, game.IsOver())

	onePass := game.ApplyMove(PassTurn())
	assert.False(t, onePass.IsOver())

	twoPasses := onePass.ApplyMove(PassTurn())
	assert.True(t, twoPasses.IsOver())

	interrupted := onePass.ApplyMove(Play(pt(3, 3))).ApplyMove(PassTurn())
	assert.False(t, interrupted.IsOver())

	assert.True(t, game.ApplyMove(Resign()).IsOver())
	assert.True(t, game.ApplyMove(Play(pt(1, 1))).ApplyMove(Resign()).IsOver())
}

func TestWinner(t *testing.T) {
	game := NewGame(5)
	_, ok := game.Winner()
	assert.False(t, ok, "no winner while the game runs")

	resigned := game.ApplyMove(Resign())
	winner, ok := resigned.Winner()
	require.True(t, ok)
	assert.Equal(t, gotypes.White, winner)

	// Empty board: all dame, komi decides.
	passed := game.ApplyMove(PassTurn()).ApplyMove(PassTurn())
	winner, ok = passed.Winner()
	require.True(t, ok)
	assert.Equal(t, gotypes.White, winner)
	assert.Equal(t, "W+7.5", passed.Result().String())
}

func TestWinnerDrawWithoutKomi(t *testing.T) {
	game := NewGameWithKomi(5, 5, 0)
	over := game.ApplyMove(PassTurn()).ApplyMove(PassTurn())

	require.True(t, over.IsOver())
	_, ok := over.Winner()
	assert.False(t, ok)
}

func TestLegalMovesOrder(t *testing.T) {
	game := NewGame(2)
	moves := game.LegalMoves()

	assert.Equal(t, []Move{
		Play(pt(1, 1)), Play(pt(1, 2)), Play(pt(2, 1)), Play(pt(2, 2)),
		PassTurn(), Resign(),
	}, moves)
}

func TestNoMovesAfterGameOver(t *testing.T) {
	over := NewGame(5).ApplyMove(PassTurn()).ApplyMove(PassTurn())

	assert.Empty(t, over.LegalMoves())
	assert.False(t, over.IsValidMove(PassTurn()))
	assert.False(t, over.IsValidMove(Resign()))
	assert.False(t, over.IsValidMove(Play(pt(1, 1))))
}

func TestInvalidPlays(t *testing.T) {
	game := NewGame(5).ApplyMove(Play(pt(3, 3)))

	assert.False(t, game.IsValidMove(Play(pt(3, 3))), "occupied")
	assert.False(t, game.IsValidMove(Play(pt(6, 1))), "off board")
	assert.False(t, game.IsValidMove(Move{}), "malformed")
	assert.Panics(t, func() { game.ApplyMove(Move{}) })
}

func TestNewMove(t *testing.T) {
	p := pt(2, 3)
	assert.Equal(t, Play(p), NewMove(&p, false, false))
	assert.Equal(t, PassTurn(), NewMove(nil, true, false))
	assert.Equal(t, Resign(), NewMove(nil, false, true))
	assert.Panics(t, func() { NewMove(&p, true, false) })
	assert.Panics(t, func() { NewMove(nil, true, true) })
	assert.Panics(t, func() { NewMove(nil, false, false) })
}

func TestHistoryIsSharedNotMutated(t *testing.T) {
	root := NewGame(5).ApplyMove(Play(pt(3, 3)))
	a := root.ApplyMove(Play(pt(2, 2)))
	b := root.ApplyMove(Play(pt(4, 4)))

	assert.True(t, isEmpty(a.Board(), pt(4, 4)))
	assert.True(t, isEmpty(b.Board(), pt(2, 2)))
	assert.Equal(t, 2, root.situations.Len())
	assert.Equal(t, 3, a.situations.Len())
	assert.Equal(t, 3, b.situations.Len())
}

// Superko via the situation set must agree with a plain walk over the
// previous chain.
func TestSituationSetMatchesHistoryWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for game := 0; game < 5; game++ {
		state := NewGame(4)
		for i := 0; i < 80 && !state.IsOver(); i++ {
			for r := 1; r <= 4; r++ {
				for c := 1; c <= 4; c++ {
					m := Play(pt(r, c))
					if _, occupied := state.Board().Get(m.Point()); occupied {
						continue
					}
					require.Equal(t, walkViolatesKo(state, state.NextPlayer(), m),
						state.DoesMoveViolateKo(state.NextPlayer(), m))
				}
			}
			moves := state.LegalMoves()
			// Skip resign so games run long enough to produce repetitions.
			state = state.ApplyMove(moves[rng.Intn(len(moves)-1)])
		}
	}
}

func walkViolatesKo(s *GameState, player gotypes.Player, m Move) bool {
	next := s.Board().Clone()
	next.PlaceStone(player, m.Point())
	for past := s; past != nil; past = past.Previous() {
		p, b := past.Situation()
		if p == player.Other() && b.Equal(next) {
			return true
		}
	}
	return false
}
