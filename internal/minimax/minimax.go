// Package minimax holds exhaustive and depth-limited game-tree search over any
// game.State.
package minimax

import (
	"context"
	"math/rand"

	"baduk/internal/game"
)

// GameResult is an exact outcome from the side to move's point of view.
type GameResult int8

const (
	Loss GameResult = iota + 1
	Draw
	Win
)

// Reverse gives the same outcome seen by the opponent.
func (r GameResult) Reverse() GameResult {
	switch r {
	case Loss:
		return Win
	case Win:
		return Loss
	}
	return Draw
}

func (r GameResult) String() string {
	switch r {
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	case Win:
		return "win"
	}
	return "unknown"
}

func terminalResult[S game.State[S, M], M comparable](s S) GameResult {
	outcome, winner := game.OutcomeOf[S, M](s)
	switch {
	case outcome != game.Won:
		return Draw
	case winner == s.NextPlayer():
		return Win
	}
	return Loss
}

// BestResult is the outcome the side to move can force with perfect play.
// It searches to the end of the game and is only practical for small games.
func BestResult[S game.State[S, M], M comparable](s S) GameResult {
	if s.IsOver() {
		return terminalResult[S, M](s)
	}
	best := Loss
	for _, m := range s.LegalMoves() {
		if r := BestResult[S, M](s.ApplyMove(m)).Reverse(); r > best {
			best = r
			if best == Win {
				break
			}
		}
	}
	return best
}

// Agent plays perfectly by full minimax, choosing at random among the moves
// with the best forced outcome.
type Agent[S game.State[S, M], M comparable] struct {
	rng *rand.Rand
}

func NewAgent[S game.State[S, M], M comparable](rng *rand.Rand) *Agent[S, M] {
	return &Agent[S, M]{rng: rng}
}

// SelectMove returns false only when s has no legal moves.
func (a *Agent[S, M]) SelectMove(ctx context.Context, s S) (M, bool) {
	moves, _ := a.bestMoves(ctx, s)
	return pick(a.rng, moves)
}

func (a *Agent[S, M]) bestMoves(ctx context.Context, s S) ([]M, GameResult) {
	byResult := make(map[GameResult][]M, 3)
	for _, m := range s.LegalMoves() {
		if ctx.Err() != nil && len(byResult) > 0 {
			break
		}
		r := BestResult[S, M](s.ApplyMove(m)).Reverse()
		byResult[r] = append(byResult[r], m)
	}
	for _, r := range []GameResult{Win, Draw, Loss} {
		if moves := byResult[r]; len(moves) > 0 {
			return moves, r
		}
	}
	return nil, Loss
}

func pick[M any](rng *rand.Rand, moves []M) (M, bool) {
	if len(moves) == 0 {
		var zero M
		return zero, false
	}
	return moves[rng.Intn(len(moves))], true
}
