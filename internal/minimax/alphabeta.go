package minimax

import (
	"context"
	"math/rand"

	"baduk/internal/game"
	"baduk/internal/gotypes"
)

// alphaBetaResult is BestScore with pruning. bestBlack and bestWhite are the
// scores each colour is already guaranteed higher up the tree; a branch
// that leaves the other colour strictly worse off than its guarantee is cut.
func alphaBetaResult[S game.State[S, M], M comparable](s S, maxDepth, bestBlack, bestWhite int, eval EvalFunc[S]) int {
	if s.IsOver() {
		return terminalScore[S, M](s)
	}
	if maxDepth == 0 {
		return eval(s)
	}

	best := MinScore
	for _, m := range s.LegalMoves() {
		our := -alphaBetaResult[S, M](s.ApplyMove(m), maxDepth-1, bestBlack, bestWhite, eval)
		if our > best {
			best = our
		}

		switch s.NextPlayer() {
		case gotypes.White:
			if best > bestWhite {
				bestWhite = best
			}
			if outcomeForBlack := -best; outcomeForBlack < bestBlack {
				return best
			}
		case gotypes.Black:
			if best > bestBlack {
				bestBlack = best
			}
			if outcomeForWhite := -best; outcomeForWhite < bestWhite {
				return best
			}
		}
	}
	return best
}

type AlphaBetaAgent[S game.State[S, M], M comparable] struct {
	maxDepth int
	eval     EvalFunc[S]
	rng      *rand.Rand
}

func NewAlphaBetaAgent[S game.State[S, M], M comparable](maxDepth int, eval EvalFunc[S], rng *rand.Rand) *AlphaBetaAgent[S, M] {
	return &AlphaBetaAgent[S, M]{maxDepth: maxDepth, eval: eval, rng: rng}
}

// SelectMove picks at random among the moves tied for the best score. It
// returns false only when s has no legal moves.
func (a *AlphaBetaAgent[S, M]) SelectMove(ctx context.Context, s S) (M, bool) {
	moves, _ := a.bestMoves(ctx, s)
	return pick(a.rng, moves)
}

func (a *AlphaBetaAgent[S, M]) bestMoves(ctx context.Context, s S) ([]M, int) {
	var best []M
	bestScore := 0
	bestBlack, bestWhite := MinScore, MinScore
	for _, m := range s.LegalMoves() {
		if ctx.Err() != nil && len(best) > 0 {
			break
		}
		our := -alphaBetaResult[S, M](s.ApplyMove(m), a.maxDepth, bestBlack, bestWhite, a.eval)
		switch {
		case len(best) == 0 || our > bestScore:
			best = []M{m}
			bestScore = our
			switch s.NextPlayer() {
			case gotypes.Black:
				bestBlack = bestScore
			case gotypes.White:
				bestWhite = bestScore
			}
		case our == bestScore:
			best = append(best, m)
		}
	}
	return best, bestScore
}
