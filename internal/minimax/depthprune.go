package minimax

import (
	"context"
	"math/rand"

	"baduk/internal/game"
)

const (
	MaxScore = 999999
	MinScore = -999999
)

// EvalFunc scores a position from the side to move's point of view. It must
// stay strictly between MinScore and MaxScore.
type EvalFunc[S any] func(s S) int

// terminalScore maps a finished game onto the score scale. A drawn game is
// worth 0 to both sides.
func terminalScore[S game.State[S, M], M comparable](s S) int {
	switch terminalResult[S, M](s) {
	case Win:
		return MaxScore
	case Draw:
		return 0
	}
	return MinScore
}

// BestScore searches maxDepth plies and scores the horizon with eval.
func BestScore[S game.State[S, M], M comparable](s S, maxDepth int, eval EvalFunc[S]) int {
	if s.IsOver() {
		return terminalScore[S, M](s)
	}
	if maxDepth == 0 {
		return eval(s)
	}
	best := MinScore
	for _, m := range s.LegalMoves() {
		if our := -BestScore[S, M](s.ApplyMove(m), maxDepth-1, eval); our > best {
			best = our
		}
	}
	return best
}

type DepthPrunedAgent[S game.State[S, M], M comparable] struct {
	maxDepth int
	eval     EvalFunc[S]
	rng      *rand.Rand
}

// NewDepthPrunedAgent searches maxDepth plies below each candidate move.
func NewDepthPrunedAgent[S game.State[S, M], M comparable](maxDepth int, eval EvalFunc[S], rng *rand.Rand) *DepthPrunedAgent[S, M] {
	return &DepthPrunedAgent[S, M]{maxDepth: maxDepth, eval: eval, rng: rng}
}

// SelectMove returns false only when s has no legal moves. Once ctx is done
// the remaining candidates are skipped.
func (a *DepthPrunedAgent[S, M]) SelectMove(ctx context.Context, s S) (M, bool) {
	moves, _ := a.bestMoves(ctx, s)
	return pick(a.rng, moves)
}

func (a *DepthPrunedAgent[S, M]) bestMoves(ctx context.Context, s S) ([]M, int) {
	var best []M
	bestScore := 0
	for _, m := range s.LegalMoves() {
		if ctx.Err() != nil && len(best) > 0 {
			break
		}
		our := -BestScore[S, M](s.ApplyMove(m), a.maxDepth, a.eval)
		switch {
		case len(best) == 0 || our > bestScore:
			best = []M{m}
			bestScore = our
		case our == bestScore:
			best = append(best, m)
		}
	}
	return best, bestScore
}
