package agent

import (
	"context"
	"math/rand"

	"baduk/internal/goboard"
	"baduk/internal/gotypes"
)

// RandomBot plays uniformly among valid moves that do not fill one of its own
// eyes, and passes when none are left. It never resigns.
type RandomBot struct {
	rng *rand.Rand
}

func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

func (b *RandomBot) SelectMove(_ context.Context, s *goboard.GameState) goboard.Move {
	return b.Rollout(s)
}

// Rollout is SelectMove without a context, for use as a playout policy.
func (b *RandomBot) Rollout(s *goboard.GameState) goboard.Move {
	board := s.Board()
	var candidates []gotypes.Point
	for r := 1; r <= board.NumRows(); r++ {
		for c := 1; c <= board.NumCols(); c++ {
			p := gotypes.Point{Row: r, Col: c}
			if s.IsValidMove(goboard.Play(p)) && !IsPointAnEye(board, p, s.NextPlayer()) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return goboard.PassTurn()
	}
	return goboard.Play(candidates[b.rng.Intn(len(candidates))])
}
