package agent

import (
	"context"
	"math/rand"
	"sync"

	"baduk/internal/goboard"
	"baduk/internal/mcts"
	"baduk/internal/minimax"
)

type (
	goState = *goboard.GameState
	goMove  = goboard.Move
)

// MCTSBot searches with random eye-preserving playouts.
type MCTSBot struct {
	search *mcts.Agent[goState, goMove]

	mu   sync.Mutex
	last mcts.Result[goMove]
}

func NewMCTSBot(rounds int, temperature float64, rng *rand.Rand) *MCTSBot {
	rollout := NewRandomBot(rng)
	return &MCTSBot{
		search: mcts.NewAgent[goState, goMove](mcts.Config[goState, goMove]{
			Rounds:      rounds,
			Temperature: temperature,
			Rollout:     rollout.Rollout,
		}, rng),
	}
}

func (b *MCTSBot) SelectMove(ctx context.Context, s *goboard.GameState) goboard.Move {
	res := b.search.Search(ctx, s)
	b.mu.Lock()
	b.last = res
	b.mu.Unlock()
	return orPass(res.Move, res.OK)
}

func (b *MCTSBot) Diagnostics() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	children := make([]map[string]any, 0, len(b.last.Children))
	for _, c := range b.last.Children {
		children = append(children, map[string]any{
			"move":   c.Move.String(),
			"visits": c.Visits,
			"value":  c.MeanValue,
		})
	}
	return map[string]any{
		"rounds":   b.last.Rounds,
		"children": children,
	}
}

// AlphaBetaBot runs two-bound alpha-beta to a fixed depth scored by
// CaptureDiff.
type AlphaBetaBot struct {
	search *minimax.AlphaBetaAgent[goState, goMove]
}

func NewAlphaBetaBot(depth int, rng *rand.Rand) *AlphaBetaBot {
	return &AlphaBetaBot{search: minimax.NewAlphaBetaAgent[goState, goMove](depth, CaptureDiff, rng)}
}

func (b *AlphaBetaBot) SelectMove(ctx context.Context, s *goboard.GameState) goboard.Move {
	return orPass(b.search.SelectMove(ctx, s))
}

// DepthPrunedBot is AlphaBetaBot without pruning.
type DepthPrunedBot struct {
	search *minimax.DepthPrunedAgent[goState, goMove]
}

func NewDepthPrunedBot(depth int, rng *rand.Rand) *DepthPrunedBot {
	return &DepthPrunedBot{search: minimax.NewDepthPrunedAgent[goState, goMove](depth, CaptureDiff, rng)}
}

func (b *DepthPrunedBot) SelectMove(ctx context.Context, s *goboard.GameState) goboard.Move {
	return orPass(b.search.SelectMove(ctx, s))
}
