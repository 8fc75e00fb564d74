package agent

import (
	"fmt"
	"math/rand"
	"sort"

	"baduk/internal/errors"
)

// Factory builds a fresh bot. Each bot owns its random source, so bots built
// for concurrent requests never share one.
type Factory func(seed int64) Agent

type Settings struct {
	MCTSRounds      int
	MCTSTemperature float64
	AlphaBetaDepth  int
}

type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry registers random, mcts, alphabeta and depthprune.
func DefaultRegistry(s Settings) *Registry {
	r := NewRegistry()
	r.Register("random", func(seed int64) Agent {
		return NewRandomBot(rand.New(rand.NewSource(seed)))
	})
	r.Register("mcts", func(seed int64) Agent {
		return NewMCTSBot(s.MCTSRounds, s.MCTSTemperature, rand.New(rand.NewSource(seed)))
	})
	r.Register("alphabeta", func(seed int64) Agent {
		return NewAlphaBetaBot(s.AlphaBetaDepth, rand.New(rand.NewSource(seed)))
	})
	r.Register("depthprune", func(seed int64) Agent {
		return NewDepthPrunedBot(s.AlphaBetaDepth, rand.New(rand.NewSource(seed)))
	})
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

func (r *Registry) New(name string, seed int64) (Agent, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, errors.ErrUnknownBot)
	}
	return f(seed), nil
}

// Names lists the registered bots in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
