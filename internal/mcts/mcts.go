// Package mcts implements Monte Carlo tree search with PUCT selection over any
// game.State.
package mcts

import (
	"context"
	"math"
	"math/rand"

	"baduk/internal/game"
	"baduk/internal/gotypes"
)

const (
	DefaultRounds          = 500
	DefaultTemperature     = 1.5
	DefaultMaxRolloutMoves = 1000
)

// Policy picks the next move of a playout. It is only called on unfinished
// states.
type Policy[S any, M comparable] func(s S) M

// PriorFunc weights the legal moves of s for selection. The result must be
// parallel to moves.
type PriorFunc[S any, M comparable] func(s S, moves []M) []float64

// ValueFunc estimates an unfinished state in [-1, 1] for the side to move.
type ValueFunc[S any] func(s S) float64

type Config[S any, M comparable] struct {
	Rounds int
	// Temperature is the exploration constant c in the PUCT score.
	Temperature float64
	Rollout     Policy[S, M]
	// Prior defaults to a uniform distribution over the legal moves.
	Prior PriorFunc[S, M]
	// Value, if set, is mixed into the leaf estimate with weight ValueWeight.
	Value       ValueFunc[S]
	ValueWeight float64
	// MaxRolloutMoves bounds a playout; an unfinished playout counts as a draw.
	MaxRolloutMoves int
}

type Agent[S game.State[S, M], M comparable] struct {
	cfg Config[S, M]
	rng *rand.Rand
}

func NewAgent[S game.State[S, M], M comparable](cfg Config[S, M], rng *rand.Rand) *Agent[S, M] {
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultRounds
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxRolloutMoves <= 0 {
		cfg.MaxRolloutMoves = DefaultMaxRolloutMoves
	}
	return &Agent[S, M]{cfg: cfg, rng: rng}
}

type ChildStats[M comparable] struct {
	Move      M
	Visits    int
	MeanValue float64
	Prior     float64
}

type Result[M comparable] struct {
	Move M
	// OK is false when the root had no legal moves.
	OK       bool
	Rounds   int
	Children []ChildStats[M]
}

// SelectMove runs a search and returns the most visited root move.
func (a *Agent[S, M]) SelectMove(ctx context.Context, s S) (M, bool) {
	r := a.Search(ctx, s)
	return r.Move, r.OK
}

// Search runs up to cfg.Rounds rounds from a fresh root. Cancelling ctx stops
// the search between rounds and the best move found so far is returned.
func (a *Agent[S, M]) Search(ctx context.Context, s S) Result[M] {
	t := &tree[S, M]{}
	t.add(a.newNode(s, *new(M), -1, 1))

	rounds := 0
	for ; rounds < a.cfg.Rounds; rounds++ {
		if ctx.Err() != nil {
			break
		}
		a.round(t)
	}

	root := t.at(0)
	res := Result[M]{Rounds: rounds}
	bestVisits := -1
	for _, ci := range root.children {
		child := t.at(ci)
		res.Children = append(res.Children, ChildStats[M]{
			Move:      child.move,
			Visits:    child.visits,
			MeanValue: child.meanValue(),
			Prior:     child.prior,
		})
		if child.visits > bestVisits {
			bestVisits = child.visits
			res.Move = child.move
			res.OK = true
		}
	}
	return res
}

func (a *Agent[S, M]) newNode(s S, move M, parent int, prior float64) node[S, M] {
	n := node[S, M]{state: s, move: move, parent: parent, prior: prior}
	if s.IsOver() {
		return n
	}
	n.unvisited = s.LegalMoves()
	if a.cfg.Prior != nil {
		n.priors = a.cfg.Prior(s, n.unvisited)
	} else {
		n.priors = make([]float64, len(n.unvisited))
		for i := range n.priors {
			n.priors[i] = 1 / float64(len(n.unvisited))
		}
	}
	return n
}

func (a *Agent[S, M]) round(t *tree[S, M]) {
	idx := 0
	for !t.at(idx).canAddChild() && !t.at(idx).state.IsOver() && len(t.at(idx).children) > 0 {
		idx = a.selectChild(t, idx)
	}
	if t.at(idx).canAddChild() {
		idx = a.addRandomChild(t, idx)
	}

	// value is for the player who moved into the leaf; the root has no
	// such player and its sign is irrelevant.
	value := -a.evaluate(t.at(idx).state)
	for idx >= 0 {
		n := t.at(idx)
		n.visits++
		n.totalValue += value
		value = -value
		idx = n.parent
	}
}

// selectChild maximises Q + c * prior * sqrt(N) / (1 + n). Ties keep the
// earlier child.
func (a *Agent[S, M]) selectChild(t *tree[S, M], idx int) int {
	parent := t.at(idx)
	sqrtN := math.Sqrt(float64(parent.visits))
	best, bestScore := -1, math.Inf(-1)
	for _, ci := range parent.children {
		child := t.at(ci)
		score := child.meanValue() + a.cfg.Temperature*child.prior*sqrtN/float64(1+child.visits)
		if score > bestScore {
			best, bestScore = ci, score
		}
	}
	return best
}

func (a *Agent[S, M]) addRandomChild(t *tree[S, M], idx int) int {
	parent := t.at(idx)
	i := a.rng.Intn(len(parent.unvisited))
	move, prior := parent.unvisited[i], parent.priors[i]
	last := len(parent.unvisited) - 1
	parent.unvisited[i], parent.priors[i] = parent.unvisited[last], parent.priors[last]
	parent.unvisited, parent.priors = parent.unvisited[:last], parent.priors[:last]

	child := a.newNode(parent.state.ApplyMove(move), move, idx, prior)
	// add may move the arena, so parent is not used past this point.
	ci := t.add(child)
	t.at(idx).children = append(t.at(idx).children, ci)
	return ci
}

// evaluate estimates s for its side to move in [-1, 1].
func (a *Agent[S, M]) evaluate(s S) float64 {
	if s.IsOver() {
		return outcome[S, M](s, s.NextPlayer())
	}
	w := a.cfg.ValueWeight
	switch {
	case a.cfg.Value == nil || w <= 0:
		return a.simulate(s)
	case w >= 1:
		return a.cfg.Value(s)
	}
	return w*a.cfg.Value(s) + (1-w)*a.simulate(s)
}

func (a *Agent[S, M]) simulate(s S) float64 {
	player := s.NextPlayer()
	for i := 0; i < a.cfg.MaxRolloutMoves && !s.IsOver(); i++ {
		s = s.ApplyMove(a.cfg.Rollout(s))
	}
	if !s.IsOver() {
		return 0
	}
	return outcome[S, M](s, player)
}

func outcome[S game.State[S, M], M comparable](s S, player gotypes.Player) float64 {
	result, winner := game.OutcomeOf[S, M](s)
	switch {
	case result != game.Won:
		return 0
	case winner == player:
		return 1
	}
	return -1
}
