package agent

import (
	"context"
	"fmt"

	"baduk/internal/errors"
	"baduk/internal/goboard"
	"baduk/internal/gotypes"
)

// TerminationStrategy lets a bot end the game on its own terms before its
// move search runs.
type TerminationStrategy interface {
	ShouldPass(s *goboard.GameState) bool
	ShouldResign(s *goboard.GameState) bool
}

// NeverTerminate plays every move out.
type NeverTerminate struct{}

func (NeverTerminate) ShouldPass(*goboard.GameState) bool   { return false }
func (NeverTerminate) ShouldResign(*goboard.GameState) bool { return false }

// PassWhenOpponentPasses answers a pass with a pass, ending the game.
type PassWhenOpponentPasses struct {
	NeverTerminate
}

func (PassWhenOpponentPasses) ShouldPass(s *goboard.GameState) bool {
	last, ok := s.LastMove()
	return ok && last.IsPass()
}

// ResignLargeMargin resigns once the bot has been asked for at least
// cutOffMove moves and the current board scores as lost by margin or more.
// It counts calls, so use one value per game.
type ResignLargeMargin struct {
	NeverTerminate
	ownColor    gotypes.Player
	cutOffMove  int
	margin      float64
	movesPlayed int
}

func NewResignLargeMargin(ownColor gotypes.Player, cutOffMove int, margin float64) *ResignLargeMargin {
	return &ResignLargeMargin{ownColor: ownColor, cutOffMove: cutOffMove, margin: margin}
}

func (r *ResignLargeMargin) ShouldResign(s *goboard.GameState) bool {
	r.movesPlayed++
	if r.movesPlayed < r.cutOffMove {
		return false
	}
	result := s.Result()
	winner, ok := result.Winner()
	return ok && winner != r.ownColor && result.WinningMargin() >= r.margin
}

// TerminationAgent consults its strategy before delegating to the wrapped
// agent.
type TerminationAgent struct {
	agent    Agent
	strategy TerminationStrategy
}

// NewTerminationAgent wraps a; a nil strategy never terminates.
func NewTerminationAgent(a Agent, strategy TerminationStrategy) *TerminationAgent {
	if strategy == nil {
		strategy = NeverTerminate{}
	}
	return &TerminationAgent{agent: a, strategy: strategy}
}

func (t *TerminationAgent) SelectMove(ctx context.Context, s *goboard.GameState) goboard.Move {
	switch {
	case t.strategy.ShouldPass(s):
		return goboard.PassTurn()
	case t.strategy.ShouldResign(s):
		return goboard.Resign()
	}
	return t.agent.SelectMove(ctx, s)
}

func (t *TerminationAgent) Diagnostics() map[string]any {
	return Diagnostics(t.agent)
}

// TerminationByName resolves the strategy names accepted on the command line.
func TerminationByName(name string) (TerminationStrategy, error) {
	switch name {
	case "", "none":
		return NeverTerminate{}, nil
	case "opponent_passes":
		return PassWhenOpponentPasses{}, nil
	}
	return nil, fmt.Errorf("%q: %w", name, errors.ErrUnknownStrategy)
}
