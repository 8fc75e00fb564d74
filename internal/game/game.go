// Package game is the seam between rule engines and the search packages.
package game

import "baduk/internal/gotypes"

// State is an immutable game position. ApplyMove returns a new state and
// leaves the receiver untouched, so searches can branch freely.
type State[S any, M comparable] interface {
	NextPlayer() gotypes.Player
	// LegalMoves is empty once the game is over.
	LegalMoves() []M
	ApplyMove(m M) S
	IsOver() bool
	// Winner reports the winner of a finished game; ok is false for a draw
	// and while the game is running. Use OutcomeOf to tell those apart.
	Winner() (winner gotypes.Player, ok bool)
}

// Outcome separates a running game from a won or drawn one.
type Outcome int

const (
	Running Outcome = iota
	Won
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	}
	return "running"
}

// OutcomeOf classifies s. The player is only set when the outcome is Won.
func OutcomeOf[S State[S, M], M comparable](s S) (Outcome, gotypes.Player) {
	if !s.IsOver() {
		return Running, 0
	}
	if winner, ok := s.Winner(); ok {
		return Won, winner
	}
	return Drawn, 0
}
