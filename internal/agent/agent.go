// Package agent holds the Go-playing bots and the pieces they share.
package agent

import (
	"context"

	"baduk/internal/goboard"
)

// Agent picks a move for the side to move. A returned move is always valid
// in s unless s is already over, in which case agents pass.
type Agent interface {
	SelectMove(ctx context.Context, s *goboard.GameState) goboard.Move
}

// Diagnoser is implemented by agents that can describe their last decision.
type Diagnoser interface {
	Diagnostics() map[string]any
}

// Diagnostics returns a's diagnostics, or an empty map when it keeps none.
func Diagnostics(a Agent) map[string]any {
	if d, ok := a.(Diagnoser); ok {
		return d.Diagnostics()
	}
	return map[string]any{}
}

func orPass(m goboard.Move, ok bool) goboard.Move {
	if !ok {
		return goboard.PassTurn()
	}
	return m
}
