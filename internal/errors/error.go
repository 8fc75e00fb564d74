package errors

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrUnknownBot       = errors.New("unknown bot")
	ErrInvalidCoords    = errors.New("invalid coordinates")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameOver         = errors.New("game is already over")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrUnknownStrategy  = errors.New("unsupported termination strategy")
	ErrInternal         = errors.New("internal error")
)
