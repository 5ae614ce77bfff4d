package engine

import "errors"

var (
	ErrUnknownMode  = errors.New("unknown game mode")
	ErrOutOfBounds  = errors.New("square out of bounds")
	ErrEmptySquare  = errors.New("no piece at selected square")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrIllegalMove  = errors.New("illegal move")
	ErrCannotUndo   = errors.New("cannot undo")
	ErrInvalidSteps = errors.New("undo steps must be positive")
)
