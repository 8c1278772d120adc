package game

import "errors"

var (
	ErrInvalidAction = errors.New("action index out of range")
	ErrCellOccupied  = errors.New("cell already occupied")
	ErrGameOver      = errors.New("game is over")
	ErrInvalidMark   = errors.New("invalid player mark")
)
