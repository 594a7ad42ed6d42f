package apperror

import "errors"

var (
	ErrInvalidBoardSize = errors.New("board size is not a perfect square")
	ErrGameFinished     = errors.New("game is already finished")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
)
