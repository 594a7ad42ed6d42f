package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

const DefaultBoardSize = 9

// Cell - the content of one square on the board.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

// Opponent - returns the other mark. EmptyCell has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Board - one snapshot of the game. A board is never modified once it is part of a history.
type Board []Cell

// NewBoard - returns an empty board with the given number of cells.
func NewBoard(size int) Board {
	return make(Board, size)
}

func (that Board) Clone() Board {
	next := make(Board, len(that))
	copy(next, that)

	return next
}

// With - returns a copy of the board with cell set to mark.
func (that Board) With(cell int, mark Cell) Board {
	next := that.Clone()
	next[cell] = mark

	return next
}

// Side - the length of one row. Returns 0 when the board is not square.
func (that Board) Side() int {
	side, err := SideLength(len(that))
	if err != nil {
		return 0
	}

	return side
}

func (that Board) Filled() int {
	var filled int
	for _, cell := range that {
		if cell != EmptyCell {
			filled++
		}
	}

	return filled
}

func (that Board) IsFull() bool {
	return that.Filled() == len(that)
}

// Equal - reports whether both boards hold the same cells.
func (that Board) Equal(other Board) bool {
	if len(that) != len(other) {
		return false
	}

	for i := range that {
		if that[i] != other[i] {
			return false
		}
	}

	return true
}

// SideLength - returns the integer square root of size, or ErrInvalidBoardSize when size is not a positive perfect square.
func SideLength(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	side := 1
	for side*side < size {
		side++
	}

	if side*side != size {
		return 0, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	return side, nil
}

// WinLines - the cell indexes of every row, column and both diagonals of a side x side board.
// At side 3 the order matches the classic table: rows, columns, main diagonal, anti-diagonal.
func WinLines(side int) [][]int {
	if side <= 0 {
		return nil
	}

	lines := make([][]int, 0, 2*side+2)

	for row := 0; row < side; row++ {
		line := make([]int, side)
		for col := 0; col < side; col++ {
			line[col] = row*side + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < side; col++ {
		line := make([]int, side)
		for row := 0; row < side; row++ {
			line[row] = row*side + col
		}
		lines = append(lines, line)
	}

	diagonal := make([]int, side)
	antiDiagonal := make([]int, side)
	for i := 0; i < side; i++ {
		diagonal[i] = i*side + i
		antiDiagonal[i] = i*side + (side - 1 - i)
	}

	return append(lines, diagonal, antiDiagonal)
}

// EvaluateWinner - returns the mark that fills a whole line of the board, or EmptyCell.
func EvaluateWinner(board Board) Cell {
	return winnerOn(board, WinLines(board.Side()))
}

func winnerOn(board Board, lines [][]int) Cell {
	for _, line := range lines {
		mark := board[line[0]]
		if mark == EmptyCell {
			continue
		}

		complete := true
		for _, cell := range line[1:] {
			if board[cell] != mark {
				complete = false
				break
			}
		}

		if complete {
			return mark
		}
	}

	return EmptyCell
}
