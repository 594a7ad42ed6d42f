package entity

import (
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
	StatusDraw     = "draw"

	startLabel = "Go to game start"
	moveLabel  = "Go to move #"
)

// GameState - the full game: every board played so far, the step being viewed and the move list order.
// Transitions return a new value and leave the receiver untouched. Use NewGameState to pick the board
// size; the zero value behaves as a fresh game on the default board.
type GameState struct {
	history           []Board
	currentStep       int
	historyDescending bool

	side  int
	lines [][]int
}

// Move - one entry of the move list.
type Move struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
	Cell    int    `json:"cell"`
}

// Status - the derived outcome of the board at the current step.
type Status struct {
	State  string `json:"state"`
	Winner Cell   `json:"winner,omitempty"`
	Next   Cell   `json:"next,omitempty"`
}

func (that Status) String() string {
	switch that.State {
	case StatusFinished:
		return "Winner:" + that.Winner.String()
	case StatusDraw:
		return "It ends in a draw"
	default:
		return "Next player: " + that.Next.String()
	}
}

// Snapshot - read-only view of the state for rendering.
type Snapshot struct {
	Board             Board  `json:"board"`
	Side              int    `json:"side"`
	Status            string `json:"status"`
	Moves             []Move `json:"moves"`
	HistoryDescending bool   `json:"history_descending"`
	CurrentStep       int    `json:"current_step"`
	Session           string `json:"session,omitempty"`
}

// NewGameState - returns a game with a single empty board of size cells.
func NewGameState(size int) (GameState, error) {
	side, err := SideLength(size)
	if err != nil {
		return GameState{}, fmt.Errorf("could not create game: %w", err)
	}

	return GameState{
		history: []Board{NewBoard(size)},
		side:    side,
		lines:   WinLines(side),
	}, nil
}

// orDefault - a zero GameState has no history yet, it stands for a new game on the default board.
func (that GameState) orDefault() GameState {
	if len(that.history) > 0 {
		return that
	}

	game, _ := NewGameState(DefaultBoardSize)
	game.historyDescending = that.historyDescending

	return game
}

func (that GameState) Side() int {
	return that.orDefault().side
}

func (that GameState) Size() int {
	side := that.Side()

	return side * side
}

func (that GameState) CurrentStep() int {
	return that.currentStep
}

func (that GameState) HistoryDescending() bool {
	return that.historyDescending
}

// History - a deep copy of the history, changing it does not affect the game.
func (that GameState) History() []Board {
	that = that.orDefault()

	history := make([]Board, len(that.history))
	for i, board := range that.history {
		history[i] = board.Clone()
	}

	return history
}

func (that GameState) Len() int {
	return len(that.orDefault().history)
}

// Current - a copy of the board at the current step.
func (that GameState) Current() Board {
	return that.current().Clone()
}

// current - the shared board at the current step, callers must not modify it.
func (that GameState) current() Board {
	that = that.orDefault()

	return that.history[that.currentStep]
}

// PlayerToMove - X on even steps, O on odd ones.
func (that GameState) PlayerToMove() Cell {
	if that.currentStep%2 == 0 {
		return PlayerX
	}

	return PlayerO
}

func (that GameState) Winner() Cell {
	that = that.orDefault()

	return winnerOn(that.current(), that.lines)
}

func (that GameState) IsDraw() bool {
	return that.Winner() == EmptyCell && that.current().IsFull()
}

func (that GameState) Status() Status {
	if winner := that.Winner(); winner != EmptyCell {
		return Status{State: StatusFinished, Winner: winner}
	}

	if that.current().IsFull() {
		return Status{State: StatusDraw}
	}

	return Status{State: StatusOngoing, Next: that.PlayerToMove()}
}

// Play - places the current player's mark on cell. On an illegal move the unchanged state is returned with the reason.
func (that GameState) Play(cell int) (GameState, error) {
	that = that.orDefault()
	current := that.current()

	if that.Winner() != EmptyCell {
		return that, apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(current) {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if current[cell] != EmptyCell {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	history := make([]Board, that.currentStep+2)
	copy(history, that.history[:that.currentStep+1])
	history[that.currentStep+1] = current.With(cell, that.PlayerToMove())

	next := that
	next.history = history
	next.currentStep = len(history) - 1

	return next, nil
}

// JumpTo - moves the current step, clamped into the history. History is kept.
func (that GameState) JumpTo(step int) GameState {
	next := that.orDefault()
	next.currentStep = max(0, min(step, len(next.history)-1))

	return next
}

func (that GameState) ToggleHistoryOrder() GameState {
	next := that.orDefault()
	next.historyDescending = !that.historyDescending

	return next
}

// Moves - the move list in display order.
func (that GameState) Moves() []Move {
	that = that.orDefault()
	moves := make([]Move, len(that.history))

	for step := range that.history {
		move := Move{
			Step:    step,
			Label:   startLabel,
			Current: step == that.currentStep,
			Cell:    -1,
		}

		if step > 0 {
			move.Label = moveLabel + strconv.Itoa(step)
			move.Cell = changedCell(that.history[step-1], that.history[step])
		}

		index := step
		if that.historyDescending {
			index = len(that.history) - 1 - step
		}
		moves[index] = move
	}

	return moves
}

func (that GameState) Snapshot() Snapshot {
	that = that.orDefault()

	return Snapshot{
		Board:             that.Current(),
		Side:              that.side,
		Status:            that.Status().String(),
		Moves:             that.Moves(),
		HistoryDescending: that.historyDescending,
		CurrentStep:       that.currentStep,
	}
}

func changedCell(before, after Board) int {
	for i := range after {
		if before[i] != after[i] {
			return i
		}
	}

	return -1
}
