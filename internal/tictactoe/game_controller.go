package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// GameController - owns the game state and applies intents to it.
// It is driven by a single caller and is not safe for concurrent use.
type GameController struct {
	logger    *slog.Logger
	sessionID string

	state entity.GameState
}

type Option func(*GameController)

// WithHistoryDescending - starts the controller with the move list in descending order.
func WithHistoryDescending(descending bool) Option {
	return func(that *GameController) {
		if descending != that.state.HistoryDescending() {
			that.state = that.state.ToggleHistoryOrder()
		}
	}
}

// NewGameController - creates a controller for a board of size cells. The size must be a perfect square.
func NewGameController(logger *slog.Logger, size int, opts ...Option) (*GameController, error) {
	state, err := entity.NewGameState(size)
	if err != nil {
		return nil, fmt.Errorf("invalid game configuration: %w", err)
	}

	sessionID := uuid.NewString()

	controller := &GameController{
		logger:    logger.With("component", "game", "session", sessionID),
		sessionID: sessionID,
		state:     state,
	}

	for _, opt := range opts {
		opt(controller)
	}

	controller.logger.Info("game created", "size", size, "side", state.Side())

	return controller, nil
}

func (that *GameController) SessionID() string {
	return that.sessionID
}

// Play - places the current player's mark on cell. Illegal moves are ignored.
func (that *GameController) Play(cell int) {
	log := that.logger.With("method", "Play", "cell", cell)

	next, err := that.state.Play(cell)
	if err != nil {
		log.Debug("move ignored", "reason", err)
		return
	}

	that.state = next

	log.Debug("move played", "step", next.CurrentStep(), "status", next.Status().String())
}

// JumpTo - moves to step in the history. Out of range steps are clamped.
func (that *GameController) JumpTo(step int) {
	log := that.logger.With("method", "JumpTo", "step", step)

	next := that.state.JumpTo(step)
	if next.CurrentStep() != step {
		log.Debug("step out of range, clamped", "clamped", next.CurrentStep(), "history", next.Len())
	}

	that.state = next
}

func (that *GameController) ToggleHistoryOrder() {
	that.state = that.state.ToggleHistoryOrder()

	that.logger.Debug("history order toggled", "descending", that.state.HistoryDescending())
}

// State - the current state value. It is immutable, later intents do not change it.
func (that *GameController) State() entity.GameState {
	return that.state
}

func (that *GameController) Status() entity.Status {
	return that.state.Status()
}

// Snapshot - the view model, tagged with the session id.
func (that *GameController) Snapshot() entity.Snapshot {
	snapshot := that.state.Snapshot()
	snapshot.Session = that.sessionID

	return snapshot
}
