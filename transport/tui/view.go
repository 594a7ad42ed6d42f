// Package tui draws the game with tview: a grid of cell buttons, the status line, a sort button and the move list.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	cellWidth  = 5
	cellHeight = 3

	sortLabel = "Sort"
	hintText  = "Tab: next  Arrows: board  Enter: select  q: quit"
)

type gameController interface {
	Play(cell int)
	JumpTo(step int)
	ToggleHistoryOrder()

	Snapshot() entity.Snapshot
}

type Option func(*View)

// WithScreen - draws on screen instead of the terminal, used with tcell.NewSimulationScreen in tests.
func WithScreen(screen tcell.Screen) Option {
	return func(view *View) {
		view.screen = screen
	}
}

// View - every widget callback sends one intent to the game and redraws from a fresh snapshot.
type View struct {
	logger *slog.Logger
	game   gameController

	app    *tview.Application
	screen tcell.Screen

	root   *tview.Flex
	cells  []*tview.Button
	status *tview.TextView
	sort   *tview.Button
	moves  *tview.List

	side  int
	focus int
}

func New(logger *slog.Logger, game gameController, opts ...Option) *View {
	snapshot := game.Snapshot()

	view := &View{
		logger: logger.With("component", "tui"),
		game:   game,
		app:    tview.NewApplication(),
		side:   snapshot.Side,
	}

	for _, opt := range opts {
		opt(view)
	}

	view.build(snapshot)
	view.draw(snapshot)

	return view
}

func (that *View) build(snapshot entity.Snapshot) {
	board := tview.NewGrid()

	rows := make([]int, that.side)
	cols := make([]int, that.side)
	for i := range rows {
		rows[i] = cellHeight
		cols[i] = cellWidth
	}
	board.SetRows(rows...).SetColumns(cols...)

	that.cells = make([]*tview.Button, len(snapshot.Board))
	for i := range that.cells {
		button := tview.NewButton("")
		button.SetSelectedFunc(func() {
			that.play(i)
		})

		that.cells[i] = button
		board.AddItem(button, i/that.side, i%that.side, 1, 1, 0, 0, i == 0)
	}

	that.status = tview.NewTextView()
	that.sort = tview.NewButton(sortLabel).SetSelectedFunc(that.toggleHistoryOrder)
	that.moves = tview.NewList().ShowSecondaryText(false)

	that.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(board, that.side*cellHeight, 0, true).
		AddItem(that.status, 1, 0, false).
		AddItem(that.sort, 1, 0, false).
		AddItem(that.moves, 0, 1, false).
		AddItem(tview.NewTextView().SetText(hintText), 1, 0, false)
	that.root.SetBorder(true)

	that.app.SetInputCapture(that.capture)
}

// Start - runs the tview application until the user quits or ctx is canceled.
func (that *View) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	if that.screen != nil {
		that.app.SetScreen(that.screen)
	}

	that.app.SetRoot(that.root, true).EnableMouse(true)
	that.setFocus(0)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			log.Info("Context canceled, stopping view")
			that.app.QueueUpdate(that.app.Stop)
		case <-done:
		}
	}()

	if err := that.app.Run(); err != nil {
		return fmt.Errorf("failed to run view: %w", err)
	}

	return nil
}

func (that *View) play(cell int) {
	that.game.Play(cell)
	that.refresh()
}

func (that *View) jumpTo(step int) {
	that.game.JumpTo(step)
	that.refresh()
}

func (that *View) toggleHistoryOrder() {
	that.game.ToggleHistoryOrder()
	that.refresh()
}

func (that *View) refresh() {
	that.draw(that.game.Snapshot())
}

// draw - copies snapshot into the widgets, nothing else is kept between intents.
func (that *View) draw(snapshot entity.Snapshot) {
	for i, button := range that.cells {
		button.SetLabel(snapshot.Board[i].String())
	}

	that.status.SetText(snapshot.Status)

	if snapshot.Session != "" {
		that.root.SetTitle(" Game " + snapshot.Session + " ")
	}

	that.moves.Clear()
	for index, move := range snapshot.Moves {
		that.moves.AddItem(move.Label, "", 0, func() {
			that.jumpTo(move.Step)
		})

		if move.Current {
			that.moves.SetCurrentItem(index)
		}
	}
}

// focusables - the board cells in order, then the sort button, then the move list.
func (that *View) focusables() []tview.Primitive {
	items := make([]tview.Primitive, 0, len(that.cells)+2)
	for _, button := range that.cells {
		items = append(items, button)
	}

	return append(items, that.sort, that.moves)
}

func (that *View) setFocus(index int) {
	items := that.focusables()
	that.focus = (index%len(items) + len(items)) % len(items)
	that.app.SetFocus(items[that.focus])
}

func (that *View) capture(event *tcell.EventKey) *tcell.EventKey {
	// a mouse click moves the focus without going through setFocus
	for index, item := range that.focusables() {
		if item == that.app.GetFocus() {
			that.focus = index
		}
	}

	switch event.Key() {
	case tcell.KeyEscape:
		that.app.Stop()
		return nil
	case tcell.KeyTab:
		that.setFocus(that.focus + 1)
		return nil
	case tcell.KeyBacktab:
		that.setFocus(that.focus - 1)
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			that.app.Stop()
			return nil
		}
	}

	if that.focus < len(that.cells) {
		return that.moveOnBoard(event)
	}

	return event
}

// moveOnBoard - arrow keys walk the board, stopping at the edges.
func (that *View) moveOnBoard(event *tcell.EventKey) *tcell.EventKey {
	row, col := that.focus/that.side, that.focus%that.side

	switch event.Key() {
	case tcell.KeyUp:
		row = max(0, row-1)
	case tcell.KeyDown:
		row = min(that.side-1, row+1)
	case tcell.KeyLeft:
		col = max(0, col-1)
	case tcell.KeyRight:
		col = min(that.side-1, col+1)
	default:
		return event
	}

	that.setFocus(row*that.side + col)

	return nil
}
