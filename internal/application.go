package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/transport/terminal"
	"github.com/rocketscienceinc/tictactoe-history/transport/tui"
)

type view interface {
	Start(ctx context.Context) error
}

// newView - the tview board by default, the line mode reads in and writes out.
func newView(logger *slog.Logger, conf *config.Config, game *tictactoe.GameController, in io.Reader, out io.Writer) view {
	if conf.UI == config.UILine {
		return terminal.New(logger, game, in, out)
	}

	return tui.New(logger, game)
}

// RunApp - runs the game until the player quits. in and out are only used by the line mode.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	gameController, err := tictactoe.NewGameController(logger, conf.Game.BoardSize,
		tictactoe.WithHistoryDescending(conf.Game.HistoryDescending))
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	log.Info("Starting game", "ui", conf.UI, "board-size", conf.Game.BoardSize, "session", gameController.SessionID())

	if err = newView(logger, conf, gameController, in, out).Start(ctx); err != nil {
		return fmt.Errorf("view error: %w", err)
	}

	log.Info("Game finished", "status", gameController.Status().String())

	return nil
}
