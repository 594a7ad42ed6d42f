package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidArgument = errors.New("invalid argument")

	errQuit = errors.New("quit")
)

type gameController interface {
	Play(cell int)
	JumpTo(step int)
	ToggleHistoryOrder()

	Snapshot() entity.Snapshot
}

type handler func(args []string) error

// Server - reads commands line by line, forwards them to the game and renders the game after each one.
type Server struct {
	logger *slog.Logger
	game   gameController

	in  io.Reader
	out io.Writer

	handlers map[string]handler
}

func New(logger *slog.Logger, game gameController, in io.Reader, out io.Writer) *Server {
	server := &Server{
		logger: logger.With("component", "terminal"),
		game:   game,
		in:     in,
		out:    out,

		handlers: make(map[string]handler),
	}

	server.register(server.handlePlay, "play", "p")
	server.register(server.handleJump, "jump", "j")
	server.register(server.handleSort, "sort", "s")
	server.register(server.handleHelp, "help", "h", "?")
	server.register(server.handleQuit, "quit", "q", "exit")

	return server
}

func (that *Server) register(fn handler, names ...string) {
	for _, name := range names {
		that.handlers[name] = fn
	}
}

// Start - runs until the input ends, the user quits or ctx is canceled.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}

		readErr <- scanner.Err()
	}()

	if err := that.render(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("context canceled, stopping")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				log.Info("input closed, stopping")
				return nil
			}

			err := that.handleLine(line)
			switch {
			case errors.Is(err, errQuit):
				log.Info("quit requested")
				return nil
			case err != nil:
				return err
			}
		}
	}
}

// handleLine - dispatches one command. Bad input is reported to the user, only write errors are returned.
func (that *Server) handleLine(line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	name, args := fields[0], fields[1:]

	// a bare number is a play
	if _, err := strconv.Atoi(name); err == nil {
		name, args = "play", fields
	}

	fn, ok := that.handlers[name]
	if !ok {
		return that.reportError(fmt.Errorf("%w: %q", ErrUnknownCommand, name))
	}

	err := fn(args)
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return that.reportError(err)
	case err != nil:
		return err
	}

	return nil
}

func (that *Server) handlePlay(args []string) error {
	cell, err := intArgument(args)
	if err != nil {
		return err
	}

	that.game.Play(cell)

	return that.render()
}

func (that *Server) handleJump(args []string) error {
	step, err := intArgument(args)
	if err != nil {
		return err
	}

	that.game.JumpTo(step)

	return that.render()
}

func (that *Server) handleSort(_ []string) error {
	that.game.ToggleHistoryOrder()

	return that.render()
}

func (that *Server) handleHelp(_ []string) error {
	if _, err := io.WriteString(that.out, helpText); err != nil {
		return fmt.Errorf("failed to write help: %w", err)
	}

	return nil
}

func (that *Server) handleQuit(_ []string) error {
	return errQuit
}

func (that *Server) render() error {
	if err := Render(that.out, that.game.Snapshot()); err != nil {
		return fmt.Errorf("failed to render game: %w", err)
	}

	return nil
}

func (that *Server) reportError(cause error) error {
	that.logger.Debug("bad command", "error", cause)

	if _, err := fmt.Fprintf(that.out, "error: %v (type help)\n", cause); err != nil {
		return fmt.Errorf("failed to write error: %w", err)
	}

	return nil
}

func intArgument(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected one number", ErrInvalidArgument)
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, args[0])
	}

	return value, nil
}
