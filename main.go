package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/tictactoe-history/internal"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
)

// main - is the entry point of the application. It parses flags, loads the configuration, and runs the game.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "could not load .env file: %v\n", err)
	}

	cmd := &cli.Command{
		Name:  "tictactoe",
		Usage: "play tic-tac-toe in the terminal with move history and time travel",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yml",
				Usage: "path to the config file, environment only when missing",
			},
			&cli.IntFlag{
				Name:  "board-size",
				Usage: "number of cells, must be a perfect square",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "ui",
				Usage: "tview for the board widgets, line for plain text commands",
			},
			&cli.BoolFlag{
				Name:  "descending",
				Usage: "show the move list newest first",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	conf := initConfig(cmd)
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

// initialize config, flags take precedence over the file and the environment.
func initConfig(cmd *cli.Command) *config.Config {
	conf := config.MustLoad(cmd.String("config"))

	if cmd.IsSet("board-size") {
		conf.Game.BoardSize = int(cmd.Int("board-size"))
	}

	if cmd.IsSet("log-level") {
		conf.LogLevel = cmd.String("log-level")
	}

	if cmd.IsSet("ui") {
		conf.UI = cmd.String("ui")
	}

	if cmd.IsSet("descending") {
		conf.Game.HistoryDescending = cmd.Bool("descending")
	}

	return conf
}

// initialize logger, logs go to stderr to keep the board readable.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
