package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	UITview = "tview"
	UILine  = "line"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"warn"`
	UI       string `yaml:"ui" env:"UI" env-default:"tview"`
	Game     Game   `yaml:"game"`
}

type Game struct {
	BoardSize         int  `yaml:"board-size" env:"BOARD_SIZE" env-default:"9"`
	HistoryDescending bool `yaml:"history-descending" env:"HISTORY_DESCENDING" env-default:"false"`
}

// Load - reads the config file at path, or only the environment when the file does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err = cleanenv.ReadConfig(path, config); err != nil {
				return nil, fmt.Errorf("unable to load config file: %w", err)
			}

			return config, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("unable to stat config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config, nil
}

// MustLoad - same as Load, panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}
