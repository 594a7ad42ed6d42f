package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the config file", func(t *testing.T) {
		// Given: a config file with a 4x4 board
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nui: line\ngame:\n  board-size: 16\n  history-descending: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: every value comes from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, UILine, conf.UI)
		assert.Equal(t, 16, conf.Game.BoardSize)
		assert.True(t, conf.Game.HistoryDescending)
	})

	t.Run("Falls back to defaults without a file", func(t *testing.T) {
		// When: the file does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults are used
		require.NoError(t, err)
		assert.Equal(t, "warn", conf.LogLevel)
		assert.Equal(t, UITview, conf.UI)
		assert.Equal(t, 9, conf.Game.BoardSize)
		assert.False(t, conf.Game.HistoryDescending)
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		// Given: the board size is set in the environment
		t.Setenv("BOARD_SIZE", "25")
		t.Setenv("LOG_LEVEL", "info")

		// When: loading without a file
		conf, err := Load("")

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, 25, conf.Game.BoardSize)
		assert.Equal(t, "info", conf.LogLevel)
	})

	t.Run("Error on a malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("game:\n  board-size: nine\n"), 0o600))

		_, err := Load(path)

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(path) })
	})
}
