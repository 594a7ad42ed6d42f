package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

type mockGameController struct {
	mock.Mock
}

func (that *mockGameController) Play(cell int) {
	that.Called(cell)
}

func (that *mockGameController) JumpTo(step int) {
	that.Called(step)
}

func (that *mockGameController) ToggleHistoryOrder() {
	that.Called()
}

func (that *mockGameController) Snapshot() entity.Snapshot {
	args := that.Called()
	return args.Get(0).(entity.Snapshot) //nolint: forcetypeassert // test mock
}

func emptySnapshot() entity.Snapshot {
	return entity.Snapshot{
		Board:  entity.NewBoard(9),
		Side:   3,
		Status: "Next player: X",
		Moves:  []entity.Move{{Step: 0, Label: "Go to game start", Current: true, Cell: -1}},
	}
}

func TestServer_Dispatch(t *testing.T) {
	t.Run("Commands are forwarded as intents", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a mocked game
		game := &mockGameController{}
		game.On("Play", 4).Return().Once()
		game.On("Play", 2).Return().Once()
		game.On("JumpTo", 1).Return().Once()
		game.On("ToggleHistoryOrder").Return().Once()
		game.On("Snapshot").Return(emptySnapshot())

		input := strings.NewReader("play 4\n2\nJ 1\nsort\nquit\n")
		server := New(st.Logger, game, input, io.Discard)

		// When: the server runs the script
		err := server.Start(ctx)

		// Then: every intent was sent once, followed by a render
		require.NoError(t, err)
		game.AssertExpectations(t)
		game.AssertNumberOfCalls(t, "Snapshot", 5)
	})

	t.Run("Bad input does not reach the game", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a mocked game that only expects renders
		game := &mockGameController{}
		game.On("Snapshot").Return(emptySnapshot())

		var out bytes.Buffer
		input := strings.NewReader("fly 3\nplay\nplay x\njump 1 2\n\n")
		server := New(st.Logger, game, input, &out)

		// When: the server runs the script
		err := server.Start(ctx)

		// Then: errors are printed and no intent is sent
		require.NoError(t, err)
		game.AssertNotCalled(t, "Play", mock.Anything)
		game.AssertNotCalled(t, "JumpTo", mock.Anything)
		assert.Contains(t, out.String(), `error: unknown command: "fly"`)
		assert.Equal(t, 4, strings.Count(out.String(), "error:"))
	})
}

func TestServer_Start(t *testing.T) {
	t.Run("Plays a game to a win", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a real game controller
		game, err := tictactoe.NewGameController(st.Logger, entity.DefaultBoardSize)
		require.NoError(t, err)

		var out bytes.Buffer
		input := strings.NewReader("0\n3\n1\n4\n2\n5\n")
		server := New(st.Logger, game, input, &out)

		// When: X completes the top row and O tries to continue
		err = server.Start(ctx)

		// Then: the output ends with the winning board
		require.NoError(t, err)
		assert.Equal(t, "Winner:X", game.Status().String())
		assert.True(t, strings.HasSuffix(out.String(), "X X X\nO O .\n. . .\n\nWinner:X\n"+
			"  0. Go to game start\n"+
			"  1. Go to move #1\n"+
			"  2. Go to move #2\n"+
			"  3. Go to move #3\n"+
			"  4. Go to move #4\n"+
			"> 5. Go to move #5\n"), out.String())
	})

	t.Run("Help lists the commands", func(t *testing.T) {
		ctx, st := suite.New(t)

		game, err := tictactoe.NewGameController(st.Logger, entity.DefaultBoardSize)
		require.NoError(t, err)

		var out bytes.Buffer
		err = New(st.Logger, game, strings.NewReader("help\n"), &out).Start(ctx)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "jump <step>")
	})

	t.Run("Stops on canceled context", func(t *testing.T) {
		ctx, st := suite.New(t)
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		game := &mockGameController{}
		game.On("Snapshot").Return(emptySnapshot())

		// Given: an input that never ends
		reader, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })

		// When: the context is already canceled
		err := New(st.Logger, game, reader, io.Discard).Start(ctx)

		// Then: the server returns without error
		require.NoError(t, err)
	})
}

func TestRender(t *testing.T) {
	// Given: a snapshot in descending order viewed at step 1
	snapshot := entity.Snapshot{
		Board:  entity.NewBoard(9).With(4, entity.PlayerX),
		Side:   3,
		Status: "Next player: O",
		Moves: []entity.Move{
			{Step: 1, Label: "Go to move #1", Current: true, Cell: 4},
			{Step: 0, Label: "Go to game start", Cell: -1},
		},
		HistoryDescending: true,
		CurrentStep:       1,
	}

	// When: rendering
	var out bytes.Buffer
	require.NoError(t, Render(&out, snapshot))

	// Then: board, status and list are printed in order
	expected := ". . .\n. X .\n. . .\n\nNext player: O\n> 1. Go to move #1\n  0. Go to game start\n"
	assert.Equal(t, expected, out.String())
}

func TestRender_SessionHeader(t *testing.T) {
	// Given: a snapshot of a new game that carries its session
	snapshot := entity.Snapshot{
		Board:   entity.NewBoard(4),
		Side:    2,
		Status:  "Next player: X",
		Moves:   []entity.Move{{Step: 0, Label: "Go to game start", Current: true, Cell: -1}},
		Session: "6f1c2a3b",
	}

	// When: rendering
	var out bytes.Buffer
	require.NoError(t, Render(&out, snapshot))

	// Then: the session heads the output
	assert.Equal(t, "Game 6f1c2a3b\n\n. .\n. .\n\nNext player: X\n> 0. Go to game start\n", out.String())
}
