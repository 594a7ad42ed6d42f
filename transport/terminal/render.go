package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const helpText = `commands:
  play <cell>, p <cell>, <cell>  place a mark, cells are numbered from 0
  jump <step>, j <step>          go to a step of the move list
  sort, s                        toggle the move list order
  help, h, ?                     show this help
  quit, q, exit                  leave the game
`

// Render - writes the session header when known, the board, the status and the move list.
func Render(out io.Writer, snapshot entity.Snapshot) error {
	var sb strings.Builder

	if snapshot.Session != "" {
		sb.WriteString("Game " + snapshot.Session + "\n\n")
	}

	width := len(fmt.Sprint(len(snapshot.Board) - 1))

	for row := 0; row < snapshot.Side; row++ {
		cells := make([]string, snapshot.Side)
		for col := range cells {
			cells[col] = fmt.Sprintf("%*s", width, cellText(snapshot.Board[row*snapshot.Side+col]))
		}
		sb.WriteString(strings.Join(cells, " ") + "\n")
	}

	sb.WriteString("\n" + snapshot.Status + "\n")

	for _, move := range snapshot.Moves {
		marker := " "
		if move.Current {
			marker = ">"
		}
		fmt.Fprintf(&sb, "%s %d. %s\n", marker, move.Step, move.Label)
	}

	if _, err := io.WriteString(out, sb.String()); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

func cellText(cell entity.Cell) string {
	if cell == entity.EmptyCell {
		return "."
	}

	return cell.String()
}
