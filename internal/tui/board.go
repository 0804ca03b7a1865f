package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"soloquest/internal/engine"
)

// RunBoard opens the interactive quest board.
func RunBoard(ctx context.Context, store *engine.Store, out io.Writer) error {
	p := tea.NewProgram(newBoardModel(store), tea.WithOutput(out), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
