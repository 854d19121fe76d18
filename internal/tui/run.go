package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the program on the alternate screen and blocks until the user
// quits or ctx is canceled.
func Run(ctx context.Context, historyLimit int, screens ...Screen) error {
	model := NewModel(ctx, historyLimit, screens...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
