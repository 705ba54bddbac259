package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/remis/internal/model"
)

// Config holds what the calendar program needs to start.
type Config struct {
	Calendar Calendar
	Input    io.Reader
	Output   io.Writer
	Start    model.Date
	Currency string
}

// Run shows the calendar until the user quits or ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Calendar == nil {
		return errors.New("calendar is required")
	}
	start := cfg.Start
	if start.IsZero() {
		start = model.Today()
	}

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	p := tea.NewProgram(NewModel(ctx, cfg.Calendar, start, cfg.Currency), opts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("calendar UI failed: %w", err)
	}
	return nil
}
